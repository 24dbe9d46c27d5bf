package api

import (
	"net/url"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validEmail reports whether s looks like an email address. Intentionally
// loose; the point is catching obvious typos, not enforcing RFC 5322.
func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validURL reports whether s is an absolute URL with a scheme and host.
func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
