package api

import (
	"net/http"
	"strconv"

	"github.com/tmoore/bookmarkd/internal/store"
)

// parsePagination extracts page and limit from query parameters. Missing or
// unparsable values fall back to page 1 and limit 10.
func parsePagination(r *http.Request) store.PageOptions {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return store.NewPageOptions(page, limit)
}
