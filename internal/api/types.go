package api

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse confirms account creation.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateBookmarkRequest is the body of POST /api/bookmarks.
type CreateBookmarkRequest struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

// UpdateBookmarkRequest is the body of PUT /api/bookmarks/{id}. Omitted
// fields are left unchanged.
type UpdateBookmarkRequest struct {
	Title       *string   `json:"title"`
	URL         *string   `json:"url"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Category    *string   `json:"category"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body for all non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
