package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tmoore/bookmarkd/internal/auth"
	"github.com/tmoore/bookmarkd/internal/store"
)

// authHandler provides the public registration and login endpoints.
type authHandler struct {
	credentials *auth.Service
	log         *zap.Logger
	expose      bool
}

func registerAuthRoutes(r chi.Router, deps Deps) {
	h := &authHandler{credentials: deps.Credentials, log: deps.Log, expose: deps.ExposeErrors}
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
}

// Register creates a new account.
// POST /api/auth/register
//
// @Summary      Register a new user
// @Description  Creates an account from username, email, and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Account to create"
// @Success      201   {object}  RegisterResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := h.credentials.Register(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, store.ErrDuplicate) {
		writeError(w, http.StatusBadRequest, "username or email already registered")
		return
	}
	if err != nil {
		writeInternalError(w, h.log, h.expose, err)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login exchanges email and password for a bearer token.
// POST /api/auth/login
//
// @Summary      Log in
// @Description  Verifies credentials and returns a signed token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  LoginResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.credentials.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrBadCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		writeInternalError(w, h.log, h.expose, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}
