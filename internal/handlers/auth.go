package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"divvy/internal/auth"
	"divvy/internal/middleware"
	"divvy/internal/models"
	"divvy/internal/storage"
)

// AuthHandler owns the register, login, and profile endpoints.
type AuthHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register attaches the auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.Handle("GET /auth/profile", middleware.RequireAuth(h.jwtManager, http.HandlerFunc(h.handleProfile)))
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	user, err := h.authenticator.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists),
			errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("Registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	slog.Info("User registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	slog.Info("User logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}
		slog.Error("Profile lookup failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
