package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/api/middleware"
	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/logging"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// CredentialsRequest is the body of both register and login.
type CredentialsRequest struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func newAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User:         newUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}

// decodeCredentials reads the request body and rejects blank fields.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	if strings.TrimSpace(req.DisplayName) == "" || req.Password == "" {
		http.Error(w, "Display name and password are required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDisplayNameExists):
			http.Error(w, "Display name already exists", http.StatusConflict)
		case errors.Is(err, service.ErrInvalidDisplayName), errors.Is(err, service.ErrWeakPassword):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("register failed", logging.Op("auth.Register"), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, newAuthResponse(result))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Error("login failed", logging.Op("auth.Login"), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newAuthResponse(result))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load user", logging.Op("auth.Me"), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newUserResponse(user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		h.logger.Error("logout failed", logging.Op("auth.Logout"), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]bool{"success": true})
}
