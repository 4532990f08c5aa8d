package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-cms/internal/auth"
)

// AuthHandler handles admin login
type AuthHandler struct {
	service *auth.Service
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// LoginResponse is the body of POST /admin/login
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Login handles POST /admin/login with a form field "password"
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form data", h.logger)
		return
	}

	token, err := h.service.Login(r.PostForm.Get("password"))
	if errors.Is(err, auth.ErrInvalidPassword) {
		h.logger.Warn("admin login failed", "remote_addr", r.RemoteAddr)
		WriteJSON(w, http.StatusUnauthorized, LoginResponse{Success: false, Error: "Invalid password"}, h.logger)
		return
	}
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("admin logged in", "remote_addr", r.RemoteAddr)
	WriteJSON(w, http.StatusOK, LoginResponse{Success: true, Token: token}, h.logger)
}
