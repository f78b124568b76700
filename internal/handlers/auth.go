package handlers

import (
	"CookieVault/internal/config"
	"CookieVault/internal/middleware"
	"CookieVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AuthHandler обслуживает вход/выход, обновление клеймов сессии и seed админа.
type AuthHandler struct {
	AuthService *service.AuthService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewAuthHandler создаёт хендлер аутентификации.
func NewAuthHandler(authService *service.AuthService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{AuthService: authService, Logger: logger, Config: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

// Login проверяет учётные данные и ставит cookie сессии.
// Ошибка всегда одна и та же — существование email не раскрывается.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	acc, err := h.AuthService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
			return
		}
		h.Logger.Errorw("Login: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := middleware.SetLoginCookie(w, acc, h.Config.AuthSecret, h.Config.SessionTTL()); err != nil {
		h.Logger.Errorw("Login: failed to issue session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Email:    acc.Email,
		Role:     string(acc.Role),
		Redirect: "/dashboard",
	})
}

// Logout сбрасывает cookie сессии.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type sessionResponse struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	IssuedAt  string `json:"issued_at"`
	ExpiresAt string `json:"expires_at"`
}

// Session перечитывает клеймы активной сессии: роль берётся свежая из БД,
// issued_at/expires_at остаются исходными — истечение абсолютное.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	acc, err := h.AuthService.SessionInfo(r.Context(), sess.Email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// аккаунт исчез — сессия больше не действительна
			middleware.ClearLoginCookie(w)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.Logger.Errorw("Session: service error", "email", sess.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Email:     acc.Email,
		Role:      string(acc.Role),
		IssuedAt:  sess.IssuedAt.UTC().Format(time.RFC3339),
		ExpiresAt: sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Seed — одноразовое создание первичного админа. Аутентификации не требует:
// операция охраняется фактом отсутствия админа с настроенным email.
func (h *AuthHandler) Seed(w http.ResponseWriter, r *http.Request) {
	acc, err := h.AuthService.SeedAdmin(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrAdminSeeded) {
			writeError(w, http.StatusBadRequest, service.ErrAdminSeeded.Error())
			return
		}
		h.Logger.Errorw("Seed: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Logger.Infow("Seed: admin created", "email", acc.Email)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "admin created successfully",
		"admin":   map[string]string{"email": acc.Email, "role": string(acc.Role)},
	})
}
