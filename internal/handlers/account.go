package handlers

import (
	"CookieVault/internal/auth"
	"CookieVault/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// AccountHandler — админские операции над пользовательскими аккаунтами.
type AccountHandler struct {
	AccountService *service.AccountService
	Logger         *zap.SugaredLogger
}

// NewAccountHandler создаёт хендлер аккаунтов.
func NewAccountHandler(accountService *service.AccountService, logger *zap.SugaredLogger) *AccountHandler {
	return &AccountHandler{AccountService: accountService, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create создаёт пользовательский аккаунт. Только admin/superadmin.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, auth.OpCreateUser, auth.VisibilityAny); !ok {
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	acc, err := h.AccountService.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.Logger.Errorw("CreateUser: service error", "error", err)
		}
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"user":    toAccountDTO(acc),
	})
}

// List возвращает пользовательские аккаунты без хешей. Только admin/superadmin.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, auth.OpListUsers, auth.VisibilityAny); !ok {
		return
	}

	accs, err := h.AccountService.ListUsers(r.Context())
	if err != nil {
		h.Logger.Errorw("ListUsers: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	users := make([]accountDTO, 0, len(accs))
	for i := range accs {
		users = append(users, toAccountDTO(&accs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}
