package handlers

import (
	"CookieVault/internal/auth"
	"CookieVault/internal/middleware"
	"CookieVault/internal/model"
	"CookieVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"
)

// writeJSON сериализует ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError — единый конверт ошибки: {"error": "..."}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// authorize прогоняет политику доступа для операции и пишет 401/403 при
// отказе. Возвращённая роль пустая у анонимного запроса.
func authorize(w http.ResponseWriter, r *http.Request, op auth.Operation, vis auth.Visibility) (model.Role, bool) {
	role := middleware.RoleFromContext(r.Context())
	d := auth.Decide(role, op, vis)
	if d.Allow {
		return role, true
	}
	switch d.Reason {
	case auth.DenyUnauthenticated:
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		writeError(w, http.StatusForbidden, "forbidden")
	}
	return role, false
}

// statusFor отображает ошибку сервиса в HTTP-статус.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case service.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage прячет внутренние детали за общим текстом для 500-х.
func errorMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

// serviceError — общий путь ответа на ошибку сервиса.
func serviceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	writeError(w, status, errorMessage(err, status))
}

// accountDTO — представление аккаунта наружу; хеш пароля не отдаётся никогда.
type accountDTO struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name,omitempty"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

func toAccountDTO(acc *model.Account) accountDTO {
	return accountDTO{ID: acc.ID, Name: acc.Name, Email: acc.Email, Role: acc.Role}
}
