package handlers

import (
	"CookieVault/internal/auth"
	"CookieVault/internal/middleware"
	"CookieVault/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EntryHandler — CRUD над записями с учётными данными.
type EntryHandler struct {
	EntryService *service.EntryService
	Logger       *zap.SugaredLogger
}

// NewEntryHandler создаёт хендлер записей.
func NewEntryHandler(entryService *service.EntryService, logger *zap.SugaredLogger) *EntryHandler {
	return &EntryHandler{EntryService: entryService, Logger: logger}
}

type createEntryRequest struct {
	WebsiteName string `json:"website_name"`
	WebsiteURL  string `json:"website_url"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Cookies     string `json:"cookies"`
	OTPWebpage  string `json:"otp_webpage"`
	IsPublic    bool   `json:"is_public"`
}

// updateEntryRequest — частичное обновление: отсутствующее поле не трогается.
type updateEntryRequest struct {
	WebsiteName *string `json:"website_name,omitempty"`
	WebsiteURL  *string `json:"website_url,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	Cookies     *string `json:"cookies,omitempty"`
	OTPWebpage  *string `json:"otp_webpage,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// List отдаёт записи любому аутентифицированному актору; приватные записи
// не-админам не попадают в результат даже транзитно.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	role, ok := authorize(w, r, auth.OpListEntries, auth.VisibilityAny)
	if !ok {
		return
	}

	entries, err := h.EntryService.List(r.Context(), role)
	if err != nil {
		h.Logger.Errorw("ListEntries: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// Get отдаёт одну запись. Приватная запись для не-админа неотличима от
// несуществующей — 404 в обоих случаях.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	role := middleware.RoleFromContext(r.Context())
	if d := auth.Decide(role, auth.OpReadEntry, auth.VisibilityPublic); !d.Allow {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	e, err := h.EntryService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.Logger.Errorw("GetEntry: service error", "error", err)
		}
		serviceError(w, err)
		return
	}

	if d := auth.Decide(role, auth.OpReadEntry, auth.VisibilityOf(e)); !d.Allow {
		writeError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": e})
}

// Create создаёт запись. Только admin/superadmin.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, auth.OpCreateEntry, auth.VisibilityAny); !ok {
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	e, err := h.EntryService.Create(r.Context(), service.CreateEntryInput{
		WebsiteName: req.WebsiteName,
		WebsiteURL:  req.WebsiteURL,
		Slug:        req.Slug,
		Description: req.Description,
		Email:       req.Email,
		Password:    req.Password,
		Cookies:     req.Cookies,
		OTPWebpage:  req.OTPWebpage,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.Logger.Errorw("CreateEntry: service error", "error", err)
		}
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": e})
}

// Update частично обновляет запись. Только admin/superadmin.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, auth.OpUpdateEntry, auth.VisibilityAny); !ok {
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	e, err := h.EntryService.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateEntryInput{
		WebsiteName: req.WebsiteName,
		WebsiteURL:  req.WebsiteURL,
		Slug:        req.Slug,
		Description: req.Description,
		Email:       req.Email,
		Password:    req.Password,
		Cookies:     req.Cookies,
		OTPWebpage:  req.OTPWebpage,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.Logger.Errorw("UpdateEntry: service error", "error", err)
		}
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": e})
}

// Delete удаляет запись. Только admin/superadmin.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, auth.OpDeleteEntry, auth.VisibilityAny); !ok {
		return
	}

	if err := h.EntryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.Logger.Errorw("DeleteEntry: service error", "error", err)
		}
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "entry deleted successfully"})
}
