package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/meridianbank/bankadmin-api/internal/data"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// RosterHandlers provides HTTP handlers for managing the admin roster, the
// table the bearer-credential gate consults on every verified request.
type RosterHandlers struct {
	Svc *service.RosterService
}

// List handles GET /api/admin/roster.
func (h *RosterHandlers) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"roster": profiles})
}

// addRosterRequest is the body for Add.
type addRosterRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Add handles POST /api/admin/roster.
func (h *RosterHandlers) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req addRosterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	role := domainauth.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	profile, err := h.Svc.Add(r.Context(), actor, req.ID, req.Email, role)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "add_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, profile)
}

// Remove handles DELETE /api/admin/roster/{id}.
func (h *RosterHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("roster id is required")},
		)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Remove(r.Context(), actor, id); err != nil {
		if errors.Is(err, data.ErrAdminNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "admin_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "remove_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
