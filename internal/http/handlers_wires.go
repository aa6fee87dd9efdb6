package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/meridianbank/bankadmin-api/internal/data"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// WireHandlers provides HTTP handlers for outbound wire transfer operations.
type WireHandlers struct {
	Svc *service.WireService
}

const maxWireListLimit = 100 // Maximum wires returned in one call

// List handles GET /api/admin/wires with pagination and filters.
func (h *WireHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxWireListLimit)

	opts := model.WiresListOptions{
		Limit:     limit,
		Offset:    offset,
		AccountID: optionalQuery(r, "account_id"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseWireStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_status",
				Err:     errors.New("unsupported wire status filter"),
			})
			return
		}
		opts.Status = &status
	}

	wires, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"wires":  wires,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles GET /api/admin/wires/{id}.
func (h *WireHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("wire id is required")},
		)
		return
	}

	wire, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrWireNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "wire_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, wire)
}

// Suspend handles POST /api/admin/wires/{id}/suspend.
// Only pending wires can be suspended; anything else is a conflict.
func (h *WireHandlers) Suspend(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Suspend)
}

// Release handles POST /api/admin/wires/{id}/release.
// Only suspended wires can be released back to pending.
func (h *WireHandlers) Release(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Release)
}

type wireTransitionFunc func(
	ctx context.Context, actor domainauth.AuthContext, id string,
) (*model.WireTransfer, error)

// transition shares the suspend/release flow; both are guarded single-step
// status moves that differ only in direction.
func (h *WireHandlers) transition(w http.ResponseWriter, r *http.Request, fn wireTransitionFunc) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("wire id is required")},
		)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	wire, err := fn(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrWireNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "wire_not_found", Err: err})
		case errors.Is(err, data.ErrWireInvalidTransition):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "invalid_transition", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "transition_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, wire)
}
