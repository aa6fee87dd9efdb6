// Package httpx provides the HTTP surface of the bank back-office API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/meridianbank/bankadmin-api/internal/data"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// AccountHandlers provides HTTP handlers for customer account operations.
type AccountHandlers struct {
	Svc *service.AccountService
}

const maxAccountListLimit = 100 // Maximum accounts returned in one call

// List handles GET /api/admin/accounts with pagination and filters.
func (h *AccountHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAccountListLimit)

	opts := model.AccountsListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optionalQuery(r, "q"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseAccountStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_status",
				Err:     errors.New("unsupported account status filter"),
			})
			return
		}
		opts.Status = &status
	}

	accounts, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"accounts": accounts,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetByID handles GET /api/admin/accounts/{id}.
func (h *AccountHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("account id is required")},
		)
		return
	}

	account, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, account)
}

// Update handles PUT /api/admin/accounts/{id}.
func (h *AccountHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("account id is required")},
		)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req model.UpdateAccountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	account, err := h.Svc.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAccountNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, account)
}

// ApproveFunding handles POST /api/admin/accounts/{id}/approve-funding.
// Only accounts in pending_funding can be approved; anything else is a conflict.
func (h *AccountHandlers) ApproveFunding(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("account id is required")},
		)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	account, err := h.Svc.ApproveFunding(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAccountNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
		case errors.Is(err, data.ErrAccountNotPendingFunding):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "not_pending_funding", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "approve_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, account)
}
