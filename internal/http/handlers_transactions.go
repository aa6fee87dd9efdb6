package httpx

import (
	"errors"
	"net/http"

	"github.com/meridianbank/bankadmin-api/internal/data"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// TransactionHandlers provides HTTP handlers for ledger transaction operations.
type TransactionHandlers struct {
	Svc *service.TransactionService
}

const maxTransactionListLimit = 200 // Maximum transactions returned in one call

// List handles GET /api/admin/transactions with pagination and filters.
func (h *TransactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxTransactionListLimit)

	opts := model.TransactionsListOptions{
		Limit:     limit,
		Offset:    offset,
		AccountID: optionalQuery(r, "account_id"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseTransactionStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_status",
				Err:     errors.New("unsupported transaction status filter"),
			})
			return
		}
		opts.Status = &status
	}

	transactions, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"transactions": transactions,
		"limit":        limit,
		"offset":       offset,
	})
}

// GetByID handles GET /api/admin/transactions/{id}.
func (h *TransactionHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("transaction id is required")},
		)
		return
	}

	tx, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrTransactionNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "transaction_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, tx)
}

// Update handles PUT /api/admin/transactions/{id}.
func (h *TransactionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("transaction id is required")},
		)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req model.UpdateTransactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := h.Svc.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrTransactionNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "transaction_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, tx)
}

// Delete handles DELETE /api/admin/transactions/{id}.
func (h *TransactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("transaction id is required")},
		)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), actor, id); err != nil {
		if errors.Is(err, data.ErrTransactionNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "transaction_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
