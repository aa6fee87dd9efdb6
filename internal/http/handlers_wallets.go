package httpx

import (
	"errors"
	"net/http"

	"github.com/meridianbank/bankadmin-api/internal/data"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// WalletHandlers provides HTTP handlers for crypto deposit wallet operations.
// Wallets are never deleted; retirement is the terminal state.
type WalletHandlers struct {
	Svc *service.WalletService
}

const maxWalletListLimit = 100 // Maximum wallets returned in one call

// Create handles POST /api/admin/wallets.
func (h *WalletHandlers) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req model.CreateWalletRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	wallet, err := h.Svc.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAccountNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, wallet)
}

// List handles GET /api/admin/wallets with pagination and filters.
func (h *WalletHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxWalletListLimit)

	opts := model.WalletsListOptions{
		Limit:     limit,
		Offset:    offset,
		AccountID: optionalQuery(r, "account_id"),
		Asset:     optionalQuery(r, "asset"),
	}

	wallets, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"wallets": wallets,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetByID handles GET /api/admin/wallets/{id}.
func (h *WalletHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("wallet id is required")},
		)
		return
	}

	wallet, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrWalletNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "wallet_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, wallet)
}

// Retire handles POST /api/admin/wallets/{id}/retire.
func (h *WalletHandlers) Retire(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("wallet id is required")},
		)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	wallet, err := h.Svc.Retire(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrWalletNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "wallet_not_found", Err: err})
		case errors.Is(err, data.ErrWalletAlreadyRetired):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "already_retired", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "retire_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, wallet)
}
