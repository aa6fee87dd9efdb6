package httpx

import (
	"errors"
	"net/http"

	"github.com/meridianbank/bankadmin-api/internal/data"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// VerificationHandlers provides HTTP handlers for KYC verification review.
type VerificationHandlers struct {
	Svc *service.VerificationService
}

const maxVerificationListLimit = 100 // Maximum verifications returned in one call

// List handles GET /api/admin/verifications with pagination and filters.
func (h *VerificationHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxVerificationListLimit)

	opts := model.VerificationsListOptions{
		Limit:     limit,
		Offset:    offset,
		AccountID: optionalQuery(r, "account_id"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseVerificationStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_status",
				Err:     errors.New("unsupported verification status filter"),
			})
			return
		}
		opts.Status = &status
	}

	verifications, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"verifications": verifications,
		"limit":         limit,
		"offset":        offset,
	})
}

// GetByID handles GET /api/admin/verifications/{id}.
func (h *VerificationHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("verification id is required")},
		)
		return
	}

	verification, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrVerificationNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "verification_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, verification)
}

// Review handles POST /api/admin/verifications/{id}/review.
// A verification can be reviewed exactly once; repeats are conflicts.
func (h *VerificationHandlers) Review(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("verification id is required")},
		)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req model.ReviewVerificationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	verification, err := h.Svc.Review(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrVerificationNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "verification_not_found", Err: err})
		case errors.Is(err, data.ErrVerificationAlreadyReviewed):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "already_reviewed", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "review_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, verification)
}
