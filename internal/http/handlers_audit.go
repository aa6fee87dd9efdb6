package httpx

import (
	"net/http"
	"strings"

	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// AuditHandlers provides HTTP handlers for browsing the audit trail.
// The trail is append-only; there is no mutation surface here.
type AuditHandlers struct {
	Svc *service.AuditService
}

const maxAuditListLimit = 500 // Maximum audit entries returned in one call

// List handles GET /api/admin/audit with pagination, SQL filters, and an
// optional JMESPath query (q) over each entry's detail document.
func (h *AuditHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 100, maxAuditListLimit)

	opts := model.AuditListOptions{
		Limit:       limit,
		Offset:      offset,
		AdminID:     optionalQuery(r, "admin_id"),
		TargetType:  optionalQuery(r, "target_type"),
		DetailQuery: r.URL.Query().Get("q"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("action")); raw != "" {
		action := model.AuditAction(raw)
		opts.Action = &action
	}

	entries, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		// A bad JMESPath expression is caller error, not server error.
		if strings.Contains(err.Error(), "invalid detail query") {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"limit":   limit,
		"offset":  offset,
	})
}
