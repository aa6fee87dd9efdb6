//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// WireStatus is the processing state of an outbound wire transfer.
type WireStatus string

const (
	WireStatusPending   WireStatus = "pending"
	WireStatusSuspended WireStatus = "suspended"
	WireStatusCompleted WireStatus = "completed"
	WireStatusCancelled WireStatus = "cancelled"
)

// Valid reports whether the wire status is supported.
func (s WireStatus) Valid() bool {
	switch s {
	case WireStatusPending, WireStatusSuspended, WireStatusCompleted, WireStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseWireStatus normalizes a status string and reports whether it is supported.
func ParseWireStatus(value string) (WireStatus, bool) {
	status := WireStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// WireTransfer represents an outbound wire awaiting processing.
// Staff can suspend a pending wire and release a suspended one.
type WireTransfer struct {
	ID          string     `json:"id"           db:"id"`
	AccountID   string     `json:"account_id"   db:"account_id"`
	Beneficiary string     `json:"beneficiary"  db:"beneficiary"`
	AmountCents int64      `json:"amount_cents" db:"amount_cents"`
	Currency    string     `json:"currency"     db:"currency"`
	Status      WireStatus `json:"status"       db:"status"`
	Reference   string     `json:"reference"    db:"reference"`
	CreatedAt   time.Time  `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"   db:"updated_at"`
}

// WiresListOptions controls paging and filtering for listing wire transfers.
type WiresListOptions struct {
	Limit     int
	Offset    int
	Status    *WireStatus
	AccountID *string
}
