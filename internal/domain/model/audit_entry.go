//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// AuditAction names the operation an admin performed.
// Actions are dot-separated resource.verb pairs, e.g. "transaction.update".
type AuditAction string

const (
	AuditActionAccountUpdate      AuditAction = "account.update"
	AuditActionAccountApproveFund AuditAction = "account.approve_funding"
	AuditActionVerificationReview AuditAction = "verification.review"
	AuditActionTransactionUpdate  AuditAction = "transaction.update"
	AuditActionTransactionDelete  AuditAction = "transaction.delete"
	AuditActionWireSuspend        AuditAction = "wire.suspend"
	AuditActionWireRelease        AuditAction = "wire.release"
	AuditActionWalletCreate       AuditAction = "wallet.create"
	AuditActionWalletRetire       AuditAction = "wallet.retire"
	AuditActionRosterAdd          AuditAction = "roster.add"
	AuditActionRosterRemove       AuditAction = "roster.remove"
)

// AuditEntry is one immutable row in the back-office audit trail.
// Detail carries operation-specific context as free-form JSON.
type AuditEntry struct {
	ID         string          `json:"id"          db:"id"`
	AdminID    string          `json:"admin_id"    db:"admin_id"`
	AdminEmail string          `json:"admin_email" db:"admin_email"`
	Action     AuditAction     `json:"action"      db:"action"`
	TargetType string          `json:"target_type" db:"target_type"`
	TargetID   string          `json:"target_id"   db:"target_id"`
	Detail     json.RawMessage `json:"detail"      db:"detail"`
	CreatedAt  time.Time       `json:"created_at"  db:"created_at"`
}

// AuditListOptions controls paging and filtering for browsing the audit trail.
// DetailQuery is a JMESPath expression evaluated against each entry's Detail
// document; entries where the expression yields a falsy result are dropped.
type AuditListOptions struct {
	Limit       int
	Offset      int
	AdminID     *string
	Action      *AuditAction
	TargetType  *string
	DetailQuery string
}

// AppendAuditRequest represents parameters to append an audit entry.
type AppendAuditRequest struct {
	AdminID    string
	AdminEmail string
	Action     AuditAction
	TargetType string
	TargetID   string
	Detail     any
}

// Validate validates AppendAuditRequest.
func (r *AppendAuditRequest) Validate() error {
	if strings.TrimSpace(r.AdminID) == "" {
		return errors.New("admin_id is required")
	}
	if strings.TrimSpace(string(r.Action)) == "" {
		return errors.New("action is required")
	}
	if strings.TrimSpace(r.TargetType) == "" {
		return errors.New("target_type is required")
	}
	return nil
}
