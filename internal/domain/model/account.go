//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxHolderNameLen = 255

// AccountStatus is the lifecycle state of a customer account.
type AccountStatus string

const (
	AccountStatusPendingFunding AccountStatus = "pending_funding"
	AccountStatusActive         AccountStatus = "active"
	AccountStatusSuspended      AccountStatus = "suspended"
	AccountStatusClosed         AccountStatus = "closed"
)

// Valid reports whether the account status is supported.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusPendingFunding, AccountStatusActive, AccountStatusSuspended, AccountStatusClosed:
		return true
	default:
		return false
	}
}

// ParseAccountStatus normalizes a status string and reports whether it is supported.
func ParseAccountStatus(value string) (AccountStatus, bool) {
	status := AccountStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Account represents a customer account as seen by back-office staff.
type Account struct {
	ID           string        `json:"id"            db:"id"`
	HolderName   string        `json:"holder_name"   db:"holder_name"`
	Email        string        `json:"email"         db:"email"`
	Status       AccountStatus `json:"status"        db:"status"`
	BalanceCents int64         `json:"balance_cents" db:"balance_cents"`
	Currency     string        `json:"currency"      db:"currency"`
	CreatedAt    time.Time     `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"    db:"updated_at"`
}

// AccountsListOptions controls paging and filtering for listing accounts.
// Q matches holder name or email via ILIKE substring; Status matches exactly.
type AccountsListOptions struct {
	Limit  int
	Offset int
	Q      *string
	Status *AccountStatus
}

// UpdateAccountRequest represents parameters to update an Account.
type UpdateAccountRequest struct {
	HolderName *string        `json:"holder_name,omitempty"`
	Email      *string        `json:"email,omitempty"`
	Status     *AccountStatus `json:"status,omitempty"`
}

// Validate validates UpdateAccountRequest.
func (r *UpdateAccountRequest) Validate() error {
	if r.HolderName != nil {
		name := strings.TrimSpace(*r.HolderName)
		if name == "" {
			return errors.New("holder_name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxHolderNameLen {
			return errors.New("holder_name cannot exceed 255 characters")
		}
	}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		return errors.New("email must be a valid address")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of: pending_funding, active, suspended, closed")
	}
	return nil
}
