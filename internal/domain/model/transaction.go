//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxTransactionDescriptionLen = 1024

// TransactionStatus is the settlement state of a ledger transaction.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusPosted   TransactionStatus = "posted"
	TransactionStatusReversed TransactionStatus = "reversed"
)

// Valid reports whether the transaction status is supported.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusPosted, TransactionStatusReversed:
		return true
	default:
		return false
	}
}

// ParseTransactionStatus normalizes a status string and reports whether it is supported.
func ParseTransactionStatus(value string) (TransactionStatus, bool) {
	status := TransactionStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// TransactionKind distinguishes credits from debits.
type TransactionKind string

const (
	TransactionKindCredit TransactionKind = "credit"
	TransactionKindDebit  TransactionKind = "debit"
)

// Valid reports whether the transaction kind is supported.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindCredit || k == TransactionKindDebit
}

// Transaction represents one ledger entry on a customer account.
type Transaction struct {
	ID          string            `json:"id"          db:"id"`
	AccountID   string            `json:"account_id"  db:"account_id"`
	Kind        TransactionKind   `json:"kind"        db:"kind"`
	Status      TransactionStatus `json:"status"      db:"status"`
	AmountCents int64             `json:"amount_cents" db:"amount_cents"`
	Currency    string            `json:"currency"    db:"currency"`
	Description string            `json:"description" db:"description"`
	CreatedAt   time.Time         `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"  db:"updated_at"`
}

// TransactionsListOptions controls paging and filtering for listing transactions.
type TransactionsListOptions struct {
	Limit     int
	Offset    int
	AccountID *string
	Status    *TransactionStatus
}

// UpdateTransactionRequest represents staff edits to a transaction.
type UpdateTransactionRequest struct {
	AmountCents *int64             `json:"amount_cents,omitempty"`
	Description *string            `json:"description,omitempty"`
	Status      *TransactionStatus `json:"status,omitempty"`
}

// Validate validates UpdateTransactionRequest.
func (r *UpdateTransactionRequest) Validate() error {
	if r.AmountCents != nil && *r.AmountCents <= 0 {
		return errors.New("amount_cents must be > 0")
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxTransactionDescriptionLen {
		return errors.New("description cannot exceed 1024 characters")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of: pending, posted, reversed")
	}
	if r.AmountCents == nil && r.Description == nil && r.Status == nil {
		return errors.New("at least one field must be provided")
	}
	return nil
}
