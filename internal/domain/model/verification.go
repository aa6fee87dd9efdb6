//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxReviewNoteLen = 2048

// VerificationStatus is the review state of a KYC verification.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Valid reports whether the verification status is supported.
func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return true
	default:
		return false
	}
}

// ParseVerificationStatus normalizes a status string and reports whether it is supported.
func ParseVerificationStatus(value string) (VerificationStatus, bool) {
	status := VerificationStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Verification represents one KYC document submission awaiting staff review.
type Verification struct {
	ID           string             `json:"id"                    db:"id"`
	AccountID    string             `json:"account_id"            db:"account_id"`
	DocumentType string             `json:"document_type"         db:"document_type"`
	Status       VerificationStatus `json:"status"                db:"status"`
	ReviewedBy   *string            `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt   *time.Time         `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewNote   *string            `json:"review_note,omitempty" db:"review_note"`
	CreatedAt    time.Time          `json:"created_at"            db:"created_at"`
}

// VerificationsListOptions controls paging and filtering for listing verifications.
type VerificationsListOptions struct {
	Limit     int
	Offset    int
	Status    *VerificationStatus
	AccountID *string
}

// ReviewVerificationRequest records a staff decision on a verification.
// Decision must be approved or rejected; pending is not a valid decision.
type ReviewVerificationRequest struct {
	Decision VerificationStatus `json:"decision"`
	Note     *string            `json:"note,omitempty"`
}

// Validate validates ReviewVerificationRequest.
func (r *ReviewVerificationRequest) Validate() error {
	if r.Decision != VerificationStatusApproved && r.Decision != VerificationStatusRejected {
		return errors.New("decision must be approved or rejected")
	}
	if r.Note != nil && utf8.RuneCountInString(*r.Note) > maxReviewNoteLen {
		return errors.New("note cannot exceed 2048 characters")
	}
	return nil
}
