package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/meridianbank/bankadmin-api/internal/core"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// VerificationServiceOptions groups dependencies for VerificationService.
type VerificationServiceOptions struct {
	VerificationRepo core.VerificationRepository
	AuditRepo        core.AuditRepository
	Logger           *slog.Logger
}

// VerificationService orchestrates KYC review workflow. A decision is
// always attributed to the acting admin and recorded on the audit trail.
type VerificationService struct {
	verifications core.VerificationRepository
	audit         auditTrail
}

// NewVerificationService constructs a new VerificationService.
func NewVerificationService(opts VerificationServiceOptions) *VerificationService {
	return &VerificationService{
		verifications: opts.VerificationRepo,
		audit:         newAuditTrail(opts.AuditRepo, opts.Logger),
	}
}

// GetByID retrieves a verification by ID.
func (s *VerificationService) GetByID(ctx context.Context, id string) (*model.Verification, error) {
	return s.verifications.GetByID(ctx, id)
}

// List returns verifications with optional filters, pending oldest-first.
func (s *VerificationService) List(ctx context.Context, opts model.VerificationsListOptions) ([]*model.Verification, error) {
	return s.verifications.List(ctx, opts)
}

// Review records the acting admin's decision on a pending verification.
func (s *VerificationService) Review(ctx context.Context, actor domainauth.AuthContext, id string, req *model.ReviewVerificationRequest) (*model.Verification, error) {
	if req == nil {
		return nil, errors.New("review request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if actor.AdminID == "" {
		return nil, errors.New("reviewer identity is required")
	}

	verification, err := s.verifications.Review(ctx, core.ReviewVerificationParams{
		ID:         id,
		ReviewerID: actor.AdminID,
		Decision:   req.Decision,
		Note:       req.Note,
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, model.AuditActionVerificationReview, "verification", id, map[string]any{
		"decision": req.Decision,
		"note":     req.Note,
	})
	return verification, nil
}
