package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/meridianbank/bankadmin-api/internal/core"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// RosterServiceOptions groups dependencies for RosterService.
type RosterServiceOptions struct {
	RosterRepo core.AdminRosterRepository
	AuditRepo  core.AuditRepository
	Logger     *slog.Logger
}

// RosterService manages the admin roster itself. Every grant and
// revocation is audited, since roster rows are what the gate trusts.
type RosterService struct {
	roster core.AdminRosterRepository
	audit  auditTrail
}

// NewRosterService constructs a new RosterService.
func NewRosterService(opts RosterServiceOptions) *RosterService {
	return &RosterService{
		roster: opts.RosterRepo,
		audit:  newAuditTrail(opts.AuditRepo, opts.Logger),
	}
}

// List returns all roster entries.
func (s *RosterService) List(ctx context.Context) ([]domainauth.AdminProfile, error) {
	return s.roster.List(ctx)
}

// Add grants admin privileges to a subject.
func (s *RosterService) Add(ctx context.Context, actor domainauth.AuthContext, id, email string, role domainauth.Role) (domainauth.AdminProfile, error) {
	if strings.TrimSpace(id) == "" {
		return domainauth.AdminProfile{}, errors.New("subject id is required")
	}
	if strings.TrimSpace(email) == "" {
		return domainauth.AdminProfile{}, errors.New("email is required")
	}
	if role != domainauth.RoleAdmin && role != domainauth.RoleSupport {
		return domainauth.AdminProfile{}, errors.New("role must be admin or support")
	}

	profile, err := s.roster.Add(ctx, id, email, role)
	if err != nil {
		return domainauth.AdminProfile{}, err
	}

	s.audit.record(ctx, actor, model.AuditActionRosterAdd, "admin_user", profile.ID, map[string]any{
		"email": profile.Email,
		"role":  profile.Role,
	})
	return profile, nil
}

// Remove revokes a subject's admin privileges.
func (s *RosterService) Remove(ctx context.Context, actor domainauth.AuthContext, id string) error {
	if err := s.roster.Remove(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, model.AuditActionRosterRemove, "admin_user", id, nil)
	return nil
}
