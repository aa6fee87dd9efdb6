package service

import (
	"context"
	"log/slog"

	"github.com/meridianbank/bankadmin-api/internal/core"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	AccountRepo core.AccountRepository
	AuditRepo   core.AuditRepository
	Logger      *slog.Logger
}

// AccountService orchestrates staff operations on customer accounts.
// Mutations record an audit entry attributed to the acting admin.
type AccountService struct {
	accounts core.AccountRepository
	audit    auditTrail
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	return &AccountService{
		accounts: opts.AccountRepo,
		audit:    newAuditTrail(opts.AuditRepo, opts.Logger),
	}
}

// GetByID retrieves an account by ID.
func (s *AccountService) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// List returns a page of accounts with optional filters.
func (s *AccountService) List(ctx context.Context, opts model.AccountsListOptions) ([]*model.Account, error) {
	return s.accounts.List(ctx, opts)
}

// Update applies staff edits to an account.
func (s *AccountService) Update(ctx context.Context, actor domainauth.AuthContext, id string, req *model.UpdateAccountRequest) (*model.Account, error) {
	account, err := s.accounts.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, model.AuditActionAccountUpdate, "account", id, req)
	return account, nil
}

// ApproveFunding moves a pending_funding account to active.
func (s *AccountService) ApproveFunding(ctx context.Context, actor domainauth.AuthContext, id string) (*model.Account, error) {
	account, err := s.accounts.ApproveFunding(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, model.AuditActionAccountApproveFund, "account", id, map[string]any{
		"status": account.Status,
	})
	return account, nil
}
