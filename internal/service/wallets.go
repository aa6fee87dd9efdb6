package service

import (
	"context"
	"log/slog"

	"github.com/meridianbank/bankadmin-api/internal/core"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// WalletServiceOptions groups dependencies for WalletService.
type WalletServiceOptions struct {
	WalletRepo core.WalletRepository
	AuditRepo  core.AuditRepository
	Logger     *slog.Logger
}

// WalletService orchestrates staff operations on crypto deposit wallets.
// Wallets are never deleted: retiring keeps the address on record for
// deposit attribution.
type WalletService struct {
	wallets core.WalletRepository
	audit   auditTrail
}

// NewWalletService constructs a new WalletService.
func NewWalletService(opts WalletServiceOptions) *WalletService {
	return &WalletService{
		wallets: opts.WalletRepo,
		audit:   newAuditTrail(opts.AuditRepo, opts.Logger),
	}
}

// Create assigns a new deposit wallet to an account.
func (s *WalletService) Create(ctx context.Context, actor domainauth.AuthContext, req *model.CreateWalletRequest) (*model.DepositWallet, error) {
	wallet, err := s.wallets.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, model.AuditActionWalletCreate, "deposit_wallet", wallet.ID, map[string]any{
		"account_id": wallet.AccountID,
		"asset":      wallet.Asset,
	})
	return wallet, nil
}

// GetByID retrieves a deposit wallet by ID.
func (s *WalletService) GetByID(ctx context.Context, id string) (*model.DepositWallet, error) {
	return s.wallets.GetByID(ctx, id)
}

// List returns a page of deposit wallets with optional filters.
func (s *WalletService) List(ctx context.Context, opts model.WalletsListOptions) ([]*model.DepositWallet, error) {
	return s.wallets.List(ctx, opts)
}

// Retire marks an active wallet as retired.
func (s *WalletService) Retire(ctx context.Context, actor domainauth.AuthContext, id string) (*model.DepositWallet, error) {
	wallet, err := s.wallets.Retire(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, model.AuditActionWalletRetire, "deposit_wallet", id, nil)
	return wallet, nil
}
