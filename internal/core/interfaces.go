// Package core defines the contracts between the service layer and the
// data layer. Services depend on these interfaces, not on concrete
// repository implementations.
package core

import (
	"context"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// AccountRepository defines data operations for customer accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*model.Account, error)
	List(ctx context.Context, opts model.AccountsListOptions) ([]*model.Account, error)
	Update(ctx context.Context, id string, req *model.UpdateAccountRequest) (*model.Account, error)
	// ApproveFunding moves a pending_funding account to active.
	ApproveFunding(ctx context.Context, id string) (*model.Account, error)
}

// TransactionRepository defines data operations for ledger transactions.
type TransactionRepository interface {
	GetByID(ctx context.Context, id string) (*model.Transaction, error)
	List(ctx context.Context, opts model.TransactionsListOptions) ([]*model.Transaction, error)
	Update(ctx context.Context, id string, req *model.UpdateTransactionRequest) (*model.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// ReviewVerificationParams groups inputs for recording a KYC decision.
type ReviewVerificationParams struct {
	ID         string
	ReviewerID string
	Decision   model.VerificationStatus
	Note       *string
}

// VerificationRepository defines data operations for KYC verifications.
type VerificationRepository interface {
	GetByID(ctx context.Context, id string) (*model.Verification, error)
	List(ctx context.Context, opts model.VerificationsListOptions) ([]*model.Verification, error)
	Review(ctx context.Context, p ReviewVerificationParams) (*model.Verification, error)
}

// WireRepository defines data operations for wire transfers.
type WireRepository interface {
	GetByID(ctx context.Context, id string) (*model.WireTransfer, error)
	List(ctx context.Context, opts model.WiresListOptions) ([]*model.WireTransfer, error)
	// Transition moves a wire from one status to another; the from-status
	// guard is enforced atomically.
	Transition(ctx context.Context, id string, from, to model.WireStatus) (*model.WireTransfer, error)
}

// WalletRepository defines data operations for crypto deposit wallets.
type WalletRepository interface {
	Create(ctx context.Context, req *model.CreateWalletRequest) (*model.DepositWallet, error)
	GetByID(ctx context.Context, id string) (*model.DepositWallet, error)
	List(ctx context.Context, opts model.WalletsListOptions) ([]*model.DepositWallet, error)
	Retire(ctx context.Context, id string) (*model.DepositWallet, error)
}

// AuditRepository defines data operations for the append-only audit trail.
type AuditRepository interface {
	Append(ctx context.Context, req *model.AppendAuditRequest) (*model.AuditEntry, error)
	List(ctx context.Context, opts model.AuditListOptions) ([]*model.AuditEntry, error)
}

// AdminRosterRepository defines data operations for the admin roster,
// a superset of ports.AdminRoster adding management operations.
type AdminRosterRepository interface {
	FindByID(ctx context.Context, id string) (domainauth.AdminProfile, error)
	List(ctx context.Context) ([]domainauth.AdminProfile, error)
	Add(ctx context.Context, id, email string, role domainauth.Role) (domainauth.AdminProfile, error)
	Remove(ctx context.Context, id string) error
}
