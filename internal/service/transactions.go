package service

import (
	"context"
	"log/slog"

	"github.com/meridianbank/bankadmin-api/internal/core"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// TransactionServiceOptions groups dependencies for TransactionService.
type TransactionServiceOptions struct {
	TransactionRepo core.TransactionRepository
	AuditRepo       core.AuditRepository
	Logger          *slog.Logger
}

// TransactionService orchestrates staff operations on ledger transactions.
type TransactionService struct {
	transactions core.TransactionRepository
	audit        auditTrail
}

// NewTransactionService constructs a new TransactionService.
func NewTransactionService(opts TransactionServiceOptions) *TransactionService {
	return &TransactionService{
		transactions: opts.TransactionRepo,
		audit:        newAuditTrail(opts.AuditRepo, opts.Logger),
	}
}

// GetByID retrieves a transaction by ID.
func (s *TransactionService) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

// List returns a page of transactions with optional filters.
func (s *TransactionService) List(ctx context.Context, opts model.TransactionsListOptions) ([]*model.Transaction, error) {
	return s.transactions.List(ctx, opts)
}

// Update applies staff edits to a transaction.
func (s *TransactionService) Update(ctx context.Context, actor domainauth.AuthContext, id string, req *model.UpdateTransactionRequest) (*model.Transaction, error) {
	txn, err := s.transactions.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, model.AuditActionTransactionUpdate, "transaction", id, req)
	return txn, nil
}

// Delete removes a transaction from the ledger.
func (s *TransactionService) Delete(ctx context.Context, actor domainauth.AuthContext, id string) error {
	if err := s.transactions.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, model.AuditActionTransactionDelete, "transaction", id, nil)
	return nil
}
