package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/meridianbank/bankadmin-api/internal/core"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// Hand-written stubs for the core repository interfaces. Each method
// delegates to an optional func field so tests configure only what they
// need.

type stubAccountRepo struct {
	getFunc     func(ctx context.Context, id string) (*model.Account, error)
	listFunc    func(ctx context.Context, opts model.AccountsListOptions) ([]*model.Account, error)
	updateFunc  func(ctx context.Context, id string, req *model.UpdateAccountRequest) (*model.Account, error)
	approveFunc func(ctx context.Context, id string) (*model.Account, error)
}

func (s *stubAccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return s.getFunc(ctx, id)
}

func (s *stubAccountRepo) List(ctx context.Context, opts model.AccountsListOptions) ([]*model.Account, error) {
	return s.listFunc(ctx, opts)
}

func (s *stubAccountRepo) Update(ctx context.Context, id string, req *model.UpdateAccountRequest) (*model.Account, error) {
	return s.updateFunc(ctx, id, req)
}

func (s *stubAccountRepo) ApproveFunding(ctx context.Context, id string) (*model.Account, error) {
	return s.approveFunc(ctx, id)
}

type stubTransactionRepo struct {
	getFunc    func(ctx context.Context, id string) (*model.Transaction, error)
	listFunc   func(ctx context.Context, opts model.TransactionsListOptions) ([]*model.Transaction, error)
	updateFunc func(ctx context.Context, id string, req *model.UpdateTransactionRequest) (*model.Transaction, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (s *stubTransactionRepo) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	return s.getFunc(ctx, id)
}

func (s *stubTransactionRepo) List(ctx context.Context, opts model.TransactionsListOptions) ([]*model.Transaction, error) {
	return s.listFunc(ctx, opts)
}

func (s *stubTransactionRepo) Update(ctx context.Context, id string, req *model.UpdateTransactionRequest) (*model.Transaction, error) {
	return s.updateFunc(ctx, id, req)
}

func (s *stubTransactionRepo) Delete(ctx context.Context, id string) error {
	return s.deleteFunc(ctx, id)
}

type stubVerificationRepo struct {
	getFunc    func(ctx context.Context, id string) (*model.Verification, error)
	listFunc   func(ctx context.Context, opts model.VerificationsListOptions) ([]*model.Verification, error)
	reviewFunc func(ctx context.Context, p core.ReviewVerificationParams) (*model.Verification, error)
}

func (s *stubVerificationRepo) GetByID(ctx context.Context, id string) (*model.Verification, error) {
	return s.getFunc(ctx, id)
}

func (s *stubVerificationRepo) List(ctx context.Context, opts model.VerificationsListOptions) ([]*model.Verification, error) {
	return s.listFunc(ctx, opts)
}

func (s *stubVerificationRepo) Review(ctx context.Context, p core.ReviewVerificationParams) (*model.Verification, error) {
	return s.reviewFunc(ctx, p)
}

type stubWireRepo struct {
	getFunc        func(ctx context.Context, id string) (*model.WireTransfer, error)
	listFunc       func(ctx context.Context, opts model.WiresListOptions) ([]*model.WireTransfer, error)
	transitionFunc func(ctx context.Context, id string, from, to model.WireStatus) (*model.WireTransfer, error)
}

func (s *stubWireRepo) GetByID(ctx context.Context, id string) (*model.WireTransfer, error) {
	return s.getFunc(ctx, id)
}

func (s *stubWireRepo) List(ctx context.Context, opts model.WiresListOptions) ([]*model.WireTransfer, error) {
	return s.listFunc(ctx, opts)
}

func (s *stubWireRepo) Transition(ctx context.Context, id string, from, to model.WireStatus) (*model.WireTransfer, error) {
	return s.transitionFunc(ctx, id, from, to)
}

type stubWalletRepo struct {
	createFunc func(ctx context.Context, req *model.CreateWalletRequest) (*model.DepositWallet, error)
	getFunc    func(ctx context.Context, id string) (*model.DepositWallet, error)
	listFunc   func(ctx context.Context, opts model.WalletsListOptions) ([]*model.DepositWallet, error)
	retireFunc func(ctx context.Context, id string) (*model.DepositWallet, error)
}

func (s *stubWalletRepo) Create(ctx context.Context, req *model.CreateWalletRequest) (*model.DepositWallet, error) {
	return s.createFunc(ctx, req)
}

func (s *stubWalletRepo) GetByID(ctx context.Context, id string) (*model.DepositWallet, error) {
	return s.getFunc(ctx, id)
}

func (s *stubWalletRepo) List(ctx context.Context, opts model.WalletsListOptions) ([]*model.DepositWallet, error) {
	return s.listFunc(ctx, opts)
}

func (s *stubWalletRepo) Retire(ctx context.Context, id string) (*model.DepositWallet, error) {
	return s.retireFunc(ctx, id)
}

type stubRosterRepo struct {
	findFunc   func(ctx context.Context, id string) (domainauth.AdminProfile, error)
	listFunc   func(ctx context.Context) ([]domainauth.AdminProfile, error)
	addFunc    func(ctx context.Context, id, email string, role domainauth.Role) (domainauth.AdminProfile, error)
	removeFunc func(ctx context.Context, id string) error
}

func (s *stubRosterRepo) FindByID(ctx context.Context, id string) (domainauth.AdminProfile, error) {
	return s.findFunc(ctx, id)
}

func (s *stubRosterRepo) List(ctx context.Context) ([]domainauth.AdminProfile, error) {
	return s.listFunc(ctx)
}

func (s *stubRosterRepo) Add(ctx context.Context, id, email string, role domainauth.Role) (domainauth.AdminProfile, error) {
	return s.addFunc(ctx, id, email, role)
}

func (s *stubRosterRepo) Remove(ctx context.Context, id string) error {
	return s.removeFunc(ctx, id)
}

// memoryAuditRepo collects appended entries in memory so tests can assert
// what the services recorded.
type memoryAuditRepo struct {
	mu      sync.Mutex
	entries []*model.AuditEntry
	failErr error
}

func (m *memoryAuditRepo) Append(_ context.Context, req *model.AppendAuditRequest) (*model.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	detail := json.RawMessage("{}")
	if req.Detail != nil {
		data, err := json.Marshal(req.Detail)
		if err != nil {
			return nil, err
		}
		detail = data
	}
	entry := &model.AuditEntry{
		AdminID:    req.AdminID,
		AdminEmail: req.AdminEmail,
		Action:     req.Action,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Detail:     detail,
	}
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memoryAuditRepo) List(_ context.Context, opts model.AuditListOptions) ([]*model.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.AuditEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if opts.AdminID != nil && e.AdminID != *opts.AdminID {
			continue
		}
		if opts.Action != nil && e.Action != *opts.Action {
			continue
		}
		if opts.TargetType != nil && e.TargetType != *opts.TargetType {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func testActor() domainauth.AuthContext {
	return domainauth.AuthContext{
		AdminID: "admin-1",
		Email:   "ops@meridianbank.example",
		Profile: domainauth.AdminProfile{ID: "admin-1", Role: domainauth.RoleAdmin},
	}
}
