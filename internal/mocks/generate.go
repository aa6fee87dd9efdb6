// Package mocks provides mock implementations for testing the bankadmin service.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces in internal/core. To regenerate mocks after
// interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	repo := mocks.NewMockAccountRepository(ctrl)
//	repo.EXPECT().GetByID(gomock.Any(), "acct-1").Return(account, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=account_repository_mock.go github.com/meridianbank/bankadmin-api/internal/core AccountRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=transaction_repository_mock.go github.com/meridianbank/bankadmin-api/internal/core TransactionRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=verification_repository_mock.go github.com/meridianbank/bankadmin-api/internal/core VerificationRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=wire_repository_mock.go github.com/meridianbank/bankadmin-api/internal/core WireRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=wallet_repository_mock.go github.com/meridianbank/bankadmin-api/internal/core WalletRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=audit_repository_mock.go github.com/meridianbank/bankadmin-api/internal/core AuditRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admin_roster_repository_mock.go github.com/meridianbank/bankadmin-api/internal/core AdminRosterRepository
