package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/meridianbank/bankadmin-api/internal/data/pgxutil"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	apperrors "github.com/meridianbank/bankadmin-api/internal/errors"
)

// ErrAccountNotFound is returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountNotPendingFunding is returned when funding approval is attempted
// on an account that is not awaiting funding.
var ErrAccountNotPendingFunding = errors.New("account is not pending funding")

const accountColumns = `id, holder_name, email, status, balance_cents, currency, created_at, updated_at`

// AccountRepo provides database operations for customer accounts.
type AccountRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAccountRepo creates a new AccountRepo with real time provider.
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAccountRepoWithTimeProvider creates a new AccountRepo with a custom time provider (useful for tests).
func NewAccountRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: tp}
}

// GetByID retrieves an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var out model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by id: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves accounts with optional filters and pagination.
func (r *AccountRepo) List(ctx context.Context, opts model.AccountsListOptions) ([]*model.Account, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(holder_name ILIKE $"+n+" OR email ILIKE $"+n+")")
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, query, args...)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		rowsOut, qerr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Account])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Account, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update applies staff edits to an account.
func (r *AccountRepo) Update(ctx context.Context, id string, req *model.UpdateAccountRequest) (*model.Account, error) {
	if req == nil {
		return nil, errors.New("update account request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE accounts SET
				holder_name = COALESCE($2, holder_name),
				email       = COALESCE($3, email),
				status      = COALESCE($4, status),
				updated_at  = $5
			WHERE id = $1
			RETURNING `+accountColumns+`
		`, id, req.HolderName, req.Email, req.Status, r.timeProvider.Now().UTC())
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("update account: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// ApproveFunding transitions an account from pending_funding to active.
// The transition is guarded in SQL so concurrent approvals cannot double-apply.
func (r *AccountRepo) ApproveFunding(ctx context.Context, id string) (*model.Account, error) {
	var out model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE accounts SET status = $3, updated_at = $4
			WHERE id = $1 AND status = $2
			RETURNING `+accountColumns+`
		`, id, model.AccountStatusPendingFunding, model.AccountStatusActive, r.timeProvider.Now().UTC())
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyFundingFailure(ctx, id)
		}
		return nil, fmt.Errorf("approve funding: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// classifyFundingFailure distinguishes "no such account" from "wrong status"
// after a guarded transition matched zero rows.
func (r *AccountRepo) classifyFundingFailure(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrAccountNotPendingFunding
}
