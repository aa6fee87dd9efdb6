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

// ErrTransactionNotFound is returned when a transaction is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

const transactionColumns = `id, account_id, kind, status, amount_cents, currency, description, created_at, updated_at`

// TransactionRepo provides database operations for ledger transactions.
type TransactionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTransactionRepo creates a new TransactionRepo with real time provider.
func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTransactionRepoWithTimeProvider creates a new TransactionRepo with a custom time provider (useful for tests).
func NewTransactionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TransactionRepo {
	return &TransactionRepo{DB: db, timeProvider: tp}
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	var out model.Transaction
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction by id: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves transactions with optional filters and pagination.
func (r *TransactionRepo) List(ctx context.Context, opts model.TransactionsListOptions) ([]*model.Transaction, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if opts.AccountID != nil {
		args = append(args, *opts.AccountID)
		where = append(where, "account_id = $"+strconv.Itoa(len(args)))
	}
	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Transaction
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, query, args...)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		rowsOut, qerr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Transaction])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Transaction, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update applies staff edits to a transaction.
func (r *TransactionRepo) Update(ctx context.Context, id string, req *model.UpdateTransactionRequest) (*model.Transaction, error) {
	if req == nil {
		return nil, errors.New("update transaction request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Transaction
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE transactions SET
				amount_cents = COALESCE($2, amount_cents),
				description  = COALESCE($3, description),
				status       = COALESCE($4, status),
				updated_at   = $5
			WHERE id = $1
			RETURNING `+transactionColumns+`
		`, id, req.AmountCents, req.Description, req.Status, r.timeProvider.Now().UTC())
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Delete removes a transaction. Returns ErrTransactionNotFound when absent.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	var deleted int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, qerr := conn.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
		if qerr != nil {
			return qerr
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", apperrors.MapDBError(err))
	}
	if deleted == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
