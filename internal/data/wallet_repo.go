package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meridianbank/bankadmin-api/internal/data/pgxutil"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	apperrors "github.com/meridianbank/bankadmin-api/internal/errors"
)

var (
	// ErrWalletNotFound is returned when a deposit wallet is not found.
	ErrWalletNotFound = errors.New("deposit wallet not found")
	// ErrWalletAlreadyRetired is returned when retiring a wallet that is not active.
	ErrWalletAlreadyRetired = errors.New("deposit wallet already retired")
)

const walletColumns = `id, account_id, asset, address, status, created_at`

// WalletRepo provides database operations for crypto deposit wallets.
type WalletRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewWalletRepo creates a new WalletRepo with real time provider.
func NewWalletRepo(db *sql.DB) *WalletRepo {
	return &WalletRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewWalletRepoWithTimeProvider creates a new WalletRepo with a custom time provider (useful for tests).
func NewWalletRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *WalletRepo {
	return &WalletRepo{DB: db, timeProvider: tp}
}

// Create assigns a new deposit wallet to an account.
func (r *WalletRepo) Create(ctx context.Context, req *model.CreateWalletRequest) (*model.DepositWallet, error) {
	if req == nil {
		return nil, errors.New("create wallet request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.DepositWallet
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			INSERT INTO deposit_wallets (id, account_id, asset, address, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+walletColumns+`
		`, uuid.NewString(), req.AccountID, req.Asset, req.Address, model.WalletStatusActive, r.timeProvider.Now().UTC())
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.DepositWallet])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("create wallet: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves a deposit wallet by ID.
func (r *WalletRepo) GetByID(ctx context.Context, id string) (*model.DepositWallet, error) {
	var out model.DepositWallet
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `SELECT `+walletColumns+` FROM deposit_wallets WHERE id = $1`, id)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.DepositWallet])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet by id: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves deposit wallets with optional filters and pagination.
func (r *WalletRepo) List(ctx context.Context, opts model.WalletsListOptions) ([]*model.DepositWallet, error) {
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
	if opts.Asset != nil {
		args = append(args, strings.ToUpper(strings.TrimSpace(*opts.Asset)))
		where = append(where, "asset = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + walletColumns + ` FROM deposit_wallets`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.DepositWallet
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, query, args...)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		rowsOut, qerr = pgx.CollectRows(rows, pgx.RowToStructByName[model.DepositWallet])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.DepositWallet, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Retire marks an active wallet as retired. Retired wallets are kept for
// deposit attribution history and are never deleted.
func (r *WalletRepo) Retire(ctx context.Context, id string) (*model.DepositWallet, error) {
	var out model.DepositWallet
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE deposit_wallets SET status = $2
			WHERE id = $1 AND status = $3
			RETURNING `+walletColumns+`
		`, id, model.WalletStatusRetired, model.WalletStatusActive)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.DepositWallet])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, gerr := r.GetByID(ctx, id); gerr != nil {
				return nil, gerr
			}
			return nil, ErrWalletAlreadyRetired
		}
		return nil, fmt.Errorf("retire wallet: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}
