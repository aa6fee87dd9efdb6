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

var (
	// ErrWireNotFound is returned when a wire transfer is not found.
	ErrWireNotFound = errors.New("wire transfer not found")
	// ErrWireInvalidTransition is returned when a status transition is not
	// permitted from the wire's current state.
	ErrWireInvalidTransition = errors.New("wire transfer status transition not permitted")
)

const wireColumns = `id, account_id, beneficiary, amount_cents, currency, status, reference, created_at, updated_at`

// WireRepo provides database operations for wire transfers.
type WireRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewWireRepo creates a new WireRepo with real time provider.
func NewWireRepo(db *sql.DB) *WireRepo {
	return &WireRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewWireRepoWithTimeProvider creates a new WireRepo with a custom time provider (useful for tests).
func NewWireRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *WireRepo {
	return &WireRepo{DB: db, timeProvider: tp}
}

// GetByID retrieves a wire transfer by ID.
func (r *WireRepo) GetByID(ctx context.Context, id string) (*model.WireTransfer, error) {
	var out model.WireTransfer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `SELECT `+wireColumns+` FROM wire_transfers WHERE id = $1`, id)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.WireTransfer])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWireNotFound
		}
		return nil, fmt.Errorf("get wire by id: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves wire transfers with optional filters and pagination.
func (r *WireRepo) List(ctx context.Context, opts model.WiresListOptions) ([]*model.WireTransfer, error) {
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
	if opts.AccountID != nil {
		args = append(args, *opts.AccountID)
		where = append(where, "account_id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + wireColumns + ` FROM wire_transfers`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.WireTransfer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, query, args...)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		rowsOut, qerr = pgx.CollectRows(rows, pgx.RowToStructByName[model.WireTransfer])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list wires: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.WireTransfer, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Transition moves a wire transfer from one status to another. The
// from-status guard lives in SQL so concurrent staff actions cannot race.
func (r *WireRepo) Transition(ctx context.Context, id string, from, to model.WireStatus) (*model.WireTransfer, error) {
	var out model.WireTransfer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE wire_transfers SET status = $3, updated_at = $4
			WHERE id = $1 AND status = $2
			RETURNING `+wireColumns+`
		`, id, from, to, r.timeProvider.Now().UTC())
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.WireTransfer])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, gerr := r.GetByID(ctx, id); gerr != nil {
				return nil, gerr
			}
			return nil, ErrWireInvalidTransition
		}
		return nil, fmt.Errorf("transition wire: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}
