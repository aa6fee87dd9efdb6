package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/meridianbank/bankadmin-api/internal/core"
	"github.com/meridianbank/bankadmin-api/internal/data/pgxutil"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	apperrors "github.com/meridianbank/bankadmin-api/internal/errors"
)

var (
	// ErrVerificationNotFound is returned when a verification is not found.
	ErrVerificationNotFound = errors.New("verification not found")
	// ErrVerificationAlreadyReviewed is returned when a decision is recorded
	// against a verification that is no longer pending.
	ErrVerificationAlreadyReviewed = errors.New("verification already reviewed")
)

const verificationColumns = `id, account_id, document_type, status, reviewed_by, reviewed_at, review_note, created_at`

// VerificationRepo provides database operations for KYC verifications.
type VerificationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewVerificationRepo creates a new VerificationRepo with real time provider.
func NewVerificationRepo(db *sql.DB) *VerificationRepo {
	return &VerificationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewVerificationRepoWithTimeProvider creates a new VerificationRepo with a custom time provider (useful for tests).
func NewVerificationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *VerificationRepo {
	return &VerificationRepo{DB: db, timeProvider: tp}
}

// GetByID retrieves a verification by ID.
func (r *VerificationRepo) GetByID(ctx context.Context, id string) (*model.Verification, error) {
	var out model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `SELECT `+verificationColumns+` FROM verifications WHERE id = $1`, id)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Verification])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("get verification by id: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves verifications with optional filters and pagination.
// Pending entries are listed oldest-first so reviewers work the backlog in order.
func (r *VerificationRepo) List(ctx context.Context, opts model.VerificationsListOptions) ([]*model.Verification, error) {
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

	query := `SELECT ` + verificationColumns + ` FROM verifications`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, query, args...)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		rowsOut, qerr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Verification])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Verification, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Review records a staff decision on a pending verification. The pending
// guard lives in SQL so two reviewers cannot both record a decision.
func (r *VerificationRepo) Review(ctx context.Context, p core.ReviewVerificationParams) (*model.Verification, error) {
	var out model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE verifications SET
				status      = $2,
				reviewed_by = $3,
				reviewed_at = $4,
				review_note = $5
			WHERE id = $1 AND status = $6
			RETURNING `+verificationColumns+`
		`, p.ID, p.Decision, p.ReviewerID, r.timeProvider.Now().UTC(), p.Note, model.VerificationStatusPending)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Verification])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, gerr := r.GetByID(ctx, p.ID); gerr != nil {
				return nil, gerr
			}
			return nil, ErrVerificationAlreadyReviewed
		}
		return nil, fmt.Errorf("review verification: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}
