package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meridianbank/bankadmin-api/internal/data/pgxutil"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	apperrors "github.com/meridianbank/bankadmin-api/internal/errors"
)

const auditColumns = `id, admin_id, admin_email, action, target_type, target_id, detail, created_at`

// AuditRepo provides database operations for the audit trail.
// Entries are append-only; the only deletion path is the retention
// sweeper's age-based purge.
type AuditRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAuditRepo creates a new AuditRepo with real time provider.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAuditRepoWithTimeProvider creates a new AuditRepo with a custom time provider (useful for tests).
func NewAuditRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AuditRepo {
	return &AuditRepo{DB: db, timeProvider: tp}
}

// Append writes one audit entry. Detail is marshalled to JSONB; a nil
// detail is stored as an empty document.
func (r *AuditRepo) Append(ctx context.Context, req *model.AppendAuditRequest) (*model.AuditEntry, error) {
	if req == nil {
		return nil, errors.New("append audit request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	detail := json.RawMessage("{}")
	if req.Detail != nil {
		data, err := json.Marshal(req.Detail)
		if err != nil {
			return nil, fmt.Errorf("marshal audit detail: %w", err)
		}
		detail = data
	}

	var out model.AuditEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			INSERT INTO audit_log (id, admin_id, admin_email, action, target_type, target_id, detail, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+auditColumns+`
		`, uuid.NewString(), req.AdminID, req.AdminEmail, req.Action, req.TargetType, req.TargetID, detail,
			r.timeProvider.Now().UTC())
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AuditEntry])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("append audit entry: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves audit entries with optional filters, newest first.
// JMESPath detail filtering happens in the service layer; this method only
// applies SQL-expressible filters.
func (r *AuditRepo) List(ctx context.Context, opts model.AuditListOptions) ([]*model.AuditEntry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if opts.AdminID != nil {
		args = append(args, *opts.AdminID)
		where = append(where, "admin_id = $"+strconv.Itoa(len(args)))
	}
	if opts.Action != nil {
		args = append(args, *opts.Action)
		where = append(where, "action = $"+strconv.Itoa(len(args)))
	}
	if opts.TargetType != nil {
		args = append(args, *opts.TargetType)
		where = append(where, "target_type = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + auditColumns + ` FROM audit_log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.AuditEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, query, args...)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		rowsOut, qerr = pgx.CollectRows(rows, pgx.RowToStructByName[model.AuditEntry])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.AuditEntry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// DeleteOlderThan purges audit entries created before the cutoff and
// returns the number of rows removed.
func (r *AuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, execErr := conn.Exec(ctx, `DELETE FROM audit_log WHERE created_at < $1`, cutoff.UTC())
		if execErr != nil {
			return execErr
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete old audit entries: %w", apperrors.MapDBError(err))
	}
	return deleted, nil
}
