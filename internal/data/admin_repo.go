package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/meridianbank/bankadmin-api/internal/data/pgxutil"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	apperrors "github.com/meridianbank/bankadmin-api/internal/errors"
)

// ErrAdminNotFound is returned when a subject has no admin roster entry.
var ErrAdminNotFound = errors.New("admin roster entry not found")

// AdminRepo provides database operations for the admin roster.
// It implements ports.AdminRoster for the admin gate.
type AdminRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAdminRepo creates a new AdminRepo with real time provider.
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAdminRepoWithTimeProvider creates a new AdminRepo with a custom time provider (useful for tests).
func NewAdminRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AdminRepo {
	return &AdminRepo{DB: db, timeProvider: tp}
}

// FindByID retrieves the roster entry for a subject identifier.
// Returns ErrAdminNotFound when no entry exists; absence means "not an admin".
func (r *AdminRepo) FindByID(ctx context.Context, id string) (domainauth.AdminProfile, error) {
	var out domainauth.AdminProfile
	if strings.TrimSpace(id) == "" {
		return out, ErrAdminNotFound
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			SELECT id, email, role, created_at, updated_at
			FROM admin_users
			WHERE id = $1
		`, id)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.AdminProfile])
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.AdminProfile{}, ErrAdminNotFound
		}
		return domainauth.AdminProfile{}, fmt.Errorf("find admin by id: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// List retrieves all roster entries ordered by creation time.
func (r *AdminRepo) List(ctx context.Context) ([]domainauth.AdminProfile, error) {
	var out []domainauth.AdminProfile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			SELECT id, email, role, created_at, updated_at
			FROM admin_users
			ORDER BY created_at
		`)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectRows(rows, pgx.RowToStructByName[domainauth.AdminProfile])
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// Add inserts a new roster entry, granting admin privileges to the subject.
func (r *AdminRepo) Add(ctx context.Context, id, email string, role domainauth.Role) (domainauth.AdminProfile, error) {
	now := r.timeProvider.Now().UTC()

	var out domainauth.AdminProfile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			INSERT INTO admin_users (id, email, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING id, email, role, created_at, updated_at
		`, strings.TrimSpace(id), strings.ToLower(strings.TrimSpace(email)), role, now)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.AdminProfile])
		return qerr
	})
	if err != nil {
		return domainauth.AdminProfile{}, fmt.Errorf("add admin: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// Remove deletes a roster entry, revoking admin privileges.
// Returns ErrAdminNotFound when no entry existed.
func (r *AdminRepo) Remove(ctx context.Context, id string) error {
	var deleted int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, qerr := conn.Exec(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
		if qerr != nil {
			return qerr
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove admin: %w", apperrors.MapDBError(err))
	}
	if deleted == 0 {
		return ErrAdminNotFound
	}
	return nil
}
