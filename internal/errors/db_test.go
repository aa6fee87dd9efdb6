package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError_Nil(t *testing.T) {
	assert.NoError(t, MapDBError(nil))
}

func TestMapDBError_ContextErrors(t *testing.T) {
	assert.True(t, IsTimeout(MapDBError(context.DeadlineExceeded)))
	assert.Equal(t, ErrCodeCanceled, GetCode(MapDBError(context.Canceled)))
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "Key (address)=(bc1q...) already exists.",
	}

	err := MapDBError(pgErr)

	require.True(t, IsConflict(err))
	assert.Equal(t, "address", GetField(err))
}

func TestMapDBError_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:      pgerrcode.ForeignKeyViolation,
		TableName: "transactions",
	}

	err := MapDBError(pgErr)

	require.True(t, IsForeignKey(err))
	assert.Contains(t, err.Error(), "a transaction")
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "beneficiary",
	}

	err := MapDBError(pgErr)

	require.True(t, IsValidation(err))
	assert.Equal(t, "beneficiary", GetField(err))
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	err := MapDBError(pgErr)
	assert.Equal(t, ErrCodeInternal, GetCode(err))
}

func TestMapDBError_Passthrough(t *testing.T) {
	plain := errors.New("something else")
	assert.Equal(t, plain, MapDBError(plain))
}
