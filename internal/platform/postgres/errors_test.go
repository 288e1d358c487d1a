package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/mentorhub/mentorhub-api/internal/platform/postgres"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

func TestMapError(t *testing.T) {
	testCases := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "nil passes through",
			in:   nil,
			want: nil,
		},
		{
			name: "no rows maps to not found",
			in:   sql.ErrNoRows,
			want: store.ErrNotFound,
		},
		{
			name: "wrapped no rows maps to not found",
			in:   fmt.Errorf("query failed: %w", sql.ErrNoRows),
			want: store.ErrNotFound,
		},
		{
			name: "unique violation maps to duplicate",
			in:   &pgconn.PgError{Code: "23505", ConstraintName: "reviews_session_id_key"},
			want: store.ErrDuplicate,
		},
		{
			name: "foreign key violation maps to invalid entity",
			in:   &pgconn.PgError{Code: "23503", ConstraintName: "sessions_to_profile_id_fkey"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "check violation maps to invalid entity",
			in:   &pgconn.PgError{Code: "23514", ConstraintName: "reviews_rating_check"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation maps to invalid entity",
			in:   &pgconn.PgError{Code: "23502", ColumnName: "topic"},
			want: store.ErrInvalidEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := postgres.MapError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")
	assert.Equal(t, cause, postgres.MapError(cause))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, postgres.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, postgres.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, postgres.IsUniqueViolation(errors.New("other")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, postgres.IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, postgres.IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

// fakeResult implements sql.Result for CheckRowsAffected tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, postgres.CheckRowsAffected(fakeResult{rows: 1}, "session"))

	err := postgres.CheckRowsAffected(fakeResult{rows: 0}, "session")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "session")

	err = postgres.CheckRowsAffected(fakeResult{rows: 0}, "")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, postgres.CheckRowsAffected(nil, "session"))

	assert.Error(t, postgres.CheckRowsAffected(fakeResult{err: errors.New("driver does not support")}, "session"))
}
