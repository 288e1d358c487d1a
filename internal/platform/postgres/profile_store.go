package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/platform/logger"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the ProfileStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// profileColumns is the column list every profile query scans.
const profileColumns = `id, user_id, display_name, contact_email,
		session_count, review_count, review_average_rating,
		aggregates_refreshed_at, created_at, updated_at`

// Create implements store.ProfileStore.Create
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	query := `
		INSERT INTO profiles (id, user_id, display_name, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.DisplayName,
		profile.ContactEmail,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return MapError(err)
	}

	log.Info("profile created successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// GetByID implements store.ProfileStore.GetByID
func (s *PostgresProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return s.queryProfile(ctx, query, id)
}

// GetByUserID implements store.ProfileStore.GetByUserID
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return s.queryProfile(ctx, query, userID)
}

// GetByIDForUpdate implements store.ProfileStore.GetByIDForUpdate
// It acquires a row-level lock so concurrent aggregate recalculations for the
// same profile are serialized. Must be called within a transaction.
func (s *PostgresProfileStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 FOR UPDATE`
	return s.queryProfile(ctx, query, id)
}

// queryProfile runs a single-row profile query and scans the result.
func (s *PostgresProfileStore) queryProfile(
	ctx context.Context,
	query string,
	arg any,
) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var profile domain.Profile
	var refreshedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.DisplayName,
		&profile.ContactEmail,
		&profile.SessionCount,
		&profile.ReviewCount,
		&profile.ReviewAverageRating,
		&refreshedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if refreshedAt.Valid {
		t := refreshedAt.Time
		profile.AggregatesRefreshedAt = &t
	}

	return &profile, nil
}

// UpdateAggregates implements store.ProfileStore.UpdateAggregates
// It rewrites the derived counters for a profile and stamps the refresh time.
func (s *PostgresProfileStore) UpdateAggregates(ctx context.Context, stats domain.ProfileStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()

	query := `
		UPDATE profiles
		SET session_count = $1,
		    review_count = $2,
		    review_average_rating = $3,
		    aggregates_refreshed_at = $4,
		    updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		stats.SessionCount,
		stats.ReviewCount,
		stats.ReviewAverageRating,
		now,
		stats.ProfileID,
	)

	if err != nil {
		log.Error("failed to update profile aggregates",
			slog.String("error", err.Error()),
			slog.String("profile_id", stats.ProfileID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "profile"); err != nil {
		return err
	}

	log.Debug("profile aggregates updated",
		slog.String("profile_id", stats.ProfileID.String()),
		slog.Int("session_count", stats.SessionCount),
		slog.Int("review_count", stats.ReviewCount),
		slog.Float64("review_average_rating", stats.ReviewAverageRating))
	return nil
}

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}
