package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/platform/logger"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// reviewColumns is the column list every review query scans.
const reviewColumns = `id, session_id, from_profile_id, to_profile_id, content, rating, created_at`

// Create implements store.ReviewStore.Create
// The reviews table carries UNIQUE(session_id); a second review for the same
// session surfaces as store.ErrReviewExists.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (id, session_id, from_profile_id, to_profile_id, content, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.SessionID,
		review.FromProfileID,
		review.ToProfileID,
		review.Content,
		review.Rating,
		review.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate review for session",
				slog.String("session_id", review.SessionID.String()))
			return fmt.Errorf("%w: session %s", store.ErrReviewExists, review.SessionID)
		}

		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()),
			slog.String("session_id", review.SessionID.String()))
		return MapError(err)
	}

	log.Info("review created successfully",
		slog.String("review_id", review.ID.String()),
		slog.String("session_id", review.SessionID.String()),
		slog.Int("rating", review.Rating))
	return nil
}

// GetByID implements store.ReviewStore.GetByID
func (s *PostgresReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var review domain.Review
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.SessionID,
		&review.FromProfileID,
		&review.ToProfileID,
		&review.Content,
		&review.Rating,
		&review.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review by ID",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, MapError(err)
	}

	return &review, nil
}

// ListForMentor implements store.ReviewStore.ListForMentor
// Filtering, ordering and the total count are all pushed to SQL so no more
// than one page of records is ever loaded.
func (s *PostgresReviewStore) ListForMentor(
	ctx context.Context,
	profileID uuid.UUID,
	limit, offset int,
) ([]*domain.Review, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + reviewColumns + `, COUNT(*) OVER() AS total
		FROM reviews
		WHERE to_profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, profileID, limit, offset)
	if err != nil {
		log.Error("failed to query reviews for mentor",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, 0, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	reviews := []*domain.Review{}
	total := 0
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.ID,
			&review.SessionID,
			&review.FromProfileID,
			&review.ToProfileID,
			&review.Content,
			&review.Rating,
			&review.CreatedAt,
			&total,
		)
		if err != nil {
			log.Error("failed to scan review row",
				slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}

		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	if len(reviews) == 0 && offset > 0 {
		countQuery := `SELECT COUNT(*) FROM reviews WHERE to_profile_id = $1`
		if err := s.db.QueryRowContext(ctx, countQuery, profileID).Scan(&total); err != nil {
			return nil, 0, MapError(err)
		}
	}

	return reviews, total, nil
}

// RatingSummaryForMentor implements store.ReviewStore.RatingSummaryForMentor
// COALESCE pins the average to exactly 0 for the empty set.
func (s *PostgresReviewStore) RatingSummaryForMentor(
	ctx context.Context,
	profileID uuid.UUID,
) (store.RatingSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE to_profile_id = $1
	`

	var summary store.RatingSummary
	err := s.db.QueryRowContext(ctx, query, profileID).Scan(&summary.Count, &summary.Average)
	if err != nil {
		return store.RatingSummary{}, MapError(err)
	}

	return summary, nil
}

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{
		db:     tx,
		logger: s.logger,
	}
}
