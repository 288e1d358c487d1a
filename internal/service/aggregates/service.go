package aggregates

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/platform/metrics"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// Recalculator recomputes a profile's aggregate counters from source data.
// Callers invoke it inside the transaction that changed the inputs, passing
// that transaction so the recompute and the triggering write commit together.
type Recalculator interface {
	// Recalculate rewrites the counters for profileID and returns the fresh
	// values. The profile row is locked for the duration, serializing
	// concurrent recalculations of the same profile.
	Recalculate(ctx context.Context, tx *sql.Tx, profileID uuid.UUID) (domain.ProfileStats, error)
}

// StatsCache is the subset of the Redis cache the stats read path needs.
// A nil cache disables caching entirely.
type StatsCache interface {
	Get(ctx context.Context, profileID uuid.UUID) (*domain.ProfileStats, error)
	Set(ctx context.Context, stats domain.ProfileStats) error
	Invalidate(ctx context.Context, profileID uuid.UUID) error
}

// Service implements Recalculator and the stats read path.
type Service struct {
	profileStore store.ProfileStore
	sessionStore store.SessionStore
	reviewStore  store.ReviewStore
	cache        StatsCache
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

var _ Recalculator = (*Service)(nil)

// NewService creates the aggregates service. cache and m may be nil.
func NewService(
	profileStore store.ProfileStore,
	sessionStore store.SessionStore,
	reviewStore store.ReviewStore,
	cache StatsCache,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*Service, error) {
	if profileStore == nil || sessionStore == nil || reviewStore == nil {
		return nil, fmt.Errorf("aggregates service requires profile, session and review stores")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		profileStore: profileStore,
		sessionStore: sessionStore,
		reviewStore:  reviewStore,
		cache:        cache,
		metrics:      m,
		logger:       logger.With(slog.String("component", "aggregates_service")),
	}, nil
}

// Recalculate implements Recalculator.
//
// The recompute always reads from source: it never increments the stored
// counters, so a drifted value self-heals on the next trigger. Locking the
// profile row first means two transactions recomputing the same profile
// serialize, and the later one sees the earlier one's writes.
func (s *Service) Recalculate(
	ctx context.Context,
	tx *sql.Tx,
	profileID uuid.UUID,
) (domain.ProfileStats, error) {
	start := time.Now()

	profiles := s.profileStore
	sessions := s.sessionStore
	reviews := s.reviewStore
	if tx != nil {
		profiles = profiles.WithTx(tx)
		sessions = sessions.WithTx(tx)
		reviews = reviews.WithTx(tx)
	}

	if _, err := profiles.GetByIDForUpdate(ctx, profileID); err != nil {
		return domain.ProfileStats{}, fmt.Errorf("failed to lock profile for recalculation: %w", err)
	}

	sessionCount, err := sessions.CountForMentor(ctx, profileID)
	if err != nil {
		return domain.ProfileStats{}, fmt.Errorf("failed to count delivered sessions: %w", err)
	}

	summary, err := reviews.RatingSummaryForMentor(ctx, profileID)
	if err != nil {
		return domain.ProfileStats{}, fmt.Errorf("failed to summarize reviews: %w", err)
	}

	now := time.Now().UTC()
	stats := domain.ProfileStats{
		ProfileID:           profileID,
		SessionCount:        sessionCount,
		ReviewCount:         summary.Count,
		ReviewAverageRating: summary.Average,
		RefreshedAt:         &now,
	}

	if err := profiles.UpdateAggregates(ctx, stats); err != nil {
		return domain.ProfileStats{}, fmt.Errorf("failed to persist aggregates: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ObserveRecalc(start)
	}

	s.logger.Debug("recalculated profile aggregates",
		slog.String("profile_id", profileID.String()),
		slog.Int("session_count", stats.SessionCount),
		slog.Int("review_count", stats.ReviewCount),
		slog.Float64("review_average_rating", stats.ReviewAverageRating))

	return stats, nil
}

// GetStats returns the stored aggregate counters for a profile, reading
// through the cache when one is configured. Cache failures degrade to a
// database read.
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *Service) GetStats(ctx context.Context, profileID uuid.UUID) (domain.ProfileStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, profileID); err == nil && cached != nil {
			return *cached, nil
		}
	}

	profile, err := s.profileStore.GetByID(ctx, profileID)
	if err != nil {
		return domain.ProfileStats{}, err
	}

	stats := domain.ProfileStats{
		ProfileID:           profile.ID,
		SessionCount:        profile.SessionCount,
		ReviewCount:         profile.ReviewCount,
		ReviewAverageRating: profile.ReviewAverageRating,
		RefreshedAt:         profile.AggregatesRefreshedAt,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn("failed to cache profile stats",
				slog.String("profile_id", profileID.String()),
				slog.String("error", err.Error()))
		}
	}

	return stats, nil
}

// InvalidateStats drops the cached stats for a profile. Services call this
// after the transaction that recalculated the counters commits. Failures are
// logged and swallowed; the TTL bounds staleness.
func (s *Service) InvalidateStats(ctx context.Context, profileID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, profileID); err != nil {
		s.logger.Warn("failed to invalidate cached profile stats",
			slog.String("profile_id", profileID.String()),
			slog.String("error", err.Error()))
	}
}
