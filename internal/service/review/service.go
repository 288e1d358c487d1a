package review

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/platform/logger"
	"github.com/mentorhub/mentorhub-api/internal/platform/metrics"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// AggregatesEngine is the slice of the aggregates service this package
// needs: the in-transaction recompute and the post-commit cache drop.
type AggregatesEngine interface {
	Recalculate(ctx context.Context, tx *sql.Tx, profileID uuid.UUID) (domain.ProfileStats, error)
	InvalidateStats(ctx context.Context, profileID uuid.UUID)
}

// Service provides review operations.
type Service interface {
	// Submit creates the review for a completed session and retires the
	// session to reviewed. The transition, the insert and the mentor's
	// aggregate recompute commit atomically.
	// Returns store.ErrSessionNotFound, ErrNotReviewer,
	// store.ErrInvalidTransition when the session is not completed,
	// store.ErrReviewExists on a duplicate, and domain validation errors for
	// bad content or rating.
	Submit(
		ctx context.Context,
		sessionID, actingProfileID uuid.UUID,
		content string,
		rating int,
	) (*domain.Review, error)

	// GetByID retrieves a single review.
	// Returns store.ErrReviewNotFound if it does not exist.
	GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)

	// ListForProfile returns the reviews left on a mentor profile's sessions,
	// newest first; page starts at 1. The second return value is the total
	// matching count. Returns store.ErrProfileNotFound for unknown profiles.
	ListForProfile(
		ctx context.Context,
		profileID uuid.UUID,
		page, limit int,
	) ([]*domain.Review, int, error)
}

// serviceImpl implements Service.
type serviceImpl struct {
	profileStore store.ProfileStore
	sessionStore store.SessionStore
	reviewStore  store.ReviewStore
	txRunner     store.TxRunner
	aggregates   AggregatesEngine
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates the review service. m may be nil.
func NewService(
	profileStore store.ProfileStore,
	sessionStore store.SessionStore,
	reviewStore store.ReviewStore,
	txRunner store.TxRunner,
	aggregates AggregatesEngine,
	m *metrics.Metrics,
	logger *slog.Logger,
) (Service, error) {
	if profileStore == nil || sessionStore == nil || reviewStore == nil {
		return nil, fmt.Errorf("review service requires profile, session and review stores")
	}
	if txRunner == nil {
		return nil, fmt.Errorf("review service requires a transaction runner")
	}
	if aggregates == nil {
		return nil, fmt.Errorf("review service requires the aggregates engine")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		profileStore: profileStore,
		sessionStore: sessionStore,
		reviewStore:  reviewStore,
		txRunner:     txRunner,
		aggregates:   aggregates,
		metrics:      m,
		logger:       logger.With(slog.String("component", "review_service")),
	}, nil
}

func (s *serviceImpl) Submit(
	ctx context.Context,
	sessionID, actingProfileID uuid.UUID,
	content string,
	rating int,
) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.FromProfileID != actingProfileID {
		return nil, ErrNotReviewer
	}

	review, err := domain.NewReview(
		sessionID, session.FromProfileID, session.ToProfileID, content, rating)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// The CAS to reviewed runs first: a session that is not completed
		// fails here before the insert is attempted. The UNIQUE(session_id)
		// constraint backs this up against concurrent submitters.
		if err := s.sessionStore.WithTx(tx).TransitionStatus(
			ctx, sessionID, domain.SessionStatusReviewed, domain.SessionStatusCompleted,
		); err != nil {
			return err
		}
		if err := s.reviewStore.WithTx(tx).Create(ctx, review); err != nil {
			return err
		}
		_, err := s.aggregates.Recalculate(ctx, tx, session.ToProfileID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.aggregates.InvalidateStats(ctx, session.ToProfileID)
	if s.metrics != nil {
		s.metrics.ReviewsSubmitted.Inc()
	}

	log.Info("review submitted",
		slog.String("review_id", review.ID.String()),
		slog.String("session_id", sessionID.String()),
		slog.String("mentor_profile_id", session.ToProfileID.String()),
		slog.Int("rating", rating))

	return review, nil
}

func (s *serviceImpl) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	return s.reviewStore.GetByID(ctx, reviewID)
}

func (s *serviceImpl) ListForProfile(
	ctx context.Context,
	profileID uuid.UUID,
	page, limit int,
) ([]*domain.Review, int, error) {
	if _, err := s.profileStore.GetByID(ctx, profileID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	reviews, total, err := s.reviewStore.ListForMentor(ctx, profileID, limit, offset)
	if err != nil {
		return nil, 0, newError("list", "failed to list reviews", err)
	}
	return reviews, total, nil
}
