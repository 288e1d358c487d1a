package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionCompleter completes accepted sessions whose scheduled end has
// passed. Implemented by the session service.
type SessionCompleter interface {
	// CompleteDue transitions up to limit overdue accepted sessions to
	// completed and returns how many it transitioned.
	CompleteDue(ctx context.Context, before time.Time, limit int) (int, error)
}

// CompletionSweeper periodically drives overdue accepted sessions through
// the completed transition so mentors do not need to confirm each session by
// hand.
type CompletionSweeper struct {
	completer  SessionCompleter
	interval   time.Duration
	batchSize  int
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewCompletionSweeper creates a sweeper. Call Start to begin sweeping.
func NewCompletionSweeper(
	completer SessionCompleter,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *CompletionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionSweeper{
		completer: completer,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger.With(slog.String("component", "completion_sweeper")),
	}
}

// Start launches the sweep loop. The first sweep runs after one interval.
func (s *CompletionSweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelFunc = cancel

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish.
func (s *CompletionSweeper) Stop() {
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.wg.Wait()
}

func (s *CompletionSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CompletionSweeper) sweep(ctx context.Context) {
	completed, err := s.completer.CompleteDue(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		s.logger.Error("completion sweep failed", slog.String("error", err.Error()))
		return
	}
	if completed > 0 {
		s.logger.Info("completed overdue sessions", slog.Int("count", completed))
	}
}
