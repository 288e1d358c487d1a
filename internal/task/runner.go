package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue.
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner manages background task processing with a fixed worker pool over a
// bounded in-memory queue. Tasks are best-effort: a task lost to a crash is
// reconstructed by the completion sweeper or a later retry path, not
// replayed from storage.
type Runner struct {
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewRunner creates a Runner. Call Start to begin processing.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "task_runner")),
		errHandler: func(task Task, err error) {
			logger.Error("task execution failed",
				slog.String("task_id", task.ID().String()),
				slog.String("task_type", task.Type()),
				slog.String("error", err.Error()))
		},
	}
}

// SetErrorHandler replaces the default error handler, which only logs.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a task to the queue. It returns an error when the queue is
// full rather than blocking the caller.
func (r *Runner) Submit(_ context.Context, t Task) error {
	select {
	case r.taskChan <- t:
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

// Start launches the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop cancels in-flight tasks and waits for all workers to exit.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	close(r.taskChan)
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case t, ok := <-r.taskChan:
			if !ok {
				return
			}
			r.processTask(t, id)
		}
	}
}

func (r *Runner) processTask(t Task, workerID int) {
	logger := r.logger.With(
		slog.String("task_id", t.ID().String()),
		slog.String("task_type", t.Type()),
		slog.Int("worker_id", workerID),
	)

	logger.Info("processing task")

	if err := t.Execute(r.ctx); err != nil {
		r.errHandler(t, err)
		return
	}

	logger.Info("task completed")
}
