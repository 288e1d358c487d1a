package mocks

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/store"
)

// MockTxRunner implements store.TxRunner for testing. By default it invokes
// the transactional function with a nil transaction; the store mocks' WithTx
// methods ignore the transaction, so the full flow runs against mocks.
type MockTxRunner struct {
	RunFn func(ctx context.Context, fn store.TxFn) error

	// BeginErr, when set, fails the transaction before fn runs.
	BeginErr error

	// Calls counts RunInTransaction invocations.
	Calls int
}

var _ store.TxRunner = (*MockTxRunner)(nil)

func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.RunFn != nil {
		return m.RunFn(ctx, fn)
	}
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, nil)
}
