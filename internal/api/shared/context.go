package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// ContextKey is the type for request context values set by the API layer.
type ContextKey string

const (
	// UserIDContextKey carries the authenticated user's ID.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey carries the per-request trace ID.
	TraceIDKey ContextKey = "traceID"

	// traceIDBytes is the number of random bytes in a trace ID.
	traceIDBytes = 16
)

// SetTraceID attaches a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID from the context, or "" if absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a 32-character hex ID. If the random source fails
// it falls back to a time-derived ID rather than a static value.
func generateTraceID() string {
	b := make([]byte, traceIDBytes)
	if n, err := rand.Read(b); err != nil || n != traceIDBytes {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], uint64(time.Now().Unix()))
	}
	return hex.EncodeToString(b)
}
