// Package aggregates maintains the derived per-profile counters: delivered
// session count, review count, and average review rating. The counters are a
// cache over the session and review stores; this package recomputes them from
// source inside the transaction that changed the underlying data, and serves
// stats reads through an optional Redis cache.
package aggregates
