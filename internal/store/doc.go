// Package store defines the persistence interfaces for the session lifecycle
// core along with the shared sentinel errors and transaction helpers used by
// all store implementations.
package store
