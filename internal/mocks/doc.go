// Package mocks provides hand-written test doubles for the store and service
// interfaces. Each mock exposes function fields so a test can swap in custom
// behavior per call, with zero-value defaults that succeed.
package mocks
