// Package session implements the session request lifecycle: mentees request
// sessions, mentors accept or decline, either side cancels, and the
// completion sweep marks delivered sessions completed. All status changes go
// through the store's compare-and-swap transition so concurrent actors
// cannot both win.
package session
