// Package review implements review submission and reads. A review is written
// by the requesting profile against its own completed session, exactly once;
// submitting one retires the session (completed to reviewed) and refreshes
// the mentor's aggregates in the same transaction.
package review
