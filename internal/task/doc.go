// Package task provides the in-process background task runner and the tasks
// it executes: calendar event creation for accepted sessions and the
// periodic sweep that completes sessions whose scheduled end has passed.
package task
