// Package api contains the HTTP handlers for the mentoring service API
// along with their request models and error translation.
package api
