// Package postgres implements the store interfaces against PostgreSQL and
// maps driver errors to the store's sentinel errors so no driver detail leaks
// past this layer.
package postgres
