package postgres

import "embed"

// Migrations holds the embedded goose migration files so the server binary
// can migrate without a copy of the source tree on disk.
//
//go:embed migrations/*.sql
var Migrations embed.FS
