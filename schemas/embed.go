// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQLite migrations under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
