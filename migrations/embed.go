// Package migrations provides embedded SQL migrations for Goose, one
// directory per backend dialect.
package migrations

import "embed"

// FS embeds the postgres/ and sqlite/ migration directories.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
