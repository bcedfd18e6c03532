// Package migrations embeds the goose SQL migrations so every binary and
// test helper applies the same schema.
package migrations

import "embed"

// FS holds the *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
