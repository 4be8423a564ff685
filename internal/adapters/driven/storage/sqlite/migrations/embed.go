// Package migrations embeds the SQL schema migrations for the deck
// snapshot store.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
