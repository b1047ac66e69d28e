// Package migrations embeds the SQL schema applied by goose at startup.
//
// Table and column names follow the layout of the first release (the
// singular "goal" table, factorQ/factorA on users) so existing database
// files open without conversion. Every statement is CREATE ... IF NOT EXISTS,
// which lets goose adopt files created before it tracked versions.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
