// Package migrations embeds the SQL migration files so the binary can apply
// them with golang-migrate's iofs source driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
