// Package migrations содержит SQL миграции схемы, встроенные в бинарник
package migrations

import "embed"

// FS миграции в формате golang-migrate (<version>_<name>.up.sql / .down.sql)
//
//go:embed *.sql
var FS embed.FS
