// Package migrations contains the embedded SQL schema migrations applied
// with goose when a store is opened.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
