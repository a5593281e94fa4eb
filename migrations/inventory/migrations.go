// Package inventory embeds the goose migrations for the inventory schema.
package inventory

import "embed"

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
