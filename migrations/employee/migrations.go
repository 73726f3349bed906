// Package employee embeds the goose migrations of the employee context.
package employee

import "embed"

//go:embed *.sql
var FS embed.FS
