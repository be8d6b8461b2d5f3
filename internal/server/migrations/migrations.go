// Package migrations embeds the goose SQL migrations, one directory per
// supported backend dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
