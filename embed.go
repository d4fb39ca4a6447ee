// Package planforge embeds the built frontend for serving from the binary.
package planforge

import "embed"

//go:embed web/dist
var WebFS embed.FS
