package web

import "embed"

// templateFS holds the page templates.
//
//go:embed templates/*.html
var templateFS embed.FS
