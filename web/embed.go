// Package web embeds the static browser UI served alongside the API.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// Static returns the embedded UI files rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The static directory is compiled into the binary; a failure
		// here means a broken build, not a runtime condition.
		panic(err)
	}
	return sub
}
