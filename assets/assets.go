// Package assets embeds the static front end served alongside the API.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed static
var embeddedFiles embed.FS

// Static returns the embedded front end rooted at the static directory.
func Static() fs.FS {
	static, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		panic(err)
	}
	return static
}
