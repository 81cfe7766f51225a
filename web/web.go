// Package web embeds the browser UI served at the site root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// Asset returns the contents of a file under static/, e.g. "index.html".
func Asset(name string) ([]byte, error) {
	return fs.ReadFile(assets, "static/"+name)
}
