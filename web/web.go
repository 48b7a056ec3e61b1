// Package web holds the browser shell served at the site root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// Static returns the shell files rooted at the static directory.
func Static() fs.FS {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return static
}
