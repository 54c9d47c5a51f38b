// Package web embeds the companion-screen assets so the impostor binary
// ships self-contained: the index template plus the css/js that render
// phase, timer and roster state pushed over the websocket.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// GetTemplatesFS returns the companion-screen templates, rooted so
// handlers can parse "index.html" directly
func GetTemplatesFS() fs.FS {
	sub, _ := fs.Sub(templatesFS, "templates")
	return sub
}

// GetStaticFS returns the css/js assets, rooted for serving under /static/
func GetStaticFS() fs.FS {
	sub, _ := fs.Sub(staticFS, "static")
	return sub
}
