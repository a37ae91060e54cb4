// Package templates embeds the HTML pages, email bodies and static assets.
package templates

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed pages/*.html email/*.html static/*
var files embed.FS

// Page parses the base layout together with the named page template.
func Page(name string, funcs template.FuncMap) (*template.Template, error) {
	return template.New("base.html").Funcs(funcs).ParseFS(files, "pages/base.html", "pages/"+name)
}

// Email parses a standalone email body template.
func Email(name string) (*template.Template, error) {
	return template.ParseFS(files, "email/"+name)
}

// Static returns the asset tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
