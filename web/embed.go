// Package web holds the page and mail templates compiled into the binary.
package web

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	texttemplate "text/template"
)

//go:embed templates
var files embed.FS

// Views is the page template tree rooted at templates/.
func Views() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func CommentMailTemplates() (*htmltemplate.Template, *texttemplate.Template, error) {
	html, err := htmltemplate.ParseFS(files, "templates/emails/tutorial-comment.html.tmpl")
	if err != nil {
		return nil, nil, fmt.Errorf("err parsing html mail template, %v", err)
	}
	text, err := texttemplate.ParseFS(files, "templates/emails/tutorial-comment.txt.tmpl")
	if err != nil {
		return nil, nil, fmt.Errorf("err parsing text mail template, %v", err)
	}
	return html, text, nil
}
