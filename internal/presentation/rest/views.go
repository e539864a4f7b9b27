package rest

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/template/html/v2"
)

const layout = "layouts/main"

// NewViews builds the html engine over the page templates with the helpers they use.
func NewViews(views fs.FS) *html.Engine {
	engine := html.NewFileSystem(http.FS(views), ".html")
	engine.AddFuncMap(map[string]interface{}{
		"ago": humanize.Time,
		"isodate": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		"deref": func(id *int64) int64 {
			if id == nil {
				return 0
			}
			return *id
		},
		// tutorial bodies are authored by site managers
		"safe": func(s string) template.HTML {
			return template.HTML(s)
		},
	})
	return engine
}
