// Package web embeds the server-rendered view templates.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Engine returns a Fiber view engine backed by the embedded templates,
// independent of the process working directory.
func Engine() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// The templates are compiled into the binary; a missing
		// directory is a build defect, not a runtime condition.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
