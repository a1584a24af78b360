package api

import (
	"embed"
	"html/template"

	"github.com/katatrina/plg-shop/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"ntd": util.FormatNTD,
	}

	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
