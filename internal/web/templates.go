package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates static
var assets embed.FS

var (
	questionTmpl = template.Must(template.ParseFS(assets,
		"templates/base.html.tmpl", "templates/question.html.tmpl"))
	resultsTmpl = template.Must(template.ParseFS(assets,
		"templates/base.html.tmpl", "templates/results.html.tmpl"))
)

func staticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func (h *Handler) execute(w http.ResponseWriter, t *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		h.log.Error("render template", "err", err)
	}
}
