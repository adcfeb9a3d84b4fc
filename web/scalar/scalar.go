// Package scalar serves the interactive API reference for the OpenAPI
// document. The page is embedded at compile time.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/ecopoint/pkg/module"
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("index").Parse(indexHTML))

// Render executes the reference page for the document at specURL.
func Render(title, specURL string) ([]byte, error) {
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Title   string
		SpecURL string
	}{title, specURL})
	return buf.Bytes(), err
}

// NewModule mounts the reference page at prefix.
func NewModule(prefix, title, specURL string) (*module.Module, error) {
	body, err := Render(title, specURL)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})

	return module.New(prefix, mux), nil
}
