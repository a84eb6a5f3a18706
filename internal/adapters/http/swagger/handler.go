// Package swagger serves the API reference.
package swagger

import (
	"bytes"
	"html/template"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
)

// DefaultRedocScript is the pinned ReDoc bundle loaded by the docs page when no
// local copy is configured.
const DefaultRedocScript = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"

// assetsPrefix is where WithAssetDir files are served.
const assetsPrefix = "/api-docs/assets/"

// redocBundle is the file name looked up in the asset directory.
const redocBundle = "redoc.standalone.js"

type options struct {
	script   string
	assetDir string
}

// Option configures Register.
type Option func(*options)

// WithRedocScript sets the src of the ReDoc script tag. Empty keeps the default.
func WithRedocScript(src string) Option {
	return func(o *options) {
		if src != "" {
			o.script = src
		}
	}
}

// WithAssetDir serves dir under /api-docs/assets/ and, unless WithRedocScript
// names another source, loads redoc.standalone.js from there. This lets the
// docs page work without network access.
func WithAssetDir(dir string) Option {
	return func(o *options) {
		o.assetDir = dir
	}
}

// Register attaches the API reference routes to r.
// Routes:
//
//	GET /api-docs           -> ReDoc HTML
//	GET /api-docs/assets/*  -> Local ReDoc assets (WithAssetDir only)
//	GET /openapi.yaml       -> Embedded OpenAPI spec
func Register(r chi.Router, opts ...Option) {
	if r == nil {
		panic("router is nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.script == "" {
		o.script = DefaultRedocScript
		if o.assetDir != "" {
			o.script = path.Join(assetsPrefix, redocBundle)
		}
	}

	var page bytes.Buffer
	if err := indexTmpl.Execute(&page, struct{ Script string }{o.script}); err != nil {
		panic("render docs page: " + err.Error())
	}
	html := page.Bytes()

	r.Get("/api-docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	})

	if o.assetDir != "" {
		fs := http.StripPrefix(assetsPrefix, http.FileServer(http.Dir(o.assetDir)))
		r.Get(assetsPrefix+"*", fs.ServeHTTP)
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}

var indexTmpl = template.Must(template.New("docs").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Radar API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="{{.Script}}"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`))
