package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"dommatos.com/tienda-web/internal/format"
)

var tmplCache *template.Template

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		"pesos": format.Pesos,
		"add":   func(a, b int) int { return a + b },
		"dict": func(pairs ...any) map[string]any {
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i+1 < len(pairs); i += 2 {
				if k, ok := pairs[i].(string); ok {
					m[k] = pairs[i+1]
				}
			}
			return m
		},
	}
	// Recursively discover and parse all .tmpl files. ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func currentTemplates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	if tmplCache == nil {
		http.Error(w, "templates not initialized", http.StatusInternalServerError)
		return nil
	}
	return tmplCache
}

// renderPage executes a full page template. In dev mode templates are
// reparsed on each request.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderTemplate(w, r, name, data)
}

// renderTemplate executes a named template (page or fragment) as HTML.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := currentTemplates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// i18nOrDefault translates key for lang, falling back to def when the bundle
// has no entry.
func i18nOrDefault(lang, key, def string) string {
	if i18nBundle == nil {
		return def
	}
	if v := i18nBundle.T(lang, key); v != key {
		return v
	}
	return def
}

func absoluteURL(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
			scheme = fwd
		} else {
			scheme = "http"
		}
	}
	u := scheme + "://" + r.Host + r.URL.Path
	if r.URL.RawQuery != "" {
		u += "?" + r.URL.RawQuery
	}
	return u
}
