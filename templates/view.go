// Package templates renders html/template pages and HTMX fragments.
package templates

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"orcamentos/services"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
}

// Funcs returns the helpers available inside every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"brl": services.FormatBRL,
		"qty": services.FormatQuantity,
		"year": func() int {
			return time.Now().Year()
		},
		"add": func(a, b int) int {
			return a + b
		},
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Render parses and executes a template file, wrapping it in layout.html
// unless the file is a full document or a fragment (no <!doctype and the
// name starts with an underscore means fragment, rendered standalone).
func Render(w http.ResponseWriter, name string, data map[string]any) error {
	once.Do(detectBase)

	if data == nil {
		data = map[string]any{}
	}

	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok && t != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		return t.Execute(w, data)
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}

	content, err := os.ReadFile(mainPath)
	if err != nil {
		return err
	}

	useLayout := filepath.Base(name)[0] != '_' &&
		!bytes.Contains(bytes.ToLower(content), []byte("<!doctype"))

	if useLayout {
		layoutPath := filepath.Join(baseDir, "layout.html")
		if fi, statErr := os.Stat(layoutPath); statErr != nil || fi.IsDir() {
			useLayout = false
		} else {
			parsed, parseErr := template.New("layout.html").Funcs(Funcs()).
				ParseFiles(layoutPath, mainPath)
			if parseErr != nil {
				return parseErr
			}
			t = parsed
		}
	}
	if !useLayout {
		parsed, parseErr := template.New(filepath.Base(name)).Funcs(Funcs()).
			ParseFiles(mainPath)
		if parseErr != nil {
			return parseErr
		}
		t = parsed
	}

	tplCache.Lock()
	tplCache.m[name] = t
	tplCache.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.Execute(w, data)
}

// RenderBlock executes a single named block from a template file, without
// the layout. Used for HTMX partial swaps.
func RenderBlock(w http.ResponseWriter, name, block string, data map[string]any) error {
	once.Do(detectBase)

	if data == nil {
		data = map[string]any{}
	}

	key := name + "#" + block
	tplCache.RLock()
	t, ok := tplCache.m[key]
	tplCache.RUnlock()

	if !ok || t == nil {
		mainPath := filepath.Join(baseDir, name)
		parsed, err := template.New(filepath.Base(name)).Funcs(Funcs()).
			ParseFiles(mainPath)
		if err != nil {
			return err
		}
		t = parsed

		tplCache.Lock()
		tplCache.m[key] = t
		tplCache.Unlock()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, block, data)
}
