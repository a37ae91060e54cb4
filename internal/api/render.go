package api

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	apperrors "scheduler/internal/errors"
	"scheduler/internal/templates"
)

var pageNames = []string{"calendar.html", "login.html", "admin_panel.html", "book.html"}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
	log   *zap.Logger
}

func NewRenderer(log *zap.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := templates.Page(name, nil)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages, log: log}, nil
}

// Render executes the page into a buffer first so a template error still
// produces a clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	t, ok := rd.pages[name]
	if !ok {
		rd.fail(w, r, fmt.Errorf("unknown page %q", name))
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["CSRFField"] = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		rd.fail(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (rd *Renderer) fail(w http.ResponseWriter, r *http.Request, err error) {
	rd.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
	apperrors.Write(w, apperrors.Internal(err))
}
