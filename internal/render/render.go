// Package render implements echo.Renderer over the embedded HTML views and
// runs the post-render hooks attached to a request.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/model"
)

//go:embed views
var viewsFS embed.FS

// View names.
const (
	ViewHome            = "home"
	ViewComplaintsList  = "complaints_list"
	ViewComplaintsStats = "complaints_stats"
	ViewError           = "error"
	ViewLogin           = "login"
)

// Alert is the banner shown on top of the home page after filing.
type Alert struct {
	Type    string
	Title   string
	Message string
}

// Hook runs with the name of the view about to be executed.
type Hook func(view string)

const hooksKey = "render.hooks"

// AddHook attaches hook to the request in c.  Hooks run in the order they
// were added, once per Render call.
func AddHook(c echo.Context, hook Hook) {
	hooks, _ := c.Get(hooksKey).([]Hook)
	c.Set(hooksKey, append(hooks, hook))
}

// Templates holds one parsed set per page, each cloned from the layout.
type Templates struct {
	pages  map[string]*template.Template
	logger zerolog.Logger
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006 15:04")
		},
		"statusLabel": func(s model.ComplaintStatus) string {
			switch s {
			case model.StatusOpen:
				return "Abierta"
			case model.StatusInReview:
				return "En revisión"
			case model.StatusClosed:
				return "Cerrada"
			}
			return string(s)
		},
		"statuses": func() []model.ComplaintStatus { return model.ComplaintStatuses },
	}
}

// New parses the embedded views.
func New(logger zerolog.Logger) (*Templates, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub, logger)
}

// NewFromFS parses layout.html and every pages/*.html found in fsys.
func NewFromFS(fsys fs.FS, logger zerolog.Logger) (*Templates, error) {
	base, err := template.New("layout").Funcs(funcs()).ParseFS(fsys, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}

	t := &Templates{pages: make(map[string]*template.Template, len(files)), logger: logger}
	for _, f := range files {
		page, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", f, err)
		}
		if page, err = page.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", f, err)
		}
		t.pages[strings.TrimSuffix(path.Base(f), ".html")] = page
	}
	return t, nil
}

// Render implements echo.Renderer.  A page renders into a buffer first so a
// template failure never leaves a half-written response.
func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	if c != nil {
		t.runHooks(c, name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (t *Templates) runHooks(c echo.Context, view string) {
	hooks, _ := c.Get(hooksKey).([]Hook)
	for _, h := range hooks {
		t.safeRun(h, view)
	}
}

func (t *Templates) safeRun(h Hook, view string) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error().Interface("panic", r).Str("view", view).Msg("render hook panicked")
		}
	}()
	h(view)
}

// Names lists the loaded views.
func (t *Templates) Names() []string {
	out := make([]string, 0, len(t.pages))
	for name := range t.pages {
		out = append(out, name)
	}
	return out
}

// Page data.

type HomePage struct {
	Entities []model.PublicEntity
	Alert    *Alert
}

type ListPage struct {
	Complaints []model.ComplaintView
}

type StatsPage struct {
	Stats       []model.EntityStat
	StatusStats []model.StatusStat
}

type ErrorPage struct {
	Message string
}
