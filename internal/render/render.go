// Package render turns page data into HTML through html/template.  Each
// page template is parsed together with the shared layout and executed
// through echo's Renderer hook.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageHome      = "home"
	PageAd        = "ad"
	PageLogin     = "login"
	PageRegister  = "register"
	PageAdForm    = "ad_form"
	PageDashboard = "dashboard"
	PageDelete    = "delete"
	PageError     = "error"
)

var pageNames = []string{PageHome, PageAd, PageLogin, PageRegister, PageAdForm, PageDashboard, PageDelete, PageError}

// Page is the data every template receives.  Data holds the page specific
// view model.
type Page struct {
	Title   string
	View    view.View
	User    *model.User
	Notices []session.Notice
	Data    any
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses all pages.  imageURL resolves backend-relative image paths.
func New(imageURL func(string) string) (*Renderer, error) {
	return newRenderer(imageURL, time.Now)
}

func newRenderer(imageURL func(string) string, now func() time.Time) (*Renderer, error) {
	funcs := funcMap(imageURL, now)
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
