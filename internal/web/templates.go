package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/csemotors/inventory/internal/auth"
	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
	"github.com/csemotors/inventory/internal/views"
	webembed "github.com/csemotors/inventory/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"isStaff":     model.IsStaff,
		"formatPrice": views.FormatPrice,
		"formatMiles": views.FormatInt,
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"home.html",
		"login.html",
		"register.html",
		"account.html",
		"management.html",
		"add_classification.html",
		"add_inventory.html",
		"classification.html",
		"detail.html",
		"edit_inventory.html",
		"delete_confirm.html",
		"wishlist.html",
		"error.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given status code and data.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title    string
	Account  *auth.Claims
	Nav      template.HTML
	Messages []Flash
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Templates *Templates
	JWTSecret string
}

// pageData assembles the base template data: the navigation list built from
// current classifications, the session account (if any) and pending flash
// messages popped from the flash cookie.
func (s *Server) pageData(w http.ResponseWriter, r *http.Request, title string) PageData {
	classifications, err := store.ListClassifications(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list classifications for nav", "error", err)
	}

	return PageData{
		Title:    title,
		Account:  GetSession(r.Context()),
		Nav:      views.Nav(classifications),
		Messages: popFlash(w, r),
	}
}
