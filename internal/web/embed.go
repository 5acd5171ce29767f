package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/zirz1911/global-security-hub/internal/database/models"
)

//go:embed templates
var TemplatesFS embed.FS

//go:embed static
var StaticFS embed.FS

var funcs = template.FuncMap{
	"typeLabel": func(t models.OrgType) string {
		if label, ok := models.OrgTypeLabels[t]; ok {
			return label
		}
		return string(t)
	},
	"orgTypes": func() []models.OrgType { return models.OrgTypes },
}

// Templates holds one parsed template set per page. Pages share block
// names like "content" and "scripts", so they cannot live in a single
// association without overriding each other.
type Templates struct {
	pages map[string]*template.Template
}

// ExecuteTemplate renders the named page into w.
func (t *Templates) ExecuteTemplate(w io.Writer, name string, data any) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return page.ExecuteTemplate(w, name, data)
}

// LoadTemplates parses all templates from the embedded filesystem.
// Each page gets its own template set with the base layout so block
// overrides stay independent between pages.
func LoadTemplates() (*Templates, error) {
	baseContent, err := fs.ReadFile(TemplatesFS, "templates/layouts/base.html")
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(TemplatesFS, "templates/pages")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		pageContent, err := fs.ReadFile(TemplatesFS, "templates/pages/"+entry.Name())
		if err != nil {
			return nil, err
		}

		// Parse base first, then the page content which overrides the blocks
		pageTmpl := template.New(entry.Name()).Funcs(funcs)
		if _, err = pageTmpl.Parse(string(baseContent)); err != nil {
			return nil, err
		}
		if _, err = pageTmpl.Parse(string(pageContent)); err != nil {
			return nil, err
		}
		pages[entry.Name()] = pageTmpl
	}

	return &Templates{pages: pages}, nil
}

// GetStaticFS returns the static file system for serving static files
func GetStaticFS() (fs.FS, error) {
	return fs.Sub(StaticFS, "static")
}
