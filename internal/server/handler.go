package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"

	"github.com/konseloradiksi/soapgen/internal/credential"
	"github.com/konseloradiksi/soapgen/internal/i18n"
	"github.com/konseloradiksi/soapgen/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout.html"

// NoteGenerator is the part of services.NoteService the web form needs.
type NoteGenerator interface {
	TryGenerateNote(ctx context.Context, apiKey string, req models.NoteRequest, progress models.ProgressFunc) (string, error)
}

type Handler struct {
	notes         NoteGenerator
	creds         *credential.Store
	trans         *i18n.Translations
	model         string
	templateCache map[string]*template.Template

	// generating allows a single note generation at a time.
	generating sync.Mutex
}

// NewHandler parses the embedded page templates against the layout.
func NewHandler(notes NoteGenerator, creds *credential.Store, trans *i18n.Translations, model string) (*Handler, error) {
	funcMap := template.FuncMap{
		"t": func(id string) string { return trans.GetMessage(id, 0, nil) },
	}

	pagePaths, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error finding page templates: %w", err)
	}

	cache := make(map[string]*template.Template)
	for _, pagePath := range pagePaths {
		pageName := path.Base(pagePath)
		if pageName == layoutTemplate {
			continue
		}

		tmpl, err := template.New(pageName).Funcs(funcMap).
			ParseFS(templateFS, "templates/"+layoutTemplate, pagePath)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", pageName, err)
		}
		cache[pageName] = tmpl
	}

	if len(cache) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	return &Handler{
		notes:         notes,
		creds:         creds,
		trans:         trans,
		model:         model,
		templateCache: cache,
	}, nil
}
