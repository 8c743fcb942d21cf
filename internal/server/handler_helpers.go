package server

import (
	"bytes"
	"net/http"

	"github.com/konseloradiksi/soapgen/internal/counseling"
	"github.com/konseloradiksi/soapgen/internal/logger"
)

// pageData is the view model of index.html.
type pageData struct {
	Issues        []string
	SelectedIssue string
	Description   string
	HasCredential bool
	CostNote      string

	Note     string
	Success  string
	Notice   string
	Warnings []string
	Error    string
}

func (h *Handler) newPageData() *pageData {
	_, hasKey := h.creds.Lookup()
	return &pageData{
		Issues:        counseling.Issues(),
		HasCredential: hasKey,
		CostNote: h.trans.GetMessage("web_guide_cost_body", 0, map[string]interface{}{
			"Model": h.model,
		}),
	}
}

// render executes pageName inside the layout into a buffer first so a
// template error never leaves a half written response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, pageName string, data any) {
	log := logger.FromContext(r.Context())

	tmpl, ok := h.templateCache[pageName]
	if !ok {
		log.Error("template not found in cache", "page", pageName)
		http.Error(w, "internal error: template not defined", http.StatusInternalServerError)
		return
	}

	renderData := struct {
		Title string
		Lang  string
		Data  any
	}{
		Title: h.trans.GetMessage("web_title", 0, nil),
		Lang:  h.trans.Language(),
		Data:  data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, renderData); err != nil {
		log.Error("error rendering template", "page", pageName, "error", err)
		http.Error(w, "internal error while rendering the page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("error writing response", "error", err)
	}
}
