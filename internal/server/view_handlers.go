package server

import (
	"net/http"
	"strings"

	"github.com/konseloradiksi/soapgen/internal/counseling"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/models"
	"github.com/konseloradiksi/soapgen/internal/ui"
)

const indexPage = "index.html"

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, indexPage, h.newPageData())
}

// SaveCredential stores the submitted API key for the whole process.
func (h *Handler) SaveCredential(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	key := strings.TrimSpace(r.FormValue("api_key"))
	if key == "" {
		data := h.newPageData()
		data.Error = h.trans.GetMessage("web_credential_empty", 0, nil)
		h.render(w, r, http.StatusBadRequest, indexPage, data)
		return
	}

	h.creds.Set(key)
	logger.Info(r.Context(), "API key stored for this process")

	data := h.newPageData()
	data.Success = h.trans.GetMessage("web_credential_saved", 0, nil)
	h.render(w, r, http.StatusOK, indexPage, data)
}

func (h *Handler) ClearCredential(w http.ResponseWriter, r *http.Request) {
	h.creds.Clear()
	logger.Info(r.Context(), "API key cleared")

	data := h.newPageData()
	data.Notice = h.trans.GetMessage("web_credential_cleared", 0, nil)
	h.render(w, r, http.StatusOK, indexPage, data)
}

// Generate validates the form, runs one note generation and renders the
// note together with the advisories collected while retrying.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		log.Warn("failed to parse form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req := models.NoteRequest{
		Issue:       r.FormValue("issue"),
		Description: r.FormValue("description"),
	}

	data := h.newPageData()
	data.SelectedIssue = req.Issue
	data.Description = req.Description

	if !counseling.IsValid(req.Issue) {
		log.Warn("rejected unknown counseling issue", "issue", req.Issue)
		data.Error = h.trans.GetMessage("web_invalid_issue", 0, map[string]interface{}{"Issue": req.Issue})
		h.render(w, r, http.StatusBadRequest, indexPage, data)
		return
	}

	apiKey, ok := h.creds.Lookup()
	if !ok {
		data.Warnings = append(data.Warnings, h.trans.GetMessage("web_credential_required", 0, nil))
		h.render(w, r, http.StatusBadRequest, indexPage, data)
		return
	}

	if !h.generating.TryLock() {
		log.Warn("generation rejected, another one is in flight")
		data.Error = h.trans.GetMessage("web_busy", 0, nil)
		h.render(w, r, http.StatusTooManyRequests, indexPage, data)
		return
	}
	defer h.generating.Unlock()

	progress := func(e models.ProgressEvent) {
		if e.Type == models.ProgressRetryScheduled {
			data.Warnings = append(data.Warnings, ui.RetryWarning(h.trans, e))
		}
	}

	note, err := h.notes.TryGenerateNote(r.Context(), apiKey, req, progress)
	if err != nil {
		data.Error = ui.ErrorSummary(h.trans, err)
	}
	data.Note = note

	h.render(w, r, http.StatusOK, indexPage, data)
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
