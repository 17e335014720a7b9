package jobs

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/clauseguard/clauseguard/internal/extraction"
	"github.com/clauseguard/clauseguard/pkg/handlers"
	"github.com/clauseguard/clauseguard/pkg/routes"
	"github.com/clauseguard/clauseguard/pkg/storage"
)

// Handler provides HTTP endpoints for submitting and polling analysis jobs.
type Handler struct {
	sys           System
	archive       storage.System
	logger        *slog.Logger
	maxUploadSize int64
}

// AnalyzeTextRequest is the body for raw-text submissions.
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// NewHandler creates a Handler. archive may be nil to disable upload archiving.
func NewHandler(sys System, archive storage.System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		archive:       archive,
		logger:        logger.With("handler", "jobs"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for job endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/analyze", Handler: h.AnalyzeDocument},
			{Method: "POST", Pattern: "/analyze/text", Handler: h.AnalyzeText},
			{Method: "GET", Pattern: "/jobs/{id}", Handler: h.Status},
		},
	}
}

// AnalyzeDocument accepts a multipart contract upload and enqueues an
// analysis job. PDF uploads report their page count; when an archive store
// is configured the original bytes are kept for audit.
func (h *Handler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}

	snap, err := h.sys.Submit(r.Context(), SubmitCommand{
		Data:     data,
		Filename: header.Filename,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if pages := pdfPageCount(h.logger, data, header.Filename); pages != nil {
		h.logger.Info("pdf upload received", "id", snap.ID, "pages", *pages)
	}

	h.archiveUpload(r, snap.ID, header.Filename, data)

	handlers.RespondJSON(w, http.StatusAccepted, snap)
}

// AnalyzeText accepts pasted contract text and enqueues an analysis job.
// Text shorter than the minimum fails synchronously without creating a job.
func (h *Handler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}

	snap, err := h.sys.Submit(r.Context(), SubmitCommand{Text: req.Text})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, snap)
}

// Status returns the current snapshot of a job by its UUID path parameter.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}

	snap, err := h.sys.Status(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snap)
}

func (h *Handler) archiveUpload(r *http.Request, id uuid.UUID, filename string, data []byte) {
	if h.archive == nil {
		return
	}

	key := "uploads/" + id.String() + "/" + sanitizeFilename(filename)
	contentType := http.DetectContentType(data)

	if err := h.archive.Upload(r.Context(), key, bytes.NewReader(data), contentType); err != nil {
		h.logger.Warn("upload archive failed", "key", key, "error", err)
	}
}

func pdfPageCount(logger *slog.Logger, data []byte, filename string) *int {
	if extraction.DetectFormat(filename) != extraction.FormatPDF {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("pdf page count failed", "error", err)
		return nil
	}

	return &count
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "document"
	}
	return url.PathEscape(name)
}
