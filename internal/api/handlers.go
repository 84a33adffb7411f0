package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fbcbank/card-intake/internal/pkg/httputil"
	"github.com/fbcbank/card-intake/internal/pkg/logger"
	"github.com/fbcbank/card-intake/internal/schema"
	"github.com/fbcbank/card-intake/internal/service/application"
	"github.com/fbcbank/card-intake/internal/storage"
)

// maxPayloadBytes bounds a submission body. A full form is a few KB.
const maxPayloadBytes = 1 << 20

// Submitter runs the submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, v schema.Values) (*application.Result, error)
}

// DocumentSource reads stored application documents.
type DocumentSource interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Handlers contains the application HTTP handlers
type Handlers struct {
	applications Submitter
	documents    DocumentSource
}

// NewHandlers creates a new Handlers instance
func NewHandlers(applications Submitter, documents DocumentSource) *Handlers {
	return &Handlers{applications: applications, documents: documents}
}

type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Warning string `json:"warning,omitempty"`
}

// SubmitApplication accepts one application payload.
//
//	POST /api/applications
func (h *Handlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)

	var v schema.Values
	if !httputil.Decode(w, r, &v) {
		return
	}

	res, err := h.applications.Submit(r.Context(), v)
	if err != nil {
		httputil.Failure(w, err)
		return
	}

	httputil.OK(w, submitResponse{Success: true, ID: res.ID, Warning: res.Warning})
}

// GetDocument streams the rendered PDF for an application.
//
//	GET /api/applications/{id}/document
func (h *Handlers) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.BadRequest(w, "invalid application id")
		return
	}
	if h.documents == nil {
		httputil.NotFound(w, "document not found")
		return
	}

	key := storage.DocumentKey(id)
	rc, err := h.documents.Open(r.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		httputil.NotFound(w, "document not found")
		return
	}
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", storage.ContentTypePDF)
	w.Header().Set("Content-Disposition", `inline; filename="`+key+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		logger.Warn("document stream interrupted", "application_id", id, "error", err)
	}
}
