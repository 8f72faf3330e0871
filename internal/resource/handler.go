package resource

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/aegisedu/campus-portal/internal/auth"
	"github.com/aegisedu/campus-portal/internal/transport"
	"github.com/aegisedu/campus-portal/pkg/logger"
	"github.com/go-chi/chi"
)

// multipartMemory caps how much of a parsed form stays in memory; larger
// files spill to temp disk.
const multipartMemory = 8 << 20

type ServiceAPI interface {
	Upload(uploaderID int64, dto UploadDTO, filename string, size int64, file io.Reader) (*Resource, error)
	ListAll() ([]Detail, error)
	Delete(id int64) error
	Download(filename string) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service       ServiceAPI
	maxUploadSize int64
}

func NewHandler(service ServiceAPI, maxUploadSize int64) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler:   transport.NewBaseHandler(lg),
		Service:       service,
		maxUploadSize: maxUploadSize,
	}
}

// Upload handles POST /faculty/resources and POST /admin/resources
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.Logger.Error("Upload: session not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Headroom over the file cap covers the form fields and boundaries.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.Logger.Warn("Upload: failed to parse multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Warn("Upload: missing file field", "error", err)
		h.WriteError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	dto := UploadDTO{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	resource, err := h.Service.Upload(session.UserID, dto, header.Filename, header.Size, file)
	if err != nil {
		h.Logger.Error("Upload: service error", "error", err, "uploader_id", session.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resource)
}

// List handles GET /student/resources, /faculty/resources, /admin/resources
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Resources: details,
		Total:     len(details),
	})
}

// Delete handles GET /admin/resources/delete/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("Delete: invalid resource ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid resource ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "resource_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DeleteResponse{ID: id})
}

// Download handles GET /download/{filename} for any signed-in role
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.Service.Download(filename)
	if err != nil {
		h.Logger.Warn("Download: rejected", "error", err, "filename", filename)
		h.HandleServiceError(w, err)
		return
	}

	// The stored basename is already sanitized; never echo raw URL input
	// into the header.
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(path)+"\"")
	http.ServeFile(w, r, path)
}
