package internship

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aegisedu/campus-portal/internal/transport"
	"github.com/aegisedu/campus-portal/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(dto CreateDTO) (*Internship, error)
	ListAll() ([]Internship, error)
	Delete(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// List handles GET /student/internships and GET /admin/internships
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	internships, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	responses := make([]InternshipResponse, 0, len(internships))
	for i := range internships {
		responses = append(responses, toResponse(&internships[i]))
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Internships: responses,
		Total:       len(responses),
	})
}

// Create handles POST /admin/internships
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	internship, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, toResponse(internship))
}

// Delete handles GET /admin/internship/delete/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("Delete: invalid internship ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid internship ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "internship_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DeleteResponse{ID: id})
}
