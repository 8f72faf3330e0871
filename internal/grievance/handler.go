package grievance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aegisedu/campus-portal/internal/auth"
	"github.com/aegisedu/campus-portal/internal/transport"
	"github.com/aegisedu/campus-portal/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(studentID int64, dto CreateDTO) (*Grievance, error)
	ListForStudent(studentID int64) ([]Detail, error)
	ListAll() ([]Detail, error)
	UpdateStatus(id int64, dto UpdateDTO) (*UpdateResponse, error)
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

// Create handles POST /student/grievance/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.Logger.Error("Create: session not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	grievance, err := h.Service.Create(session.UserID, dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "student_id", session.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, grievance)
}

// ListMine handles GET /student/grievances
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.Logger.Error("ListMine: session not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	details, err := h.Service.ListForStudent(session.UserID)
	if err != nil {
		h.Logger.Error("ListMine: service error", "error", err, "student_id", session.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Grievances: details,
		Total:      len(details),
	})
}

// ListAll handles GET /admin/grievances
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	details, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("ListAll: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Grievances: details,
		Total:      len(details),
	})
}

// Update handles POST /admin/grievance/update/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("Update: invalid grievance ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid grievance ID")
		return
	}

	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.UpdateStatus(id, dto)
	if err != nil {
		h.Logger.Error("Update: service error", "error", err, "grievance_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
