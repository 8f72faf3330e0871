package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/aegisedu/campus-portal/internal/auth"
	"github.com/aegisedu/campus-portal/internal/transport"
	"github.com/aegisedu/campus-portal/pkg/logger"
)

type ServiceAPI interface {
	Student(studentID int64) (*StudentStats, error)
	Admin() (*AdminStats, error)
	Faculty() (*FacultyStats, error)
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

// StudentDashboard handles GET /student/dashboard
func (h *Handler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.Logger.Error("StudentDashboard: session not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.Service.Student(session.UserID)
	if err != nil {
		h.Logger.Error("StudentDashboard: service error", "error", err, "student_id", session.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

// AdminDashboard handles GET /admin/dashboard
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Admin()
	if err != nil {
		h.Logger.Error("AdminDashboard: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

// FacultyDashboard handles GET /faculty/dashboard
func (h *Handler) FacultyDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Faculty()
	if err != nil {
		h.Logger.Error("FacultyDashboard: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
