package grievance

import (
	"log/slog"
	"strings"
)

// Repository defines the data access methods for grievances
type Repository interface {
	Create(grievance *Grievance) error
	ListForStudent(studentID int64) ([]Detail, error)
	ListAll() ([]Detail, error)
	UpdateStatus(id int64, status Status, remark *string) error
}

// Service handles grievance business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create files a grievance for the student. New grievances always start
// Pending with no remark regardless of what the client sends.
func (s *Service) Create(studentID int64, dto CreateDTO) (*Grievance, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("grievance validation failed", "error", err, "student_id", studentID)
		return nil, err
	}

	grievance := &Grievance{
		StudentID:   studentID,
		Title:       dto.Title,
		Description: dto.Description,
		Status:      StatusPending,
		AdminRemark: nil,
	}

	if err := s.repo.Create(grievance); err != nil {
		s.logger.Error("failed to create grievance", "error", err, "student_id", studentID)
		return nil, err
	}

	s.logger.Info("grievance filed",
		"grievance_id", grievance.ID,
		"student_id", studentID)

	return grievance, nil
}

// ListForStudent returns the student's own grievances, newest first.
func (s *Service) ListForStudent(studentID int64) ([]Detail, error) {
	details, err := s.repo.ListForStudent(studentID)
	if err != nil {
		s.logger.Error("failed to list grievances", "error", err, "student_id", studentID)
		return nil, err
	}
	return details, nil
}

// ListAll returns every grievance with the filing student, newest first.
func (s *Service) ListAll() ([]Detail, error) {
	details, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list all grievances", "error", err)
		return nil, err
	}
	return details, nil
}

// UpdateStatus applies an admin triage decision. The status is validated
// before any write, so an invalid value leaves the row untouched. A blank
// remark is stored as NULL rather than an empty string.
func (s *Service) UpdateStatus(id int64, dto UpdateDTO) (*UpdateResponse, error) {
	status, err := ParseStatus(dto.Status)
	if err != nil {
		s.logger.Warn("rejected grievance update", "grievance_id", id, "status", dto.Status)
		return nil, err
	}

	var remark *string
	if trimmed := strings.TrimSpace(dto.AdminRemark); trimmed != "" {
		remark = &trimmed
	}

	if err := s.repo.UpdateStatus(id, status, remark); err != nil {
		s.logger.Error("failed to update grievance", "error", err, "grievance_id", id)
		return nil, err
	}

	s.logger.Info("grievance updated",
		"grievance_id", id,
		"status", status)

	return &UpdateResponse{
		ID:          id,
		Status:      status,
		AdminRemark: remark,
	}, nil
}
