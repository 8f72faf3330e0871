package internship

import (
	"log/slog"
	"strings"
	"time"

	"github.com/aegisedu/campus-portal/internal"
)

// Repository defines the data access methods for internships
type Repository interface {
	Create(internship *Internship) error
	ListAll() ([]Internship, error)
	Delete(id int64) error
}

// Service handles internship business logic
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

// Create posts a new internship. The deadline must parse as a calendar
// date; nothing is stored otherwise.
func (s *Service) Create(dto CreateDTO) (*Internship, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("internship validation failed", "error", err)
		return nil, err
	}

	deadline, err := time.Parse(DeadlineFormat, dto.Deadline)
	if err != nil {
		s.logger.Warn("rejected internship deadline", "deadline", dto.Deadline)
		return nil, internal.ErrInvalidDate
	}

	var description *string
	if trimmed := strings.TrimSpace(dto.Description); trimmed != "" {
		description = &trimmed
	}

	internship := &Internship{
		Title:       dto.Title,
		Company:     dto.Company,
		Description: description,
		Deadline:    deadline,
	}

	if err := s.repo.Create(internship); err != nil {
		s.logger.Error("failed to create internship", "error", err)
		return nil, err
	}

	s.logger.Info("internship posted",
		"internship_id", internship.ID,
		"company", internship.Company,
		"deadline", dto.Deadline)

	return internship, nil
}

// ListAll returns every internship ordered by deadline, latest first.
func (s *Service) ListAll() ([]Internship, error) {
	internships, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list internships", "error", err)
		return nil, err
	}
	return internships, nil
}

// Delete removes a posting. Deleting an id that is already gone succeeds.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete internship", "error", err, "internship_id", id)
		return err
	}
	s.logger.Info("internship deleted", "internship_id", id)
	return nil
}
