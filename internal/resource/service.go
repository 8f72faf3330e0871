package resource

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/aegisedu/campus-portal/internal"
)

// Repository defines the data access methods for resources
type Repository interface {
	Create(resource *Resource) error
	GetByID(id int64) (*Resource, error)
	Delete(id int64) error
	ListAll() ([]Detail, error)
}

// Service handles resource business logic
type Service struct {
	repo   Repository
	store  FileStore
	logger *slog.Logger
}

func NewService(repo Repository, store FileStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// Upload validates the form fields, writes the file to the store and then
// records the row. A failed insert removes the file again so the store does
// not accumulate orphans.
func (s *Service) Upload(uploaderID int64, dto UploadDTO, filename string, size int64, file io.Reader) (*Resource, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("resource validation failed", "error", err, "uploader_id", uploaderID)
		return nil, err
	}

	stored, err := s.store.Save(filename, size, file)
	if err != nil {
		s.logger.Warn("rejected resource upload",
			"error", err,
			"uploader_id", uploaderID,
			"filename", filename,
			"size", size)
		return nil, err
	}

	var description *string
	if trimmed := strings.TrimSpace(dto.Description); trimmed != "" {
		description = &trimmed
	}

	resource := &Resource{
		Title:       dto.Title,
		Description: description,
		FilePath:    stored,
		UploadedBy:  uploaderID,
	}

	if err := s.repo.Create(resource); err != nil {
		s.logger.Error("failed to create resource", "error", err, "uploader_id", uploaderID)
		if rmErr := s.store.Remove(stored); rmErr != nil {
			s.logger.Error("failed to remove file after insert failure", "error", rmErr, "file", stored)
		}
		return nil, err
	}

	s.logger.Info("resource uploaded",
		"resource_id", resource.ID,
		"uploader_id", uploaderID,
		"file", stored)

	return resource, nil
}

// ListAll returns every resource with its uploader, newest first.
func (s *Service) ListAll() ([]Detail, error) {
	details, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list resources", "error", err)
		return nil, err
	}
	return details, nil
}

// Delete removes the row first and the file afterwards. A missing row is a
// no-op success, and a file that will not delete only gets logged: the
// listing is already consistent at that point.
func (s *Service) Delete(id int64) error {
	resource, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, internal.ErrResourceNotFound) {
			s.logger.Info("delete of missing resource ignored", "resource_id", id)
			return nil
		}
		s.logger.Error("failed to load resource for delete", "error", err, "resource_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete resource", "error", err, "resource_id", id)
		return err
	}

	if err := s.store.Remove(resource.FilePath); err != nil {
		s.logger.Error("failed to remove resource file", "error", err, "file", resource.FilePath)
	}

	s.logger.Info("resource deleted", "resource_id", id, "file", resource.FilePath)
	return nil
}

// Download resolves a stored filename to an absolute path for serving.
func (s *Service) Download(filename string) (string, error) {
	path, err := s.store.Path(filename)
	if err != nil {
		s.logger.Warn("download rejected", "error", err, "filename", filename)
		return "", err
	}
	return path, nil
}
