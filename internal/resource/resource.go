package resource

import (
	"io"
	"time"
)

// FileStore abstracts where uploaded files land. The local implementation
// lives in internal/filestore.
type FileStore interface {
	Save(name string, size int64, r io.Reader) (string, error)
	Path(name string) (string, error)
	Remove(name string) error
}

// Resource is the domain shape of an uploaded study material.
type Resource struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	FilePath    string    `json:"file_path"`
	UploadedBy  int64     `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Detail is the read model for resource listings: the resource joined with
// its uploader.
type Detail struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	FilePath     string    `json:"file_path"`
	UploadedBy   int64     `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UploaderName string    `json:"uploader_name"`
}
