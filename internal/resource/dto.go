package resource

import (
	"github.com/aegisedu/campus-portal/internal/core/common/validation"
)

// UploadDTO carries the multipart form fields accompanying the file.
type UploadDTO struct {
	Title       string
	Description string
}

func (d UploadDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(200)
	v.Field("description", d.Description).MaxLength(5000)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ListResponse wraps resource listings.
type ListResponse struct {
	Resources []Detail `json:"resources"`
	Total     int      `json:"total"`
}

// DeleteResponse acknowledges a delete. Deleting an id that no longer
// exists is still a success.
type DeleteResponse struct {
	ID int64 `json:"id"`
}
