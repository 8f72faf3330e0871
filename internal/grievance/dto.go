package grievance

import (
	"github.com/aegisedu/campus-portal/internal/core/common/validation"
)

// CreateDTO is what a student submits when filing a grievance.
type CreateDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (d CreateDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(200)
	v.Field("description", d.Description).Required().MaxLength(5000)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateDTO is the admin triage payload. Status is free input here and
// validated in the service; an empty remark clears the stored one.
type UpdateDTO struct {
	Status      string `json:"status"`
	AdminRemark string `json:"admin_remark"`
}

// ListResponse wraps grievance listings for both the student and admin views.
type ListResponse struct {
	Grievances []Detail `json:"grievances"`
	Total      int      `json:"total"`
}

// UpdateResponse reports the applied triage result.
type UpdateResponse struct {
	ID          int64   `json:"id"`
	Status      Status  `json:"status"`
	AdminRemark *string `json:"admin_remark,omitempty"`
}
