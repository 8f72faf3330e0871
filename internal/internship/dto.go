package internship

import (
	"github.com/aegisedu/campus-portal/internal/core/common/validation"
)

// CreateDTO is the admin posting payload. Deadline stays a string here; the
// service parses it so a bad date maps to the right error.
type CreateDTO struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

func (d CreateDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(200)
	v.Field("company", d.Company).Required().MaxLength(200)
	v.Field("description", d.Description).MaxLength(5000)
	v.Field("deadline", d.Deadline).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// InternshipResponse presents the deadline in its wire form.
type InternshipResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Description *string `json:"description,omitempty"`
	Deadline    string  `json:"deadline"`
	CreatedAt   string  `json:"created_at"`
}

type ListResponse struct {
	Internships []InternshipResponse `json:"internships"`
	Total       int                  `json:"total"`
}

type DeleteResponse struct {
	ID int64 `json:"id"`
}

func toResponse(i *Internship) InternshipResponse {
	return InternshipResponse{
		ID:          i.ID,
		Title:       i.Title,
		Company:     i.Company,
		Description: i.Description,
		Deadline:    i.Deadline.Format(DeadlineFormat),
		CreatedAt:   i.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
