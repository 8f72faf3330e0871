package storage

import (
	"gorm.io/gorm"

	internshipDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/internship"
	"github.com/aegisedu/campus-portal/internal/internship"
)

// InternshipRepository implements the internship.Repository interface using GORM
type InternshipRepository struct {
	db *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) internship.Repository {
	return &InternshipRepository{db: db}
}

// Create saves a new internship posting
func (r *InternshipRepository) Create(i *internship.Internship) error {
	model := internshipDatamodel.Internship{
		Title:       i.Title,
		Company:     i.Company,
		Description: i.Description,
		Deadline:    i.Deadline,
	}
	if err := r.db.Create(&model).Error; err != nil {
		return err
	}
	i.ID = model.ID
	i.CreatedAt = model.CreatedAt
	return nil
}

// ListAll returns every posting ordered by deadline, latest first.
func (r *InternshipRepository) ListAll() ([]internship.Internship, error) {
	var models []internshipDatamodel.Internship
	if err := r.db.Order("deadline DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	internships := make([]internship.Internship, 0, len(models))
	for _, m := range models {
		internships = append(internships, internship.Internship{
			ID:          m.ID,
			Title:       m.Title,
			Company:     m.Company,
			Description: m.Description,
			Deadline:    m.Deadline,
			CreatedAt:   m.CreatedAt,
		})
	}
	return internships, nil
}

// Delete removes the posting. Absent ids delete zero rows without error.
func (r *InternshipRepository) Delete(id int64) error {
	return r.db.Delete(&internshipDatamodel.Internship{}, id).Error
}
