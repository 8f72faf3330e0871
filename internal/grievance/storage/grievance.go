package storage

import (
	"gorm.io/gorm"

	"github.com/aegisedu/campus-portal/internal"
	grievanceDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/grievance"
	"github.com/aegisedu/campus-portal/internal/grievance"
)

const detailColumns = "grievances.id, grievances.student_id, grievances.title, " +
	"grievances.description, grievances.status, grievances.admin_remark, " +
	"grievances.created_at, users.name AS student_name, users.email AS student_email"

// GrievanceRepository implements the grievance.Repository interface using GORM
type GrievanceRepository struct {
	db *gorm.DB
}

func NewGrievanceRepository(db *gorm.DB) grievance.Repository {
	return &GrievanceRepository{db: db}
}

// Create saves a new grievance
func (r *GrievanceRepository) Create(g *grievance.Grievance) error {
	model := grievanceDatamodel.Grievance{
		StudentID:   g.StudentID,
		Title:       g.Title,
		Description: g.Description,
		Status:      string(g.Status),
		AdminRemark: g.AdminRemark,
	}
	if err := r.db.Create(&model).Error; err != nil {
		return err
	}
	g.ID = model.ID
	g.CreatedAt = model.CreatedAt
	return nil
}

// ListForStudent returns one student's grievances joined with the student
// row, newest first.
func (r *GrievanceRepository) ListForStudent(studentID int64) ([]grievance.Detail, error) {
	var details []grievance.Detail
	err := r.db.Table("grievances").
		Select(detailColumns).
		Joins("JOIN users ON users.id = grievances.student_id").
		Where("grievances.student_id = ?", studentID).
		Order("grievances.created_at DESC").
		Scan(&details).Error
	return details, err
}

// ListAll returns every grievance joined with its student, newest first.
func (r *GrievanceRepository) ListAll() ([]grievance.Detail, error) {
	var details []grievance.Detail
	err := r.db.Table("grievances").
		Select(detailColumns).
		Joins("JOIN users ON users.id = grievances.student_id").
		Order("grievances.created_at DESC").
		Scan(&details).Error
	return details, err
}

// UpdateStatus updates the status and admin_remark fields in one statement.
// Zero affected rows means the grievance does not exist.
func (r *GrievanceRepository) UpdateStatus(id int64, status grievance.Status, remark *string) error {
	result := r.db.Model(&grievanceDatamodel.Grievance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(status),
			"admin_remark": remark,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrGrievanceNotFound
	}
	return nil
}
