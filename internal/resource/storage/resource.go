package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aegisedu/campus-portal/internal"
	resourceDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/resource"
	"github.com/aegisedu/campus-portal/internal/resource"
)

const detailColumns = "resources.id, resources.title, resources.description, " +
	"resources.file_path, resources.uploaded_by, resources.created_at, " +
	"users.name AS uploader_name"

// ResourceRepository implements the resource.Repository interface using GORM
type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) resource.Repository {
	return &ResourceRepository{db: db}
}

// Create saves a new resource row
func (r *ResourceRepository) Create(res *resource.Resource) error {
	model := resourceDatamodel.Resource{
		Title:       res.Title,
		Description: res.Description,
		FilePath:    res.FilePath,
		UploadedBy:  res.UploadedBy,
	}
	if err := r.db.Create(&model).Error; err != nil {
		return err
	}
	res.ID = model.ID
	res.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a resource by its ID
func (r *ResourceRepository) GetByID(id int64) (*resource.Resource, error) {
	var model resourceDatamodel.Resource
	if err := r.db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrResourceNotFound
		}
		return nil, err
	}
	return &resource.Resource{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		FilePath:    model.FilePath,
		UploadedBy:  model.UploadedBy,
		CreatedAt:   model.CreatedAt,
	}, nil
}

// Delete removes the row. Deleting an absent id is not an error.
func (r *ResourceRepository) Delete(id int64) error {
	return r.db.Delete(&resourceDatamodel.Resource{}, id).Error
}

// ListAll returns every resource joined with its uploader, newest first.
func (r *ResourceRepository) ListAll() ([]resource.Detail, error) {
	var details []resource.Detail
	err := r.db.Table("resources").
		Select(detailColumns).
		Joins("JOIN users ON users.id = resources.uploaded_by").
		Order("resources.created_at DESC").
		Scan(&details).Error
	return details, err
}
