package storage

import (
	"gorm.io/gorm"

	userDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/user"
	"github.com/aegisedu/campus-portal/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// ListAll returns every account ordered by role, then name, so the admin
// directory renders grouped without sorting client-side.
func (r *Repository) ListAll() ([]user.User, error) {
	var models []userDatamodel.User
	if err := r.db.Order("role ASC, name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]user.User, 0, len(models))
	for i := range models {
		users = append(users, *user.FromDataModel(&models[i]))
	}
	return users, nil
}
