package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/aegisedu/campus-portal/internal"
	"github.com/aegisedu/campus-portal/internal/auth"
	userDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// GetByEmail looks up an account by its exact email.
func (r *Repository) GetByEmail(email string) (*auth.Account, error) {
	var model userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return toAccount(&model), nil
}

// Create inserts the account. The unique index on email catches inserts that
// race past the service pre-check; those surface as the duplicate email error.
func (r *Repository) Create(account *auth.Account) error {
	model := userDatamodel.User{
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Role:         string(account.Role),
	}
	if err := r.db.Create(&model).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateEmail
		}
		return err
	}
	account.ID = model.ID
	return nil
}

func toAccount(model *userDatamodel.User) *auth.Account {
	return &auth.Account{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         auth.Role(model.Role),
	}
}

// isDuplicateKey covers gorm's translated error plus the raw message forms
// sqlite and postgres produce when translation is unavailable.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value")
}
