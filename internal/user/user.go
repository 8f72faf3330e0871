package user

import (
	userDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/user"
)

// User is the directory view of an account. The password hash never leaves
// the storage layer.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
