package auth

import (
	"github.com/aegisedu/campus-portal/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDTO carries a self-service registration. The role is free input
// and validated against the known set before anything is stored.
type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

// Validate checks registration fields. Role membership is checked in the
// service so the error carries the INVALID_ROLE code.
func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(120)
	v.Field("email", d.Email).Required().Email().MaxLength(254)
	// bcrypt rejects inputs above 72 bytes
	v.Field("password", d.Password).Required().MaxLength(72)
	v.Field("role", d.Role).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UserPayload is the sanitized user shape returned by auth endpoints.
type UserPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// LoginResponse tells the client its token and which dashboard the role
// lands on.
type LoginResponse struct {
	Token    string      `json:"token"`
	Redirect string      `json:"redirect"`
	User     UserPayload `json:"user"`
}

type RegisterResponse struct {
	Redirect string      `json:"redirect"`
	User     UserPayload `json:"user"`
}

type LogoutResponse struct {
	Redirect string `json:"redirect"`
}

func payloadFromAccount(acc *Account) UserPayload {
	return UserPayload{
		ID:    acc.ID,
		Name:  acc.Name,
		Email: acc.Email,
		Role:  acc.Role,
	}
}
