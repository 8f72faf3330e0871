package auth

import (
	"errors"
	"time"

	"github.com/aegisedu/campus-portal/internal"
	"github.com/golang-jwt/jwt/v5"
)

// Role is the single authority attribute of the portal. Every user carries
// exactly one role and each role owns exactly one dashboard.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a raw role string at the application boundary.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return Role(raw), nil
	default:
		return "", internal.ErrInvalidRole
	}
}

// DashboardPath maps a role to its landing page. Anything outside the
// three known roles resolves to the login page.
func (r Role) DashboardPath() string {
	switch r {
	case RoleStudent:
		return "/student/dashboard"
	case RoleFaculty:
		return "/faculty/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	default:
		return internal.LoginPath
	}
}

// Session is the request-scoped identity carried through context after the
// session middleware has validated a token. No global session state exists.
type Session struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// Account is the auth view of a user row: just enough to verify
// credentials and mint a session.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

// Claims are the JWT payload of a session token. The role travels in the
// token so guards never need a database round trip.
type Claims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator mints and validates session tokens.
type TokenGenerator interface {
	GenerateSessionToken(session Session) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret     []byte
	SessionTTL time.Duration
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// LoginResult is what a successful authentication yields: the token plus
// the session it encodes.
type LoginResult struct {
	Token   string
	Session Session
}
