package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aegisedu/campus-portal/internal"
	"github.com/aegisedu/campus-portal/pkg/logger"
)

// UserRepository is the storage contract the auth service depends on.
type UserRepository interface {
	GetByEmail(email string) (*Account, error)
	Create(account *Account) error
}

// ServiceAPI is consumed by the HTTP handler and the session middleware.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResult, error)
	Register(dto RegisterDTO) (*Account, error)
	ValidateSessionToken(token string) (*Session, error)
}

// Service implements login, registration and session validation.
type Service struct {
	users      UserRepository
	tokens     TokenGenerator
	bcryptCost int
}

func NewService(users UserRepository, tokens TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// NewJWTTokenGenerator creates a session token generator signing with HS256.
func NewJWTTokenGenerator(secret string, sessionTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:     []byte(secret),
		SessionTTL: sessionTTL,
	}
}

// Authenticate checks credentials and mints a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	account, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		logger.LoggerWrapper().Debug("login lookup failed", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	session := Session{
		UserID: account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   account.Role,
	}

	token, err := s.tokens.GenerateSessionToken(session)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate session token", err)
	}

	return &LoginResult{Token: token, Session: session}, nil
}

// Register creates an account with a hashed password. The email must not be
// in use; a concurrent insert racing past the pre-check is still caught by
// the unique constraint in storage.
func (s *Service) Register(dto RegisterDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	role, err := ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(dto.Email)
	if err != nil && !errors.Is(err, internal.ErrUserNotFound) {
		return nil, internal.NewInternalError("failed to check existing account", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	account := &Account{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(account); err != nil {
		return nil, err
	}

	logger.LoggerWrapper().Info("account registered", "user_id", account.ID, "role", account.Role)
	return account, nil
}

// ValidateSessionToken turns a bearer token into a Session. Any failure maps
// to the unauthenticated error so guarded routes fall back to the login page.
func (s *Service) ValidateSessionToken(token string) (*Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, internal.ErrUnauthenticated
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, internal.ErrUnauthenticated
	}

	return &Session{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   role,
	}, nil
}

// HashPassword hashes with the configured bcrypt cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateSessionToken signs the session claims with HS256.
func (g *JWTTokenGenerator) GenerateSessionToken(session Session) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: session.UserID,
		Name:   session.Name,
		Email:  session.Email,
		Role:   string(session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(session.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.Secret)
}

// ValidateToken parses and verifies a session token.
func (g *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return g.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
