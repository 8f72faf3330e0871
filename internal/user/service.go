package user

import (
	"fmt"
)

type Repository interface {
	ListAll() ([]User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// List returns every account grouped by role, then name. The admin user
// directory is small enough that pagination is not worth its weight here.
func (s *Service) List() ([]User, error) {
	users, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
