package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
)

type UserService struct {
	repo user.Repository
}

func NewUserService(repo user.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) Create(ctx context.Context, data user.User) (user.User, error) {
	return s.repo.Create(ctx, data)
}
