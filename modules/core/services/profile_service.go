package services

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/profile"
	"github.com/owow-nl/wizkid-manager/modules/core/infrastructure/persistence"
)

type ProfileService struct {
	repo profile.Repository
}

func NewProfileService(repo profile.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetByUserID returns an empty profile for users that never saved one.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if gerrors.Is(err, persistence.ErrProfileNotFound) {
			return profile.New(userID), nil
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (s *ProfileService) Upsert(ctx context.Context, data profile.Profile) (profile.Profile, error) {
	return s.repo.Upsert(ctx, data)
}
