package seed

import (
	"context"

	gerrors "github.com/go-faster/errors"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/profile"
	"github.com/owow-nl/wizkid-manager/modules/core/infrastructure/persistence"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

const (
	defaultBossEmail    = "boss@owow.nl"
	defaultBossPassword = "wizkids2000"
	defaultBossRole     = "Boss"
)

// CreateDefaultBoss seeds a Boss account so the fire/rehire flow is usable
// on a fresh database.
func CreateDefaultBoss(ctx context.Context, app application.Application) error {
	logger := configuration.Use().Logger()
	userRepo := persistence.NewUserRepository()
	profileRepo := persistence.NewProfileRepository()

	existing, err := userRepo.GetByEmail(ctx, defaultBossEmail)
	if err == nil {
		logger.Infof("Default boss already exists")
		return ensureBossProfile(ctx, profileRepo, existing)
	}
	if !gerrors.Is(err, persistence.ErrUserNotFound) {
		return err
	}

	logger.Infof("Creating default boss %s", defaultBossEmail)
	u, err := user.New(defaultBossEmail, defaultBossPassword)
	if err != nil {
		return err
	}
	created, err := userRepo.Create(ctx, u)
	if err != nil {
		return err
	}
	return ensureBossProfile(ctx, profileRepo, created)
}

func ensureBossProfile(ctx context.Context, repo profile.Repository, u user.User) error {
	p, err := repo.GetByUserID(ctx, u.ID())
	if err != nil {
		if !gerrors.Is(err, persistence.ErrProfileNotFound) {
			return err
		}
		p = profile.New(u.ID())
	}
	if p.Role() == defaultBossRole {
		return nil
	}
	_, err = repo.Upsert(ctx, p.WithRole(defaultBossRole))
	return err
}
