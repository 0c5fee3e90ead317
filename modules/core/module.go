package core

import (
	"context"
	"embed"

	"github.com/owow-nl/wizkid-manager/modules/core/infrastructure/persistence"
	"github.com/owow-nl/wizkid-manager/modules/core/infrastructure/storage"
	"github.com/owow-nl/wizkid-manager/modules/core/presentation/controllers"
	"github.com/owow-nl/wizkid-manager/modules/core/services"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	app.Migrations().RegisterSchema(&MigrationFiles)

	userRepo := persistence.NewUserRepository()
	sessionRepo := persistence.NewSessionRepository()
	profileRepo := persistence.NewProfileRepository()

	avatarStorage, err := storage.NewS3Storage(context.Background(), &conf.Storage)
	if err != nil {
		return err
	}

	app.RegisterServices(
		services.NewUserService(userRepo),
		services.NewAuthService(userRepo, sessionRepo),
		services.NewProfileService(profileRepo),
		services.NewAvatarService(avatarStorage),
	)

	app.RegisterControllers(
		controllers.NewLoginController(app),
		controllers.NewAccountController(app),
		controllers.NewStaticController(),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
