package wizkid

import (
	"embed"

	coreservices "github.com/owow-nl/wizkid-manager/modules/core/services"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/infrastructure/notify"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/infrastructure/persistence"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/presentation/controllers"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/services"
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

	profileService := app.Service(coreservices.ProfileService{}).(*coreservices.ProfileService)

	app.RegisterServices(
		services.NewWizkidService(
			persistence.NewWizkidRepository(),
			app.EventPublisher(),
			notify.NewResendNotifier(&conf.Notification),
			profileService,
		),
	)

	app.RegisterControllers(
		controllers.NewWizkidController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "wizkid"
}
