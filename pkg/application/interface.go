package application

import (
	"context"
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owow-nl/wizkid-manager/pkg/eventbus"
)

// Controller is a router-registrable unit of HTTP handlers. Key must be
// unique across the whole application; registering the same key twice
// replaces the earlier controller.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires its services, controllers, schema and seed data into the
// application at startup.
type Module interface {
	Name() string
	Register(app Application) error
}

type SeedFunc func(ctx context.Context, app Application) error

type Seeder interface {
	Register(seedFuncs ...SeedFunc)
	Seed(ctx context.Context, app Application) error
}

type MigrationManager interface {
	Run(ctx context.Context) error
	RegisterSchema(fs ...*embed.FS)
}

type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Migrations() MigrationManager

	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})

	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}
