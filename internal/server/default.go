package server

import (
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/owow-nl/wizkid-manager/modules/core/presentation/controllers"
	coreservices "github.com/owow-nl/wizkid-manager/modules/core/services"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
	"github.com/owow-nl/wizkid-manager/pkg/constants"
	"github.com/owow-nl/wizkid-manager/pkg/middleware"
	"github.com/owow-nl/wizkid-manager/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the middleware stack around the registered modules.
// Authorize resolves sessions on every request; route-level guards decide
// what an anonymous or guest request may reach.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	authService := app.Service(coreservices.AuthService{}).(*coreservices.AuthService)

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.WithPool(options.Pool),
		middleware.RequestParams(),
	}

	if options.Configuration.RateLimit.Enabled {
		middlewares = append(middlewares, middleware.RateLimit(limiter.Rate{
			Period: time.Second,
			Limit:  int64(options.Configuration.RateLimit.GlobalRPS),
		}))
	}

	middlewares = append(middlewares, middleware.Authorize(authService))

	app.RegisterMiddleware(middlewares...)

	return server.NewHTTPServer(
		app,
		controllers.NotFound(),
		controllers.MethodNotAllowed(),
	), nil
}
