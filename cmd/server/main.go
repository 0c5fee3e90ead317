package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owow-nl/wizkid-manager/internal/server"
	"github.com/owow-nl/wizkid-manager/modules"
	coreseed "github.com/owow-nl/wizkid-manager/modules/core/seed"
	wizkidseed "github.com/owow-nl/wizkid-manager/modules/wizkid/seed"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
	"github.com/owow-nl/wizkid-manager/pkg/eventbus"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if err := app.Migrations().Run(context.Background()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	seeder := application.NewSeeder()
	seeder.Register(
		coreseed.CreateDefaultBoss,
		wizkidseed.CreateDefaultWizkids,
	)
	seedCtx := composables.WithPool(context.Background(), pool)
	if err := seeder.Seed(seedCtx, app); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
