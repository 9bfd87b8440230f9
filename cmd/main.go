package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/fundflow/go-transfer/internal/api"
	"github.com/fundflow/go-transfer/internal/controller"
	"github.com/fundflow/go-transfer/internal/db"
	"github.com/fundflow/go-transfer/internal/ledger"
	"github.com/fundflow/go-transfer/internal/ledger/pg"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db.LoadEnv()
	ctx := context.Background()

	// DATABASE_URL selects the Postgres store; without it the service runs
	// on the in-memory store with demo data.
	var store interface {
		ledger.Store
		ledger.Directory
	}
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := db.NewConnection(ctx)
		if err != nil {
			logger.Fatal("db connection failed", zap.Error(err))
		}
		defer pool.Close()

		pgStore := pg.New(pool)
		if err := pgStore.CreateSchema(ctx); err != nil {
			logger.Fatal("schema creation failed", zap.Error(err))
		}
		store = pgStore
	} else {
		memStore := ledger.NewMemStore()
		seedDemoData(memStore)
		store = memStore
	}

	ctrl := controller.New(store, store, logger)

	app := fiber.New()
	api.InitializeRoutes(app, ctrl)

	ctrl.Activate()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("transfer server running", zap.String("port", port))
	logger.Fatal("server stopped", zap.Error(app.Listen(":"+port)))
}
