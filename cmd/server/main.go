package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpadapter "github.com/simaogato/fundflow-backend/internal/adapter/http"
	"github.com/simaogato/fundflow-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/fundflow-backend/internal/config"
	"github.com/simaogato/fundflow-backend/internal/logging"
	"github.com/simaogato/fundflow-backend/internal/usecase/balance"
	"github.com/simaogato/fundflow-backend/internal/usecase/statement"
	"github.com/simaogato/fundflow-backend/internal/usecase/transfer"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 2. Setup database
	db, err := postgres.NewDB(postgres.Config{
		ConnStr:  cfg.DB.ConnStr,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 3. Initialize repositories (Postgres)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	balanceStore := postgres.NewBalanceStore(db)
	resolver := postgres.NewIdentityResolver(db)

	// 4. Initialize services (use cases)
	transferService := transfer.NewService(accountRepo, transactionRepo, balanceStore)
	balanceService := balance.NewService(balanceStore)
	statementService := statement.NewService(transactionRepo)

	// 5. Start HTTP server
	handler := httpadapter.NewHandler(transferService, balanceService, statementService)
	app := httpadapter.NewApp(handler, logger, resolver)

	go func() {
		logger.Info("http server listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	waitForShutdown(app, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(app *fiber.App, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("http server stopped")
}
