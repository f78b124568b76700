package main

import (
	"CookieVault/internal/config"
	"CookieVault/internal/handlers"
	"CookieVault/internal/middleware"
	"CookieVault/internal/repo"
	"CookieVault/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	accountRepo := repo.NewAccountRepository(gormDB)
	entryRepo := repo.NewEntryRepository(gormDB)

	authService := service.NewAuthService(accountRepo, cfg)
	accountService := service.NewAccountService(accountRepo, cfg)
	entryService := service.NewEntryService(entryRepo)

	h := handlers.NewHandler(authService, accountService, entryService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"SessionTTL", cfg.SessionTTL(),
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
