package main

import (
	"context"
	"database/sql"
	"fmt"

	"deckforge/agent"
	"deckforge/assets"
	"deckforge/database"
	"deckforge/export"
	"deckforge/logger"
)

// App owns the application services and their lifecycle. Construction
// wires dependencies; Startup runs the registry.
type App struct {
	ctx      context.Context
	registry *ServiceRegistry
	logger   *logger.Logger

	configService *ConfigService
	db            *sql.DB

	DeckFacade   *DeckFacadeService
	BrandFacade  *BrandFacadeService
	Chat         *ChatService
	ExportFacade *ExportFacadeService
}

// NewApp creates the application shell. Services are wired in Startup
// once the configuration is readable.
func NewApp() *App {
	l := logger.NewLogger()
	app := &App{logger: l}
	app.configService = NewConfigService(l.Log)
	return app
}

// Startup initializes all services. The config and database services
// are critical; everything downstream degrades instead of aborting.
func (a *App) Startup(ctx context.Context) error {
	a.ctx = ctx
	a.registry = NewServiceRegistry(ctx, a.logger.Log)

	if err := a.registry.RegisterCritical(a.configService); err != nil {
		return err
	}
	if err := a.configService.Initialize(ctx); err != nil {
		return err
	}

	cfg, err := a.configService.GetConfig()
	if err != nil {
		return WrapError("app", "Startup", err)
	}

	if err := a.logger.Init(cfg.DataDir); err != nil {
		// Logging is best-effort; a read-only data dir should not
		// block deck work.
		fmt.Printf("Warning: log file unavailable: %v\n", err)
	}

	db, err := database.InitDB(cfg.DataDir)
	if err != nil {
		return WrapError("app", "Startup", err)
	}
	a.db = db

	deckStore := database.NewDeckService(db)
	brandStore := database.NewBrandService(db)
	messageStore := database.NewMessageService(db)
	exportStore := database.NewExportRecordService(db)

	chatModel, err := agent.NewChatModel(ctx, cfg)
	if err != nil {
		// A bad LLM config falls back to the scripted assistant.
		a.logger.Logf("Chat model unavailable, using scripted assistant: %v", err)
		chatModel = nil
	}
	assistant := agent.NewAssistantService(chatModel, a.logger)

	fetcher := assets.NewFetcher()
	pptService := export.NewPPTService(fetcher, a.logger)

	a.DeckFacade = NewDeckFacadeService(deckStore, a.logger.Log)
	a.BrandFacade = NewBrandFacadeService(brandStore, a.logger.Log)
	a.Chat = NewChatService(messageStore, deckStore, assistant, a.logger.Log)
	a.ExportFacade = NewExportFacadeService(deckStore, a.BrandFacade, exportStore, pptService, a.configService, a.logger.Log)

	for _, svc := range []Service{a.DeckFacade, a.BrandFacade, a.Chat, a.ExportFacade} {
		if err := a.registry.Register(svc); err != nil {
			return err
		}
	}

	// The config service's Initialize is idempotent, so the registry
	// pass is safe to include it.
	return a.registry.InitializeAll()
}

// Shutdown stops all services and releases the database and log file.
func (a *App) Shutdown() {
	if a.registry != nil {
		a.registry.ShutdownAll()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Logf("Database close error: %v", err)
		}
	}
	a.logger.Close()
}
