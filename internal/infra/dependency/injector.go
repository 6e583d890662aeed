// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/finance-assistant/backend/config"
	"github.com/finance-assistant/backend/internal/application/usecase/assistant"
	"github.com/finance-assistant/backend/internal/application/usecase/entry"
	"github.com/finance-assistant/backend/internal/application/usecase/receipt"
	"github.com/finance-assistant/backend/internal/application/usecase/report"
	"github.com/finance-assistant/backend/internal/infra/server/router"
	"github.com/finance-assistant/backend/internal/integration/adapters"
	"github.com/finance-assistant/backend/internal/integration/email"
	"github.com/finance-assistant/backend/internal/integration/email/templates"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/controller"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-assistant/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Repositories
	entryRepo := persistence.NewEntryRepository(db)

	// External services
	gemini := adapters.NewGeminiService(cfg.Gemini.APIKey)
	resendClient := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create template renderer: %w", err)
	}
	reportMailer := email.NewService(resendClient, renderer)

	// Entry use cases
	extractEntryUseCase := entry.NewExtractEntryUseCase(gemini)
	registerEntryUseCase := entry.NewRegisterEntryUseCase(extractEntryUseCase, entryRepo)
	listEntriesUseCase := entry.NewListEntriesUseCase(entryRepo)
	queryEntriesUseCase := entry.NewQueryEntriesUseCase(entryRepo)
	updateEntryUseCase := entry.NewUpdateEntryUseCase(entryRepo)
	deleteEntryUseCase := entry.NewDeleteEntryUseCase(entryRepo)

	// Receipt use cases
	processReceiptUseCase := receipt.NewProcessReceiptUseCase(gemini)
	checkImageQualityUseCase := receipt.NewCheckImageQualityUseCase(gemini)
	registerConfirmedUseCase := receipt.NewRegisterConfirmedUseCase(entryRepo)

	// Report use cases
	buildReportUseCase := report.NewBuildReportUseCase(entryRepo)
	generateInsightsUseCase := report.NewGenerateInsightsUseCase(gemini)
	sendReportUseCase := report.NewSendReportUseCase(reportMailer, cfg.Email.DefaultRecipient)

	// Intent router
	processMessageUseCase := assistant.NewProcessMessageUseCase(
		gemini,
		registerEntryUseCase,
		extractEntryUseCase,
		queryEntriesUseCase,
		processReceiptUseCase,
		buildReportUseCase,
		generateInsightsUseCase,
		sendReportUseCase,
	)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	entryController := controller.NewEntryController(
		registerEntryUseCase,
		extractEntryUseCase,
		listEntriesUseCase,
		queryEntriesUseCase,
		updateEntryUseCase,
		deleteEntryUseCase,
	)

	receiptController := controller.NewReceiptController(
		processReceiptUseCase,
		checkImageQualityUseCase,
		registerConfirmedUseCase,
	)

	reportController := controller.NewReportController(
		buildReportUseCase,
		generateInsightsUseCase,
		sendReportUseCase,
	)

	assistantController := controller.NewAssistantController(processMessageUseCase)

	principalMiddleware := middleware.NewPrincipalMiddleware(
		cfg.Auth.Enabled,
		cfg.Auth.JWTSecret,
		cfg.Auth.DevUserEmail,
	)

	appRouter := router.NewRouter(
		healthController,
		entryController,
		receiptController,
		reportController,
		assistantController,
		principalMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: appRouter,
	}, nil
}
