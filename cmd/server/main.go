package main

import (
	"fmt"
	"log"

	"facturo/internal/auth"
	"facturo/internal/config"
	"facturo/internal/email/noop"
	"facturo/internal/email/ses"
	"facturo/internal/events"
	"facturo/internal/handler"
	"facturo/internal/hook"
	"facturo/internal/port"
	"facturo/internal/repository/postgres"
	"facturo/internal/router"
	"facturo/internal/service"
	s3storage "facturo/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	seriesRepo := postgres.NewSeriesRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize snapshot archive
	var archive port.ArchiveStorage
	if cfg.Archive.Enabled {
		archive, err = s3storage.NewS3Archive(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
	}

	// Initialize services
	hooks := hook.NewRegistry()
	publisher := events.NewLogPublisher()
	seriesSvc := service.NewSeriesService(seriesRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, seriesRepo, settingsRepo, hooks, publisher, emailSender, archive)
	settingsSvc := service.NewSettingsService(settingsRepo)
	statsSvc := service.NewStatsService(invoiceRepo)

	// Initialize handlers
	seriesH := handler.NewSeriesHandler(seriesSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	verifier := auth.NewVerifier(cfg.JWT)
	r := router.Setup(verifier, cfg.CORS.AllowedOrigins, healthH, seriesH, invoiceH, settingsH, statsH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
