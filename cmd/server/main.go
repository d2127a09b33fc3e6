package main

import (
	"fmt"
	"log"

	"taxmitra/internal/config"
	"taxmitra/internal/email/noop"
	"taxmitra/internal/email/ses"
	"taxmitra/internal/handler"
	"taxmitra/internal/port"
	"taxmitra/internal/repository/postgres"
	"taxmitra/internal/router"
	"taxmitra/internal/service"
	s3storage "taxmitra/internal/storage/s3"
	"taxmitra/internal/tax"
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
	userRepo := postgres.NewUserRepo(db)
	calcRepo := postgres.NewCalculationRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	updateRepo := postgres.NewUpdateRepo(db)
	chatRepo := postgres.NewChatRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emails port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emails, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emails = noop.NewNoopSender(cfg.Email.FrontendURL)
	}

	// Load slab schedules
	schedules, err := loadSchedules(cfg.Tax.SchedulePath)
	if err != nil {
		return fmt.Errorf("failed to load tax schedules: %w", err)
	}
	engine := tax.NewEngine(schedules)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, emails, cfg.JWT)
	taxSvc := service.NewTaxService(engine, calcRepo)
	documentSvc := service.NewDocumentService(docRepo, s3Client, &cfg.S3)
	updateSvc := service.NewUpdateService(updateRepo)
	chatSvc := service.NewChatService(chatRepo, taxSvc)
	exportSvc := service.NewExportService(calcRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	taxH := handler.NewTaxHandler(taxSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	updateH := handler.NewUpdateHandler(updateSvc)
	chatH := handler.NewChatHandler(chatSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, authH, taxH, documentH, updateH, chatH, exportH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// loadSchedules reads slab schedules from the configured path, falling back
// to the compiled-in set when no path is given.
func loadSchedules(path string) (*tax.ScheduleSet, error) {
	if path == "" {
		return tax.DefaultScheduleSet()
	}
	return tax.LoadScheduleSet(path)
}
