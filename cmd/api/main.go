package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veloclub/clubhouse-api/internal/application/service"
	"github.com/veloclub/clubhouse-api/internal/config"
	domainRepo "github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/internal/infrastructure/database"
	"github.com/veloclub/clubhouse-api/internal/infrastructure/repository"
	"github.com/veloclub/clubhouse-api/internal/infrastructure/tillstate"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/handler"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/routes"
	"github.com/veloclub/clubhouse-api/pkg/email"
	"github.com/veloclub/clubhouse-api/pkg/printer"
	"github.com/veloclub/clubhouse-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Till state store: Redis when reachable, in-memory otherwise so a single
	// binary still runs without infrastructure.
	var stateStore domainRepo.TillStateStore
	redisClient, err := tillstate.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Redis unavailable, till state will not survive restarts: %v", err)
		stateStore = tillstate.NewMemoryStore()
	} else {
		stateStore = tillstate.NewRedisStore(redisClient, time.Duration(cfg.Till.StateTTLHours)*time.Hour)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromName:     cfg.SMTP.FromName,
		FromEmail:    cfg.SMTP.FromEmail,
		FrontendURL:  cfg.SMTP.FrontendURL,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	userService := service.NewUserService(userRepo, roleRepo)
	inventoryService := service.NewInventoryService(itemRepo, userRepo, notifRepo, emailService)
	orderService := service.NewOrderService(orderRepo, itemRepo, sessionRepo, memberRepo, counterRepo)
	tillService := service.NewTillService(sessionRepo, itemRepo, orderRepo, settingsRepo, notifRepo, stateStore)
	reportService := service.NewReportService(sessionRepo, orderRepo)
	memberService := service.NewMemberService(memberRepo, counterRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, memberRepo, userRepo, counterRepo, notifRepo, emailService, cfg.App.Name, cfg.SMTP.FrontendURL)
	notificationService := service.NewNotificationService(notifRepo, userRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	printerService := service.NewPrinterService(thermalPrinter, settingsRepo, orderRepo, sessionRepo, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Item:         handler.NewItemHandler(inventoryService),
		Order:        handler.NewOrderHandler(orderService, printerService),
		Session:      handler.NewSessionHandler(tillService, reportService, printerService),
		Report:       handler.NewReportHandler(reportService),
		Member:       handler.NewMemberHandler(memberService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Notification: handler.NewNotificationHandler(notificationService),
		Settings:     handler.NewSettingsHandler(settingsService),
		User:         handler.NewUserHandler(userService),
		Printer:      handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
