package main

import (
	"context"

	"github.com/SamarthBhogre/InternLink/internal/handler"
	"github.com/SamarthBhogre/InternLink/internal/middleware"
	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"github.com/SamarthBhogre/InternLink/internal/upload"
	"github.com/SamarthBhogre/InternLink/pkg/config"
	"github.com/SamarthBhogre/InternLink/pkg/database"
	"github.com/SamarthBhogre/InternLink/pkg/logger"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting InternLink backend...", zap.String("environment", cfg.Server.Env))

	// Initialize database and run migrations
	db, err := database.Init(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	// File storage for resumes and verification documents
	uploads, err := upload.New(cfg.Uploads.Dir, cfg.Server.PublicBaseURL)
	if err != nil {
		log.Fatal("Failed to initialize upload storage", zap.Error(err))
	}

	// Stores and services
	stores := store.New(db)
	identitySvc := service.NewIdentityService(stores.Users, stores.Companies, log)
	internshipSvc := service.NewInternshipService(stores.Internships, log)
	applicationSvc := service.NewApplicationService(stores.Applications, stores.Internships, stores.Users, log)
	companySvc := service.NewCompanyService(stores.Companies, stores.Users, uploads, log)
	resumeSvc := service.NewResumeService(stores.Resumes, uploads, log)
	analyticsSvc := service.NewAnalyticsService(stores.Users, stores.Companies, stores.Internships, stores.Applications, log)

	// Ensure the administrator account exists
	if err := identitySvc.SeedAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(identitySvc)
	userHandler := handler.NewUserHandler(identitySvc)
	internshipHandler := handler.NewInternshipHandler(internshipSvc)
	applicationHandler := handler.NewApplicationHandler(applicationSvc)
	companyHandler := handler.NewCompanyHandler(companySvc)
	resumeHandler := handler.NewResumeHandler(resumeSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	healthHandler := handler.NewHealthHandler(db)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Health and metrics
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Uploaded files
	e.Static("/uploads", uploads.Dir())

	// API routes
	api := e.Group("/api")

	// Identity
	api.POST("/users", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// User administration
	api.GET("/users", userHandler.List)
	api.PUT("/users/by-email", companyHandler.UpdateProfileByEmail)
	api.DELETE("/users/:id", userHandler.Delete)
	api.POST("/users/:id/suspend", userHandler.Suspend)
	api.POST("/users/:id/activate", userHandler.Activate)

	// Internships
	api.POST("/internships", internshipHandler.Create)
	api.GET("/internships", internshipHandler.List)
	api.PUT("/internships/:id", internshipHandler.Update)
	api.POST("/internships/:id/approve", internshipHandler.Approve)
	api.POST("/internships/:id/reject", internshipHandler.Reject)

	// Applications
	api.POST("/applications", applicationHandler.Create)
	api.GET("/applications", applicationHandler.List)
	api.GET("/applications/:id", applicationHandler.Get)
	api.PUT("/applications/:id", applicationHandler.Update)
	api.DELETE("/applications/:id", applicationHandler.Delete)

	// Companies and verification
	api.GET("/companies/by-email", companyHandler.GetByEmail)
	api.POST("/company/verify", companyHandler.RequestVerification)
	api.GET("/admin/verifications", companyHandler.ListPendingVerifications)
	api.POST("/admin/verifications/:id/:action", companyHandler.ProcessVerification)

	// Resumes
	api.POST("/upload_resume", resumeHandler.Upload)
	api.DELETE("/upload_resume", resumeHandler.Delete)
	api.GET("/resume", resumeHandler.Get)

	// Analytics
	api.GET("/admin/analytics", analyticsHandler.PlatformSummary)
	api.GET("/company/overview", analyticsHandler.CompanySummary)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
