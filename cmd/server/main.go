package main

import (
	"log"
	"time"

	"cabinet_avocat_go/config"
	"cabinet_avocat_go/db"
	"cabinet_avocat_go/handlers"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Lawyer{},
		&models.Secretary{},
		&models.Admin{},
		&models.Client{},
		&models.Opponent{},
		&models.Case{},
		&models.CaseAttachment{},
		&models.CaseClientLink{},
		&models.CaseOpponentLink{},
		&models.Session{},
		&models.Appointment{},
		&models.Consultation{},
		&models.Payment{},
		&models.PaymentTransaction{},
		&models.Message{},
		&models.ActivityLog{},
		&models.CaseType{},
		&models.PasswordResetCode{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the case taxonomy
	if err := services.SeedCaseTypes(db.DB); err != nil {
		log.Fatalf("Failed to seed case types: %v", err)
	}

	// Initialize the media store (R2 or local fallback)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files (local-storage uploads fallback and public assets)
	e.Static("/static/uploads", cfg.UploadDir)
	e.Static("/public", cfg.PublicDir)

	// Public routes (no authentication required)
	e.POST("/api/avocats/register", handlers.RegisterLawyerHandler)
	e.POST("/api/avocats/login", handlers.LoginLawyerHandler)
	e.POST("/api/secretaires/login", handlers.LoginSecretaryHandler)
	e.POST("/api/admin/login", handlers.LoginAdminHandler)
	e.POST("/api/avocats/forgot-password", handlers.ForgotPasswordHandler)
	e.POST("/api/avocats/reset-password", handlers.ResetPasswordHandler)
	e.POST("/api/messages", handlers.CreateMessageHandler)

	// Protected routes (lawyer or secretary acting in the lawyer's scope)
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())

	staff := api.Group("")
	staff.Use(middleware.RequireRole(services.RoleAvocat, services.RoleSecretaire))
	{
		staff.GET("/avocats/me", handlers.GetProfileHandler)
		staff.PUT("/avocats/me", handlers.UpdateProfileHandler)
		staff.POST("/avocats/me/logo", handlers.UploadLogoHandler)

		staff.GET("/secretaires", handlers.ListSecretariesHandler)
		staff.GET("/secretaires/:id", handlers.GetSecretaryHandler)
		staff.POST("/secretaires", handlers.CreateSecretaryHandler)
		staff.PUT("/secretaires/:id", handlers.UpdateSecretaryHandler)
		staff.DELETE("/secretaires/:id", handlers.DeleteSecretaryHandler)

		staff.GET("/clients", handlers.ListClientsHandler)
		staff.GET("/clients/:id", handlers.GetClientHandler)
		staff.POST("/clients", handlers.CreateClientHandler)
		staff.PUT("/clients/:id", handlers.UpdateClientHandler)
		staff.DELETE("/clients/:id", handlers.DeleteClientHandler)

		staff.GET("/affaires", handlers.ListCasesHandler)
		staff.GET("/affaires/:id", handlers.GetCaseHandler)
		staff.POST("/affaires", handlers.CreateCaseHandler)
		staff.PUT("/affaires/:id", handlers.UpdateCaseHandler)
		staff.DELETE("/affaires/:id", handlers.DeleteCaseHandler)
		staff.POST("/affaires/:id/archive", handlers.ArchiveCaseHandler)
		staff.POST("/affaires/:id/restore", handlers.RestoreCaseHandler)

		staff.GET("/affaires/:id/attachments", handlers.ListCaseAttachmentsHandler)
		staff.POST("/affaires/:id/attachments", handlers.AddCaseAttachmentsHandler)
		staff.DELETE("/affaires/:id/attachments/:attachmentId", handlers.DeleteCaseAttachmentHandler)
		staff.GET("/affaires/:id/attachments/:attachmentId/download", handlers.DownloadCaseAttachmentHandler)

		staff.GET("/sessions", handlers.ListSessionsHandler)
		staff.GET("/sessions/:id", handlers.GetSessionHandler)
		staff.POST("/sessions", handlers.CreateSessionHandler)
		staff.PUT("/sessions/:id", handlers.UpdateSessionHandler)
		staff.DELETE("/sessions/:id", handlers.DeleteSessionHandler)
		staff.GET("/sessions/:id/report", handlers.SessionReportHandler)
		staff.GET("/sessions/report", handlers.DailySessionReportHandler)

		staff.GET("/rendez-vous", handlers.ListAppointmentsHandler)
		staff.GET("/rendez-vous/:id", handlers.GetAppointmentHandler)
		staff.POST("/rendez-vous", handlers.CreateAppointmentHandler)
		staff.PUT("/rendez-vous/:id", handlers.UpdateAppointmentHandler)
		staff.DELETE("/rendez-vous/:id", handlers.DeleteAppointmentHandler)

		staff.GET("/consultations", handlers.ListConsultationsHandler)
		staff.GET("/consultations/:id", handlers.GetConsultationHandler)
		staff.POST("/consultations", handlers.CreateConsultationHandler)
		staff.PUT("/consultations/:id", handlers.UpdateConsultationHandler)
		staff.DELETE("/consultations/:id", handlers.DeleteConsultationHandler)

		staff.GET("/paiements", handlers.ListPaymentsHandler)
		staff.GET("/paiements/:id", handlers.GetPaymentHandler)
		staff.POST("/paiements", handlers.CreatePaymentHandler)
		staff.PUT("/paiements/:id", handlers.UpdatePaymentHandler)
		staff.DELETE("/paiements/:id", handlers.DeletePaymentHandler)
		staff.GET("/paiements/export", handlers.PaymentsExportHandler)

		staff.GET("/transactions", handlers.ListPaymentTransactionsHandler)
		staff.POST("/transactions", handlers.CreatePaymentTransactionHandler)
		staff.DELETE("/transactions/:id", handlers.DeletePaymentTransactionHandler)

		staff.GET("/types-affaires", handlers.ListCaseTypesHandler)
	}

	// Admin-only routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(services.RoleAdmin))
	{
		admin.GET("/avocats", handlers.AdminListLawyersHandler)
		admin.GET("/avocats/:id", handlers.AdminGetLawyerHandler)
		admin.PUT("/avocats/:id", handlers.AdminUpdateLawyerHandler)
		admin.DELETE("/avocats/:id", handlers.AdminDeleteLawyerHandler)

		admin.GET("/secretaires", handlers.AdminListSecretariesHandler)
		admin.DELETE("/secretaires/:id", handlers.AdminDeleteSecretaryHandler)

		admin.GET("/messages", handlers.ListMessagesHandler)
		admin.POST("/messages/:id/reply", handlers.ReplyMessageHandler)
		admin.DELETE("/messages/:id", handlers.DeleteMessageHandler)

		admin.GET("/activity", handlers.AdminActivityLogHandler)

		admin.POST("/types-affaires", handlers.AdminCreateCaseTypeHandler)
		admin.PUT("/types-affaires/:id", handlers.AdminUpdateCaseTypeHandler)
		admin.DELETE("/types-affaires/:id", handlers.AdminDeleteCaseTypeHandler)
	}

	// Start background cleanup jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredResetCodes(db.DB); err != nil {
				log.Printf("Error cleaning up expired reset codes: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
