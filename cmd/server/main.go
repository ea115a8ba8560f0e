package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinic-appointment-backend/internal/config"
	"clinic-appointment-backend/internal/database"
	"clinic-appointment-backend/internal/handler"
	"clinic-appointment-backend/internal/mailer"
	"clinic-appointment-backend/internal/middleware"
	"clinic-appointment-backend/internal/repository"
	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/internal/storage"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection and run migrations
	db := database.Connect(cfg)
	database.Migrate(db)

	// 4. Initialize repositories
	profileRepo := repository.NewProfileRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	recordRepo := repository.NewMedicalRecordRepo(db)
	verificationRepo := repository.NewVerificationRepo(db)
	templateRepo := repository.NewEmailTemplateRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Ensure the built-in email templates exist
	if err := templateRepo.SeedDefaults(cfg.SMTP.SenderName, cfg.SMTP.Sender); err != nil {
		log.Printf("Warning: Failed to seed email templates: %v", err)
	}

	// 5. Initialize document store
	documentStore, err := storage.NewDocumentStore(cfg.Upload.Dir, cfg.Server.BaseURL, cfg.Upload.MaxSizeBytes)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}

	// 6. Initialize services
	notificationService := service.NewNotificationService(templateRepo, mailer.NewSMTP(cfg.SMTP))
	verificationService := service.NewVerificationService(verificationRepo, notificationService, cfg.Server.GinMode != "release")
	authService := service.NewAuthService(profileRepo, auditRepo, verificationService)
	profileService := service.NewProfileService(profileRepo, auditRepo)
	doctorService := service.NewDoctorService(doctorRepo, auditRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, doctorRepo, profileRepo, notificationService, auditRepo)
	recordService := service.NewMedicalRecordService(recordRepo, profileRepo, doctorRepo, auditRepo)
	statsService := service.NewStatsService(profileRepo, doctorRepo, appointmentRepo, recordRepo)
	cleanupService := service.NewCleanupService(verificationRepo)

	// Seed the configured admin account
	if err := authService.SeedAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName); err != nil {
		log.Printf("Warning: Failed to seed admin account: %v", err)
	}

	// 7. Start background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notificationService.Start(ctx)

	cleanupScheduler := cleanupService.StartCleanupCron()
	defer cleanupScheduler.Stop()

	// 8. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// Serve uploaded documents
	r.Static("/uploads", documentStore.Dir())

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService, verificationService)
	profileHandler := handler.NewProfileHandler(profileService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	recordHandler := handler.NewMedicalRecordHandler(recordService)
	uploadHandler := handler.NewUploadHandler(documentStore)
	statsHandler := handler.NewStatsHandler(statsService)

	// 10. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-appointment-backend",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/send-verification-code", authHandler.SendVerificationCode)
		auth.POST("/verify-code", authHandler.VerifyCode)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Authenticated routes
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/profile", profileHandler.GetMe)
		api.PUT("/profile", profileHandler.UpdateMe)

		api.GET("/doctors", doctorHandler.ListBookable)
		api.GET("/doctors/:id/slots", appointmentHandler.ListAvailableSlots)

		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.ListMine)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.POST("/appointments/check-availability", appointmentHandler.CheckAvailability)

		api.POST("/documents", uploadHandler.UploadDocument)

		api.GET("/medical-records", recordHandler.ListMine)

		// Admin-only routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/stats", statsHandler.Dashboard)

			admin.GET("/patients", profileHandler.ListPatients)
			admin.DELETE("/patients/:id", profileHandler.DeletePatient)

			admin.GET("/doctors", doctorHandler.ListAll)
			admin.POST("/doctors", doctorHandler.Create)
			admin.PUT("/doctors/:id", doctorHandler.Update)
			admin.DELETE("/doctors/:id", doctorHandler.Delete)

			admin.GET("/appointments", appointmentHandler.ListAll)
			admin.PATCH("/appointments/:id", appointmentHandler.Transition)

			admin.GET("/medical-records", recordHandler.ListAll)
			admin.POST("/medical-records", recordHandler.Create)
			admin.DELETE("/medical-records/:id", recordHandler.Delete)
		}
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Stop background workers
	cancel()
	log.Println("Server exited")
}
