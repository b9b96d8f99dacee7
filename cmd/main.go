package main

import (
	"os"
	"os/signal"
	"syscall"

	"agrotrust/internal/auth"
	"agrotrust/internal/database"
	"agrotrust/internal/handlers"
	"agrotrust/internal/logger"
	"agrotrust/internal/services"
	"agrotrust/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables; a missing .env file is fine
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()

	// Load database configuration
	dbConfig := database.LoadConfig()

	// Connect to database
	if err := database.Connect(dbConfig); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Per-farmer write serialization shared by handlers and workers
	locks := services.NewFarmerLocks()

	// Initialize and start background workers
	workerService := worker.NewWorkerService(locks)
	if err := workerService.Start(); err != nil {
		logger.Fatal("Failed to start background workers", zap.Error(err))
	}

	// Setup graceful shutdown
	setupGracefulShutdown(workerService)

	// Setup HTTP server
	setupServer(locks)
}

func setupGracefulShutdown(workerService *worker.WorkerService) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Received shutdown signal, gracefully shutting down...")

		workerService.Stop()
		database.Close()

		logger.Info("Shutdown complete")
		logger.Sync()
		os.Exit(0)
	}()
}

func setupServer(locks *services.FarmerLocks) {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()
	r.Use(handlers.CORS())

	// Initialize handlers
	farmerHandler := handlers.NewFarmerHandler(database.DB, locks)
	activityHandler := handlers.NewActivityHandler(database.DB)
	partnerHandler := handlers.NewPartnerHandler(database.DB)
	trustHandler := handlers.NewTrustHandler(database.DB, locks)
	adminHandler := handlers.NewAdminHandler(database.DB)
	docsHandler := handlers.NewDocsHandler()

	verifier := auth.NewJWTVerifier()
	requireAuth := handlers.RequireAuth(verifier)

	// Health check
	r.GET("/health", adminHandler.HealthCheck)

	// Identity sync from the external auth collaborator
	r.POST("/auth/sync-user", farmerHandler.SyncUser)

	// Farmer self-service endpoints
	farmers := r.Group("/farmers", requireAuth)
	{
		farmers.POST("/profile", farmerHandler.CreateProfile)
		farmers.GET("/profile", farmerHandler.GetProfile)
		farmers.GET("/home", farmerHandler.Home)
		farmers.GET("/trust-level", farmerHandler.TrustLevel)
	}

	// Farm activity ledger
	r.POST("/farm-activities", requireAuth, activityHandler.Record)
	r.GET("/farm-activities", requireAuth, activityHandler.List)

	// Loan status placeholder
	r.GET("/loans/status", farmerHandler.LoanStatus)

	// Partner read-side endpoints
	partners := r.Group("/partners")
	{
		partners.GET("/farmers", partnerHandler.ListFarmers)
		partners.GET("/farmers/:farmer_id", partnerHandler.FarmerDetail)
		partners.GET("/export/farmers", partnerHandler.ExportFarmers)
	}

	// Internal trust scoring
	internal := r.Group("/internal")
	{
		internal.POST("/calculate-trust", trustHandler.CalculateTrust)
		internal.PUT("/trust-config", trustHandler.UpdateConfig)
	}

	// Admin dashboard behind basic auth
	admin := r.Group("/admin", adminHandler.AdminAuth())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
	}

	// Serve Markdown documentation as HTML
	r.GET("/doc/:doc", docsHandler.ServeMarkdownAsHTML)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting server", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
