package main

import (
	"context"
	"log"

	"prosecase-backend/config"
	"prosecase-backend/handlers"
	"prosecase-backend/llm"
	"prosecase-backend/repository"
	"prosecase-backend/service"
	"prosecase-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Postgres connection established")

	// Initialize blob storage for uploaded originals
	fileStorage, err := storage.NewStorageFromConfig(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	logger.Info("Storage initialized", zap.String("type", cfg.Storage.Type))

	// Initialize Gemini client
	generator, err := llm.NewClient(context.Background(), llm.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Gemini", zap.Error(err))
	}
	defer generator.Close()
	logger.Info("Gemini client initialized", zap.String("model", cfg.GeminiModel))

	// Initialize repositories
	caseRepo := repository.NewCaseRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	deadlineRepo := repository.NewDeadlineRepository(db)
	chatRepo := repository.NewChatMessageRepository(db)
	learningRepo := repository.NewLearningDataRepository(db)

	// Initialize services
	analysisService := service.NewAnalysisService(generator, logger)

	documentService := service.NewDocumentService(
		service.WithCaseStore(caseRepo),
		service.WithDocumentStore(documentRepo),
		service.WithLearningDataStore(learningRepo),
		service.WithAnalysisService(analysisService),
		service.WithFileStorage(fileStorage),
		service.WithLogger(logger),
	)

	chatService := service.NewChatService(
		service.ChatWithMessageStore(chatRepo),
		service.ChatWithCaseStore(caseRepo),
		service.ChatWithAnalysisService(analysisService),
		service.ChatWithLogger(logger),
	)

	// Initialize handlers
	caseHandler := handlers.NewCaseHandler(caseRepo, documentRepo, deadlineRepo, logger)
	documentHandler := handlers.NewDocumentHandler(documentService, analysisService, documentRepo, cfg.MaxUploadBytes(), logger)
	deadlineHandler := handlers.NewDeadlineHandler(deadlineRepo, caseRepo, logger)
	chatHandler := handlers.NewChatHandler(chatService, logger)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Case endpoints
		api.GET("/cases", caseHandler.ListCases)
		api.POST("/cases", caseHandler.CreateCase)
		api.GET("/cases/:id", caseHandler.GetCase)
		api.PATCH("/cases/:id", caseHandler.UpdateCase)
		api.GET("/cases/:id/documents", caseHandler.ListCaseDocuments)
		api.GET("/cases/:id/deadlines", caseHandler.ListCaseDeadlines)

		// Document endpoints
		api.GET("/documents", documentHandler.ListDocuments)
		api.POST("/documents", documentHandler.CreateDocument)
		api.POST("/documents/upload", documentHandler.UploadDocument)
		api.POST("/documents/generate", documentHandler.GenerateDocument)
		api.GET("/documents/:id", documentHandler.GetDocument)

		// Deadline endpoints
		api.GET("/deadlines", deadlineHandler.ListDeadlines)
		api.GET("/deadlines/upcoming", deadlineHandler.ListUpcoming)
		api.POST("/deadlines", deadlineHandler.CreateDeadline)
		api.PATCH("/deadlines/:id", deadlineHandler.UpdateDeadline)

		// Chat endpoints
		api.GET("/chat", chatHandler.GetThread)
		api.GET("/chat/:contextId", chatHandler.GetThread)
		api.POST("/chat", chatHandler.SendMessage)
	}

	// Start server
	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}
