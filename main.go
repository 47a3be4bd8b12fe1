package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/MkManish25/tax-advisor-webapp/client"
	"github.com/MkManish25/tax-advisor-webapp/config"
	"github.com/MkManish25/tax-advisor-webapp/handler"
	"github.com/MkManish25/tax-advisor-webapp/repository"
	"github.com/MkManish25/tax-advisor-webapp/service"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg := config.LoadConfig()
	if cfg.DatabaseURL == "" {
		logger.Fatal().Msg("DB_URL environment variable is required, check your .env file")
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set, extraction and advisory will run on fallbacks")
	}

	// The store stays wired even when the first ping fails: writes are
	// attempted per request and the pipeline degrades rather than refusing
	// to start.
	db, err := repository.Open(cfg.DatabaseURL, repository.PoolSettings{
		MaxOpenConns:       cfg.DBMaxOpenConns,
		MaxIdleConns:       cfg.DBMaxIdleConns,
		ConnMaxLifetimeSec: cfg.DBConnMaxLifetimeSec,
	})
	if err != nil {
		if db == nil {
			logger.Fatal().Err(err).Msg("failed to open database")
		}
		logger.Warn().Err(err).Msg("database not reachable, continuing in degraded mode")
	} else {
		logger.Info().Msg("database connection successful")
	}
	defer db.Close()

	store := repository.NewFinancialsPostgres(db)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to ensure user_financials schema")
		}
		cancel()
	}

	gemini := client.NewGeminiClient(cfg.GeminiEndpoint, cfg.GeminiAPIKey, logger)
	tesseract := client.NewTesseractClient(cfg.TesseractDataPath, logger)
	pdfProcessor := service.NewPDFProcessor()

	extractService := service.NewExtractService(pdfProcessor, tesseract, cfg.MaxFileSize, cfg.MinTextLength, logger)
	fieldService := service.NewFieldService(gemini, cfg.GeminiExtractTimeout, cfg.MaxPromptChars, logger)
	advisorService := service.NewAdvisorService(gemini, cfg.GeminiAdvisorTimeout, cfg.ConversationLogPath, logger)

	uploadHandler := handler.NewUploadHandler(extractService, fieldService, cfg.UploadDir, cfg.MaxFileSize, logger)
	taxHandler := handler.NewTaxHandler(store, logger)
	advisorHandler := handler.NewAdvisorHandler(store, advisorService, logger)

	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "connected"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "disconnected"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  "Tax Advisor",
			"database": dbStatus,
		})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/form", uploadHandler.EmptyForm)
		api.POST("/upload", uploadHandler.Upload)
		api.POST("/calculate", taxHandler.Calculate)

		advisor := api.Group("/advisor")
		{
			advisor.GET("/:session_id", advisorHandler.Question)
			advisor.POST("/:session_id", advisorHandler.Suggestions)
		}
	}

	logger.Info().Str("port", cfg.ServerPort).Msg("starting Tax Advisor service")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
