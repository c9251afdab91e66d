package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"studymate/internal/config"
	"studymate/internal/llm"
	"studymate/internal/rag/embedding"
	"studymate/internal/rag/loaders"
	"studymate/internal/rag/pipeline"
	"studymate/internal/rag/splitters"
	"studymate/pkg/logger"
)

func newRouter(handler *HTTPHandler) *gin.Engine {
	router := gin.Default()
	router.GET("/health", handler.health)

	api := router.Group("/api/v1")
	{
		api.POST("/documents", handler.uploadDocuments)
		api.POST("/ask", handler.ask)
		api.GET("/stats", handler.stats)
	}
	return router
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// API keys commonly live in a .env file during development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		cfg = config.Default()
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("studymate")
	appLogger.Info("Starting StudyMate service...")

	embedder, err := embedding.NewModel(cfg.Embedding)
	if err != nil {
		log.Fatalf("Failed to load embedding model: %v", err)
	}
	appLogger.Info(fmt.Sprintf("Embedding model ready: %s", embedder.Name()))

	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	if llmClient == nil {
		appLogger.Warn("No LLM provider configured; /ask will return retrieved context without a generated answer")
	}

	loader := loaders.NewPdfLoader(logger.New("pdf-loader"))
	splitter := splitters.NewWordSplitter(cfg.Chunking.Size, cfg.Chunking.Overlap)
	processor := pipeline.NewProcessor(loader, splitter, logger.New("processor"))
	retriever := pipeline.NewRetriever(embedder, logger.New("retriever"))

	handler := NewHTTPHandler(cfg, processor, retriever, llmClient, appLogger)

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(handler)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		appLogger.Info(fmt.Sprintf("HTTP server listening at %s", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Forced shutdown: %v", err))
	}
	appLogger.Info("Server gracefully stopped")
}
