package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/powderlabs/skitutor/api"
	"github.com/powderlabs/skitutor/chat"
	"github.com/powderlabs/skitutor/config"
	"github.com/powderlabs/skitutor/llm"
	"github.com/powderlabs/skitutor/policy"
	"github.com/powderlabs/skitutor/prompt"
	"github.com/powderlabs/skitutor/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ski tutor...")
	log.Printf("HTTP Port: %d", cfg.Port)
	log.Printf("Model: %s", cfg.Model)
	log.Printf("LLM URL: %s", cfg.LLMBaseURL)

	// Initialize session store
	var sessions store.Store
	if cfg.DatabaseURL != "" {
		log.Printf("Database: %s", cfg.DatabaseURL)
		sessions, err = store.NewSQLiteStore(cfg.DatabaseURL, prompt.InitialMessages)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
	} else {
		sessions = store.NewMemoryStore(prompt.InitialMessages)
	}
	defer sessions.Close()

	// Initialize generation gateway
	client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
	gateway := llm.NewChatGateway(client, cfg.Model)

	// Initialize category rule engine
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, policy.DefaultRules)
	if err != nil {
		log.Fatalf("Failed to initialize rule engine: %v", err)
	}

	// Initialize service
	svc := chat.New(sessions, gateway, engine)

	// Initialize handler
	h := api.NewHandler(svc)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)
	e.File("/", cfg.IndexFile)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Ski tutor started on port %d", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down ski tutor...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Ski tutor stopped")
}
