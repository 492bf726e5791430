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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"rasoimate/internal/api"
	"rasoimate/internal/config"
	"rasoimate/internal/database"
	"rasoimate/internal/donations"
	"rasoimate/internal/inventory"
	"rasoimate/internal/monitoring"
	"rasoimate/internal/recipes"
	"rasoimate/internal/schedule"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *metricsPort != 0 {
		cfg.MetricsPort = *metricsPort
	}

	// The language model is optional: without a credential every recipe
	// request takes the local fallback path.
	model := initializeLLM(cfg)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	store := inventory.NewStore(db, time.Now)
	generator := recipes.NewGenerator(model, cfg.Timeout())
	tracker := donations.NewTracker(nil)

	server := api.NewServer(store, generator, tracker)

	// Roll freshness statuses over at each local midnight.
	recompute := schedule.NewDailyJob(func() {
		store.RecomputeStatuses()
		monitoring.StatusRecomputed()
	}, nil)
	recompute.Start()
	defer recompute.Stop()

	go startMetricsServer(cfg.MetricsPort)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func initializeLLM(cfg *config.Config) llms.LLM {
	if cfg.OpenAI.Key == "" {
		log.Println("No OpenAI key configured; recipe generation will use the local fallback builder")
		return nil
	}

	model, err := openai.New(
		openai.WithModel(cfg.OpenAI.Model),
		openai.WithToken(cfg.OpenAI.Key),
	)
	if err != nil {
		log.Printf("Failed to initialize OpenAI client, falling back to local recipes: %v", err)
		return nil
	}
	return model
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
