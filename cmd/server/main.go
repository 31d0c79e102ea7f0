package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"vigil/monitoring/internal/analysis"
	"vigil/monitoring/internal/authz"
	"vigil/monitoring/internal/blob"
	"vigil/monitoring/internal/clients"
	"vigil/monitoring/internal/config"
	"vigil/monitoring/internal/db"
	internalhttp "vigil/monitoring/internal/http"
	"vigil/monitoring/internal/jobs"
	"vigil/monitoring/internal/realtime"
	"vigil/monitoring/internal/sessions"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}
	defer pool.Close()
	store := db.NewStore(pool)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("redis ping failed: %v", err)
	}
	cancel()
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}()
	publisher := realtime.NewRedisPublisher(redisClient)

	blobs, err := blob.NewFileStore(cfg.CaptureDir)
	if err != nil {
		log.Fatalf("capture store init failed: %v", err)
	}

	prompt, err := analysis.LoadPrompt(cfg.PromptFile)
	if err != nil {
		log.Fatalf("prompt load failed: %v", err)
	}
	vision := analysis.NewHTTPVisionClient(cfg.VisionBaseURL, cfg.VisionAPIKey, cfg.VisionTimeout)
	pipeline := analysis.NewPipeline(analysis.NewPgStore(store), blobs, vision, publisher, prompt, cfg.VisionTimeout)

	directory := clients.NewDirectoryClient(cfg.DirectoryBaseURL, cfg.DirectoryToken, 5*time.Second)
	gate := authz.NewGate(directory, authz.NewStoreSink(store))

	recompiler := sessions.NewRecompiler(store, cfg.SessionWindowSize, cfg.RecompileWorkers)

	server := internalhttp.NewServer(cfg, store, blobs, pipeline, gate, directory, publisher, recompiler)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	jobs.StartRequestTimeoutJob(ctx, cfg, store, publisher)

	go func() {
		log.Printf("monitoring http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
