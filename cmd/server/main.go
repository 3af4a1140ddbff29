package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"assetmerge/internal/config"
	"assetmerge/internal/handler"
	"assetmerge/internal/hub"
	"assetmerge/internal/repository/sqlite"
	"assetmerge/internal/scanner"
	"assetmerge/internal/service"
	"assetmerge/internal/watcher"
)

func main() {
	configPath := flag.String("config", "", "config file path (overrides search)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting assetmerge server...")

	var (
		cfg  *config.Config
		from string
		err  error
	)
	if *configPath != "" {
		cfg, from, err = config.LoadFromPath(*configPath)
	} else {
		cfg, from, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if from != "" {
		log.Printf("Config loaded from %s", from)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	// Initialize SQLite source store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	// Initialize event bus
	eventBus := service.NewEventBus()

	// Initialize SSE hub
	sseHub := hub.New()
	go sseHub.Run()

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(event)
		}
	}()

	// Initialize services
	inventorySvc := service.NewInventoryService(store, eventBus, cfg.Import.MaxSources)
	subnetScanner := scanner.New(inventorySvc, eventBus, scanner.Config{
		Ports:             cfg.Scan.Ports,
		Timeout:           cfg.Scan.Timeout.Duration(),
		SkipHostDiscovery: cfg.Scan.SkipHostDiscovery,
	})

	// Initialize HTTP handlers
	inventoryHandler := handler.NewInventoryHandler(inventorySvc, cfg.Import.PageSize)
	inventoryHandler.SetSubnetScanner(subnetScanner)

	// Setup routes
	mux := http.NewServeMux()

	// Source endpoints
	mux.HandleFunc("POST /api/sources", inventoryHandler.UploadSource)
	mux.HandleFunc("GET /api/sources", inventoryHandler.ListSources)
	mux.HandleFunc("GET /api/sources/{id}", inventoryHandler.GetSource)
	mux.HandleFunc("DELETE /api/sources/{id}", inventoryHandler.DeleteSource)
	mux.HandleFunc("PUT /api/sources/{id}/label", inventoryHandler.RelabelSource)

	// Asset endpoints
	mux.HandleFunc("GET /api/assets", inventoryHandler.ListAssets)
	mux.HandleFunc("GET /api/export/csv", inventoryHandler.ExportCSV)

	// Scan endpoint
	mux.HandleFunc("POST /api/scan", inventoryHandler.TriggerScan)

	// SSE events endpoint
	mux.Handle("GET /events", sseHub)

	// Apply middleware
	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	// Create server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start drop-directory watcher
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Import.WatchDir != "" {
		dropWatcher := watcher.New(cfg.Import.WatchDir, func(ctx context.Context, path string) {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("Failed to read dropped file %s: %v", path, err)
				return
			}
			if _, err := inventorySvc.ImportFile(ctx, filepath.Base(path), "", data); err != nil {
				log.Printf("Failed to import dropped file %s: %v", path, err)
			}
		})
		go func() {
			if err := dropWatcher.Watch(watchCtx); err != nil && err != context.Canceled {
				log.Printf("Watcher stopped: %v", err)
			}
		}()
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	watchCancel()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
