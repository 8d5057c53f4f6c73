package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jarecamang/ParkingPassport/internal/api"
	"github.com/Jarecamang/ParkingPassport/internal/config"
	"github.com/Jarecamang/ParkingPassport/internal/repository/postgres"
	"github.com/Jarecamang/ParkingPassport/internal/service"
	"github.com/Jarecamang/ParkingPassport/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// First boot seeds the default admin credential
	if err := postgres.SeedAdminCredential(db); err != nil {
		log.Fatalf("failed to seed admin credential: %v", err)
	}
	if err := postgres.SeedSampleVehicles(db); err != nil {
		log.Fatalf("failed to seed sample vehicles: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Prune expired sessions hourly; validation also reaps lazily, this
	// keeps the table from accumulating abandoned rows.
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-reaperCtx.Done():
				return
			case <-ticker.C:
				if err := repos.Session.DeleteExpired(reaperCtx); err != nil {
					log.Printf("failed to prune expired sessions: %v", err)
				}
			}
		}
	}()

	// Initialize live search feed
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, cfg, hub)

	// Initialize router
	router := api.NewRouter(services, hub, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	hub.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
