package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gradebook/internal/config"
	"gradebook/internal/database"
	"gradebook/internal/gradebook"
	"gradebook/internal/handler"
	"gradebook/internal/report"
	"gradebook/internal/service"

	"github.com/gorilla/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize database
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	// Initialize the gradebook
	store := gradebook.NewStore()
	if cfg.SeedSampleData {
		if err := gradebook.Seed(store); err != nil {
			log.Fatal("Failed to seed sample data: ", err)
		}
	}

	// Initialize services
	userService := service.NewUserService(db)
	importService := service.NewImportService(store)

	// Initialize handlers
	importHandler := handler.NewImportHandler(importService, cfg.UploadDir, cfg.MaxUploadBytes)
	r := handler.NewRouter(handler.Handlers{
		Users:     handler.NewUserHandler(userService),
		Gradebook: handler.NewGradebookHandler(store),
		Report:    handler.NewReportHandler(store, report.NewSimulated(cfg.ReportDelay)),
		Import:    importHandler,
		Progress:  handler.NewProgressHandler(importService),
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.LoggingHandler(os.Stdout, cors(r)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("Server running on port " + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Error during shutdown:", err)
	}
	importHandler.Wait()
}
