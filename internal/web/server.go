package web

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/arname-match/internal/store"
	"github.com/arname-match/internal/symspell"
	"github.com/arname-match/internal/web/handlers"
	"github.com/arname-match/internal/web/middleware"
)

// Server is the HTTP front end over the name store
type Server struct {
	config     *Config
	db         *sql.DB
	store      *store.Store
	router     *mux.Router
	httpServer *http.Server
}

// NewServer creates a new web server
func NewServer(config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}

	db, err := sql.Open("postgres", config.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(config.Database.MaxConnections)
	db.SetMaxIdleConns(config.Database.MaxConnections / 2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	st := store.New(db)

	var corrector *symspell.Corrector
	if config.Features.CorrectionEnabled {
		corrector, err = symspell.NewCorrector(db, nil)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to build correction dictionary: %w", err)
		}
	}

	s := &Server{
		config: config,
		db:     db,
		store:  st,
		router: mux.NewRouter(),
	}
	s.setupRoutes(corrector)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes registers all endpoints
func (s *Server) setupRoutes(corrector *symspell.Corrector) {
	s.router.Use(middleware.RequestLogging())
	s.router.Use(middleware.CORS())

	api := handlers.NewAPIHandler(s.db, s.store)
	names := handlers.NewNamesHandler(s.store, corrector)

	s.router.HandleFunc("/api/health", api.Health).Methods("GET")
	s.router.HandleFunc("/api/stats", api.GetStats).Methods("GET")

	s.router.HandleFunc("/api/encode", names.EncodeName).Methods("GET")
	s.router.HandleFunc("/api/names", names.AddName).Methods("POST")
	s.router.HandleFunc("/api/names/candidates", names.GetCandidates).Methods("GET")
}

// Start runs the server until an interrupt, then shuts down gracefully
func (s *Server) Start() error {
	errChan := make(chan error, 1)
	go func() {
		log.Printf("Web server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		s.db.Close()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Printf("Received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
