package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tinydb/api"
	"tinydb/auth"
	"tinydb/config"
	"tinydb/monitoring"
	"tinydb/storage"

	"github.com/gorilla/mux"
)

func main() {
	configFile := flag.String("config", "config.json", "Path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Error loading config from %s: %v", *configFile, err)
	}

	monitoring.SetupLogger(cfg.LogLevel)

	// Init base storage
	baseStore, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("Error creating storage: %v", err)
	}
	defer baseStore.Close()

	store := baseStore
	if cfg.CacheEnabled {
		store = storage.NewCachedStorage(baseStore)
		log.Printf("Dataset cache enabled")
	}

	// Init metrics
	metrics := monitoring.NewMetrics()

	// One handle is shared by every request goroutine: instrument it,
	// then serialize access at the boundary. The backends carry no
	// internal locking.
	store = storage.NewLockedStorage(monitoring.NewInstrumentedStorage(store, metrics))

	// Init authentication
	var authService *auth.AuthService
	if cfg.Auth.Enabled {
		authService, err = auth.NewAuthService(&cfg.Auth)
		if err != nil {
			log.Fatalf("Error creating auth service: %v", err)
		}
		log.Printf("Authentication enabled")
	} else {
		log.Printf("Authentication disabled")
	}

	healthChecker := monitoring.NewHealthChecker(store)

	handlers := api.NewHandlers(store, authService, cfg.Auth.DefaultRoles)

	router := newRouter(cfg, handlers, authService, metrics, healthChecker)

	// Run background tasks for metrics
	go startBackgroundTasks(store, metrics)

	// Launch the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %d (backend: %s)", cfg.HTTPPort, cfg.Backend)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newStorage selects the backend from config
func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Backend {
	case "json":
		if cfg.DataFile == "" {
			return nil, fmt.Errorf("json backend requires data_file")
		}
		return storage.NewJSONStorage(cfg.DataFile, cfg.CreateDirs, storage.AccessMode(cfg.AccessMode))
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func newRouter(cfg *config.Config, handlers *api.Handlers, authService *auth.AuthService, metrics *monitoring.Metrics, healthChecker *monitoring.HealthChecker) *mux.Router {
	router := mux.NewRouter()

	// Metrics endpoint
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Health endpoints
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")
	router.HandleFunc("/health/details", healthChecker.Handler).Methods("GET")

	// Auth endpoints
	if cfg.Auth.Enabled {
		router.HandleFunc("/auth/token", handlers.TokenHandler).Methods("POST")
	}

	// Dataset endpoints; reads and writes share the prefix but demand
	// different roles
	data := router.PathPrefix("/dataset").Subrouter()
	if cfg.Auth.Enabled && authService != nil {
		data.Use(auth.AuthMiddleware(authService))
	} else {
		data.Use(auth.PublicMiddleware)
	}

	protect := func(role auth.Role, h http.HandlerFunc) http.Handler {
		if cfg.Auth.Enabled && authService != nil {
			return auth.RBACMiddleware(role)(h)
		}
		return h
	}

	data.Handle("", protect(auth.RoleRead, handlers.GetDatasetHandler)).Methods("GET")
	data.Handle("/{key}", protect(auth.RoleRead, handlers.GetKeyHandler)).Methods("GET")
	data.Handle("/{key}/{subkey}", protect(auth.RoleRead, handlers.GetSubkeyHandler)).Methods("GET")
	data.Handle("", protect(auth.RoleWrite, handlers.PutDatasetHandler)).Methods("PUT")
	data.Handle("", protect(auth.RoleWrite, handlers.ClearDatasetHandler)).Methods("DELETE")

	// Middleware chain
	router.Use(monitoring.LoggerMiddleware)
	router.Use(createMetricsMiddleware(metrics))

	return router
}

// startBackgroundTasks refreshes storage metrics periodically
func startBackgroundTasks(store storage.Storage, metrics *monitoring.Metrics) {
	metricsTicker := time.NewTicker(30 * time.Second)
	defer metricsTicker.Stop()

	for range metricsTicker.C {
		metrics.UpdateStorageMetrics(store)
	}
}

func createMetricsMiddleware(metrics *monitoring.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &monitoring.ResponseWriter{ResponseWriter: w, StatusCode: 200}
			next.ServeHTTP(rw, r)
			duration := time.Since(start)
			metrics.ObserveRequest(r.Method, r.URL.Path, rw.StatusCode, duration)

			if rw.StatusCode >= http.StatusInternalServerError {
				metrics.ObserveError(r.Method, r.URL.Path, "server_error")
			} else if rw.StatusCode >= http.StatusBadRequest {
				metrics.ObserveError(r.Method, r.URL.Path, "client_error")
			}
		})
	}
}
