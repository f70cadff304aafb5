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

	"card-ranker/internal/catalog"
	"card-ranker/internal/config"
	"card-ranker/internal/db"
	"card-ranker/internal/eventbus"
	"card-ranker/internal/handlers"
	"card-ranker/internal/middleware"
	"card-ranker/internal/persistence"
	"card-ranker/internal/store"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting card ranker in %s mode", cfg.Environment)

	// Load the static card catalog
	catalogCards, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded catalog with %d cards", len(catalogCards))

	// Connect to MongoDB
	mongodb, err := db.NewMongoDB(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongodb.Close(ctx)
	}()

	log.Printf("Connected to MongoDB database: %s", cfg.MongoDB.Database)

	// Initialize the card store
	cardStore := store.NewStore(catalogCards, persistence.NewMongo(mongodb))
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := cardStore.Initialize(initCtx); err != nil {
		initCancel()
		log.Fatalf("Failed to initialize card store: %v", err)
	}
	initCancel()

	// Event bus connecting store mutations to websocket subscribers
	bus := eventbus.New()

	// Rate limiter for mutating endpoints
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Create handlers
	wsHandler := handlers.NewWebSocketHandler(bus)
	cardsHandler := handlers.NewCardsHandler(cardStore, bus)
	comparisonsHandler := handlers.NewComparisonsHandler(cardStore, mongodb, bus)
	adminHandler := handlers.NewAdminHandler(cardStore, bus)

	bus.Start()
	defer bus.Stop()

	// Set up router
	router := mux.NewRouter()
	router.Use(middleware.SecurityHeaders())

	// WebSocket routes
	wsRoute := router.PathPrefix("/ws/updates").Subrouter()
	wsRoute.Use(rateLimiter.IPRateLimitMiddleware(middleware.WebSocketUpgradeLimit))
	wsRoute.HandleFunc("", wsHandler.HandleWebSocket)

	// API routes
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/cards", cardsHandler.GetAllCards).Methods("GET")
	api.HandleFunc("/cards/random", cardsHandler.GetRandomCards).Methods("GET")
	api.HandleFunc("/rankings", cardsHandler.GetRankings).Methods("GET")
	api.HandleFunc("/comparisons/recent", comparisonsHandler.GetRecentComparisons).Methods("GET")
	api.HandleFunc("/cards/{id}", cardsHandler.GetCard).Methods("GET")

	favoriteApi := api.PathPrefix("/cards/{id}/favorite").Subrouter()
	favoriteApi.Use(rateLimiter.IPRateLimitMiddleware(middleware.FavoriteLimit))
	favoriteApi.HandleFunc("", cardsHandler.ToggleFavorite).Methods("POST")

	comparisonApi := api.PathPrefix("/comparisons").Subrouter()
	comparisonApi.Use(rateLimiter.IPRateLimitMiddleware(middleware.ComparisonLimit))
	comparisonApi.HandleFunc("", comparisonsHandler.RecordComparison).Methods("POST")

	adminApi := api.PathPrefix("/admin").Subrouter()
	adminApi.Use(rateLimiter.IPRateLimitMiddleware(middleware.ResetLimit))
	adminApi.HandleFunc("/reset", adminHandler.ResetRatings).Methods("POST")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Frontend.URL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
