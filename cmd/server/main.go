package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"fitblog/internal/config"
	"fitblog/internal/database"
	"fitblog/internal/engine"
	"fitblog/internal/handlers"
	"fitblog/internal/middleware"
	"fitblog/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewSQLiteDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if cfg.Database.Seed {
		if err := db.SeedSampleData(context.Background()); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	blogEngine := engine.NewEngine(system, db, metrics)

	sessions := middleware.NewSessionManager(cfg)

	// The engine always records latencies; the flag only controls whether
	// they are exposed on /health.
	var exposedMetrics *utils.MetricsCollector
	if cfg.Server.MetricsEnabled {
		exposedMetrics = metrics
	}
	server := handlers.NewServer(system, blogEngine, exposedMetrics, sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.HandleHealth())
	mux.HandleFunc("/health/live", server.HandleSimpleHealth())
	mux.HandleFunc("/user/register", server.HandleUserRegistration())
	mux.HandleFunc("/user/login", server.HandleUserLogin())
	mux.HandleFunc("/user/external-login", server.HandleExternalLogin())
	mux.HandleFunc("/user/profile", server.HandleUserProfile())
	mux.HandleFunc("/posts", server.HandlePosts())
	mux.HandleFunc("/post", server.HandlePost())
	mux.HandleFunc("/post/like", server.HandleLike())
	mux.HandleFunc("/comment", server.HandleComment())
	mux.HandleFunc("/comment/post", server.HandleGetPostComments())

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	handler := middleware.CORSMiddleware(corsConfig)(sessions.Attach(mux))

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
