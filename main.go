package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/mumbai-atvm/atvm/config"
	"github.com/mumbai-atvm/atvm/fare"
	"github.com/mumbai-atvm/atvm/handlers"
	"github.com/mumbai-atvm/atvm/middleware"
	"github.com/mumbai-atvm/atvm/network"
)

func main() {
	// Load base .env first, then .env.local (which overrides for local development)
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	loaded, err := loadNetwork(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load network: %v", err)
	}
	defer loaded.close()

	net, table, err := loaded.dataset.Build()
	if err != nil {
		log.Fatalf("Invalid network: %v", err)
	}
	log.Printf("Network ready: %d lines, %d stations, %d fare stages",
		len(net.LineIDs()), net.StationCount(), len(table.Stages()))

	engine := fare.NewCachedEngine(fare.NewEngine(net, table), cfg.FareCacheSize)
	r := newRouter(cfg, net, engine, loaded.store)

	log.Printf("Fare API starting on :%s", cfg.Port)
	log.Println("Network endpoints:")
	log.Println("  GET  /api/lines")
	log.Println("  GET  /api/lines/{lineID}/stations?q=")
	log.Println("Fare endpoints:")
	log.Println("  POST /api/fares")
	log.Println("  POST /api/tickets")
	log.Println("Health:")
	log.Printf("  GET  /health (source: %s)", cfg.Source())

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// newRouter wires handlers and middleware. store may be nil.
func newRouter(cfg *config.Config, net *network.Network, calc handlers.FareCalculator, store handlers.Pinger) *chi.Mux {
	stationHandler := handlers.NewStationHandler(net, cfg.StationCacheTTL)
	fareHandler := handlers.NewFareHandler(calc)
	ticketHandler := handlers.NewTicketHandler(calc)
	healthHandler := handlers.NewHealthHandler(string(cfg.Source()), net, store)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(middleware.Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.GetHealth)
	r.Get("/healthz", healthHandler.GetLiveness)

	r.Get("/api/lines", stationHandler.GetLines)
	r.Get("/api/lines/{lineID}/stations", stationHandler.GetStations)
	r.Post("/api/fares", fareHandler.ComputeFare)
	r.Post("/api/tickets", ticketHandler.IssueTicket)

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
