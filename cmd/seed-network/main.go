package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/mumbai-atvm/atvm/dataset"
	"github.com/mumbai-atvm/atvm/repository"
)

func main() {
	_ = godotenv.Load(".env")

	file := flag.String("file", "", "YAML network file (defaults to the embedded Mumbai network)")
	dbPath := flag.String("db", "data/network.db", "Path to SQLite database")
	databaseURL := flag.String("database-url", "", "PostgreSQL URL; when set, seeds Postgres instead of SQLite")
	flag.Parse()

	ds := dataset.Default()
	if *file != "" {
		var err error
		ds, err = dataset.LoadFile(*file)
		if err != nil {
			log.Fatalf("Failed to load network file: %v", err)
		}
	}

	// Reject catalogs the API would refuse to start with
	net, table, err := ds.Build()
	if err != nil {
		log.Fatalf("Invalid network: %v", err)
	}

	ctx := context.Background()
	var store repository.Store
	if *databaseURL != "" {
		pg, err := repository.OpenPostgres(ctx, *databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer pg.Close()
		store = pg
		log.Println("Connected to PostgreSQL")
	} else {
		sqlite, err := repository.OpenSQLite(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer sqlite.Close()
		store = sqlite
	}

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	if err := store.SaveDataset(ctx, ds); err != nil {
		log.Fatalf("Failed to save network: %v", err)
	}

	log.Printf("SUCCESS: seeded %d lines, %d stations, %d hubs, %d fare stages",
		len(net.LineIDs()), net.StationCount(), len(net.Hubs()), len(table.Stages()))
}
