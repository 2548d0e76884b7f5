package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/opendoorexp/wildex-frontend/internal/config"
	"github.com/opendoorexp/wildex-frontend/internal/database"
)

func main() {
	var dbURLFlag string
	var olderThanHours int
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.IntVar(&olderThanHours, "older-than-hours", 30*24, "Delete anonymous sessions idle for longer than this")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	// Connect without loading the full app config
	db, err := database.NewConnection(config.DatabaseConfig{URL: dbURL})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewSessionRepository(db)

	olderThan := time.Duration(olderThanHours) * time.Hour
	fmt.Printf("Connected to database. Deleting anonymous sessions idle for more than %s...\n", olderThan)

	removed, err := repo.CleanupStaleSessions(olderThan)
	if err != nil {
		log.Fatalf("failed to clean up sessions: %v", err)
	}

	fmt.Printf("Removed %d stale sessions.\n", removed)
}
