package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/minutestack/chamber-minutes/internal/infrastructure/database"
	"github.com/minutestack/chamber-minutes/pkg/config"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	dir := flag.String("dir", "migrations", "directory holding migration files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	migrations := &migrate.FileMigrationSource{Dir: *dir}
	op := migrate.Up
	if *direction == "down" {
		op = migrate.Down
	}

	n, err := migrate.Exec(sqlDB, "postgres", migrations, op)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Printf("✅ Applied %d migration(s) (%s)", n, *direction)
}
