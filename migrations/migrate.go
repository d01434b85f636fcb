package main

import (
	"context"
	"flag"
	"log"
	"os"
	"painel/src/config"
	"painel/src/database"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dir := flag.String("dir", "./migrations", "directory with the SQL migrations")
	command := flag.String("command", "up", "goose command: up, down, status")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("Error loading config for environment: %v", err)
	}

	dsn, err := database.ResolveDSN(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Error resolving database connection string: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Run(*command, sqlDB, *dir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Migration command %q completed successfully", *command)
}
