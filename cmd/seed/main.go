package main

import (
	"log"

	"kntista_backend/internals/configs"
	database "kntista_backend/internals/databases"
	"kntista_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB(configs.App.DatabaseDSN)
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("[ERROR] migrate: %v", err)
	}

	if err := seeds.RunAllSeeds(database.DB, configs.App.SeedForce); err != nil {
		log.Fatalf("[ERROR] seed: %v", err)
	}
	log.Println("[SEED] done")

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
