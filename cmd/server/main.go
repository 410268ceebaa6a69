package main

import (
	"log"
	"time"

	"github.com/dgallego/incendios-backend-go/internal/api"
	"github.com/dgallego/incendios-backend-go/internal/config"
	"github.com/dgallego/incendios-backend-go/internal/database"
	"github.com/dgallego/incendios-backend-go/internal/dataset"
	"github.com/dgallego/incendios-backend-go/internal/metadata"
	"github.com/dgallego/incendios-backend-go/internal/observability"
)

func main() {
	cfg := config.Load()

	// Reference metadata degrades softly; the dataset does not.
	lookups := metadata.Load(cfg.MasterXLSX)

	start := time.Now()
	incidents, err := dataset.Load(cfg.DataZip, lookups)
	if err != nil {
		log.Fatal("Failed to load incident dataset: ", err)
	}
	if len(incidents) == 0 {
		log.Fatalf("Incident dataset is empty; expected %s to contain one csv member with data", cfg.DataZip)
	}

	if err := database.Init(database.Config{Path: database.DefaultPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()

	if err := database.InsertIncidents(database.GetDB(), incidents); err != nil {
		log.Fatal("Failed to load incidents into database: ", err)
	}

	metrics := observability.New()
	metrics.DatasetRows.Set(float64(len(incidents)))
	metrics.DatasetLoadSeconds.Set(time.Since(start).Seconds())
	log.Printf("Loaded %d incidents from %s in %v", len(incidents), cfg.DataZip, time.Since(start))

	router := api.SetupRouter(cfg, database.GetDB(), metrics)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
