package config

import (
	"os"
	"time"
)

// Config holds the application settings, populated from environment
// variables with defaults that match the original file layout.
type Config struct {
	Port       string
	DataZip    string        // compressed incident dataset
	MasterXLSX string        // reference metadata workbook
	JWTSecret  string        // empty disables API auth
	RateLimit  int           // requests per window per IP
	RateWindow time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dataZip := os.Getenv("DATA_ZIP")
	if dataZip == "" {
		dataZip = "./data/fires-all.csv.zip"
	}

	masterXLSX := os.Getenv("MASTER_XLSX")
	if masterXLSX == "" {
		masterXLSX = "./data/master_data.xlsx"
	}

	return &Config{
		Port:       port,
		DataZip:    dataZip,
		MasterXLSX: masterXLSX,
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RateLimit:  120,
		RateWindow: time.Minute,
	}
}
