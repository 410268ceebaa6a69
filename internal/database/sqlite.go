package database

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/dgallego/incendios-backend-go/internal/models"
)

var (
	db   *sql.DB
	once sync.Once
)

// Config holds database configuration
type Config struct {
	Path string
}

// DefaultPath keeps the incident table in memory: it is rebuilt from the
// archive on every start and never persisted.
const DefaultPath = ":memory:"

// Open creates a connection and the incident schema. An in-memory SQLite
// database exists per connection, so the pool is pinned to one connection.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultPath
	}
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.SetMaxOpenConns(1)

	if err := createSchema(d); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Init initializes the process-wide database exactly once.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		db, err = Open(cfg.Path)
		if err != nil {
			return
		}
		log.Printf("Database initialized: %s", cfg.Path)
	})
	return err
}

// GetDB returns the database instance
func GetDB() *sql.DB {
	if db == nil {
		log.Fatal("Database not initialized. Call Init() first.")
	}
	return db
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

func createSchema(d *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS incidents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fecha TEXT NOT NULL,
			year INTEGER NOT NULL,
			idcomunidad REAL,
			nombre_comunidad TEXT NOT NULL,
			idprovincia REAL,
			nombre_provincia TEXT NOT NULL,
			causa REAL,
			causa_texto TEXT NOT NULL,
			municipio TEXT,
			superficie REAL,
			gastos REAL,
			perdidas REAL,
			lat REAL,
			lng REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_incidents_year ON incidents(year)`,
		`CREATE INDEX IF NOT EXISTS idx_incidents_region ON incidents(nombre_comunidad)`,
	}
	for _, stmt := range statements {
		if _, err := d.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// InsertIncidents bulk-loads the enriched table inside a single transaction.
// The table is written once at startup and is read-only afterwards.
func InsertIncidents(d *sql.DB, incidents []models.Incident) error {
	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("begin insert transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO incidents (
			fecha, year,
			idcomunidad, nombre_comunidad,
			idprovincia, nombre_provincia,
			causa, causa_texto,
			municipio, superficie, gastos, perdidas, lat, lng
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, inc := range incidents {
		_, err := stmt.Exec(
			inc.Date.Format("2006-01-02"), inc.Year,
			inc.RegionCode, inc.RegionName,
			inc.ProvinceCode, inc.ProvinceName,
			inc.CauseCode, inc.CauseText,
			inc.Municipality, inc.AreaHa, inc.CostEur, inc.LossEur, inc.Lat, inc.Lng,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert incident: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert transaction: %w", err)
	}
	return nil
}
