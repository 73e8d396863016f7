package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// InitDB opens the Postgres pool from .env settings.
func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Light admin workload: a small pool is plenty.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	return db
}

// EnsureSchema creates the thirteen logical tables when missing. Every entity
// column is text: dates are free-form strings in two tolerated formats and
// ids are authored client-side, so nothing needs a stricter type except the
// purchase quantity.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			sector_id TEXT NOT NULL DEFAULT '',
			service_id TEXT NOT NULL DEFAULT '',
			tower_id TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			responsible_id TEXT NOT NULL DEFAULT '',
			situation TEXT NOT NULL DEFAULT '',
			criticality TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			materials TEXT NOT NULL DEFAULT '[]',
			call_date TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS visits (
			id TEXT PRIMARY KEY,
			tower TEXT NOT NULL DEFAULT '',
			unit TEXT NOT NULL DEFAULT '',
			situation TEXT NOT NULL DEFAULT '',
			time TEXT NOT NULL DEFAULT '',
			collaborator TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			return_date TEXT NOT NULL DEFAULT '-'
		)`,
		`CREATE TABLE IF NOT EXISTS schedule (
			id TEXT PRIMARY KEY,
			shift TEXT NOT NULL DEFAULT '',
			monday TEXT NOT NULL DEFAULT '',
			tuesday TEXT NOT NULL DEFAULT '',
			wednesday TEXT NOT NULL DEFAULT '',
			thursday TEXT NOT NULL DEFAULT '',
			friday TEXT NOT NULL DEFAULT '',
			saturday TEXT NOT NULL DEFAULT '',
			work_start_date TEXT NOT NULL DEFAULT '',
			work_end_date TEXT NOT NULL DEFAULT '',
			work_notice_date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS monthly_schedule (
			id TEXT PRIMARY KEY,
			shift TEXT NOT NULL DEFAULT '',
			week1 TEXT NOT NULL DEFAULT '',
			week2 TEXT NOT NULL DEFAULT '',
			week3 TEXT NOT NULL DEFAULT '',
			week4 TEXT NOT NULL DEFAULT '',
			work_start_date TEXT NOT NULL DEFAULT '',
			work_end_date TEXT NOT NULL DEFAULT '',
			work_notice_date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS third_party_schedule (
			id TEXT PRIMARY KEY,
			company TEXT NOT NULL DEFAULT '',
			service TEXT NOT NULL DEFAULT '',
			frequency TEXT NOT NULL DEFAULT '',
			contact TEXT NOT NULL DEFAULT '',
			work_start_date TEXT NOT NULL DEFAULT '',
			work_end_date TEXT NOT NULL DEFAULT '',
			work_notice_date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS painting_projects (
			id TEXT PRIMARY KEY,
			tower TEXT NOT NULL DEFAULT '',
			local TEXT NOT NULL DEFAULT '',
			criticality TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date_forecast TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			paint_details TEXT NOT NULL DEFAULT '',
			quantity TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id TEXT PRIMARY KEY,
			quantity INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			local TEXT NOT NULL DEFAULT '',
			request_date TEXT NOT NULL DEFAULT '',
			approval_date TEXT NOT NULL DEFAULT '',
			entry_date TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, cat := range []string{"sectors", "services", "towers", "responsibles", "materials", "situations"} {
		stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT ''
		)`, cat))
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
