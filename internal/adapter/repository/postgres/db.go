package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Pool limits sized for the expected handful of concurrent transfer
// scopes; each scope holds a connection from Begin to Commit/Rollback.
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

// Config describes how to reach the ledger database. When ConnStr is
// set it is used verbatim; otherwise the connection string is built
// from the individual fields.
type Config struct {
	ConnStr  string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c Config) connString() string {
	if c.ConnStr != "" {
		return c.ConnStr
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB opens the ledger database, applies the pool limits and
// verifies the connection.
func NewDB(cfg Config) (*DB, error) {
	db, err := sql.Open("postgres", cfg.connString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
