// internal/db/initdb.go
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// EnsureDatabaseExists connects to the maintenance database and creates
// the target database when missing, so a fresh checkout boots with no
// manual psql step.
func EnsureDatabaseExists(connString string) error {
	u, err := url.Parse(connString)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return errors.New("connection string has no database name")
	}

	root := *u
	root.Path = "/postgres"

	conn, err := sql.Open("postgres", root.String())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer conn.Close()

	var exists bool
	err = conn.QueryRow("SELECT 1 FROM pg_database WHERE datname = $1", dbName).Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	log.Printf("Creating database %s", dbName)
	// Database names can't be bound as parameters; quote the identifier.
	if _, err := conn.Exec(`CREATE DATABASE "` + strings.ReplaceAll(dbName, `"`, `""`) + `"`); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}
