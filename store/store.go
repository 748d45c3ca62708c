package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

//go:embed migrations.sql
var migrationSQL string

// PostgresStore is a Store backed by a single Postgres table.
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore opens dsn, checks the connection and creates the
// kv_store table when it is missing.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PostgresStore{DB: db}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate runs the embedded schema. It is safe to call more than once.
func (s *PostgresStore) Migrate() error {
	if _, err := s.DB.Exec(migrationSQL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

func (s *PostgresStore) Get(key string) ([]byte, bool, error) {
	var data []byte
	err := s.DB.QueryRow(`SELECT data FROM kv_store WHERE name=$1`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *PostgresStore) Set(key string, data []byte) error {
	_, err := s.DB.Exec(`
		INSERT INTO kv_store (name, data) VALUES ($1, $2)
		ON CONFLICT (name)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, key, data)
	return err
}

func (s *PostgresStore) Delete(key string) error {
	_, err := s.DB.Exec(`DELETE FROM kv_store WHERE name=$1`, key)
	return err
}
