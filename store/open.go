package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Supported values for Options.Driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

// Options selects and configures a Store backend.
type Options struct {
	Driver        string
	Path          string // file: directory, sqlite: directory holding store.db
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// Open builds the backend named by o.Driver.
func Open(o Options) (Store, error) {
	switch o.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile, "":
		return NewFileStore(o.Path)
	case DriverPostgres:
		return NewPostgresStore(o.DSN)
	case DriverRedis:
		return DialRedis(o.RedisAddr, o.RedisPassword, o.RedisDB, o.KeyPrefix)
	case DriverSQLite:
		if err := os.MkdirAll(o.Path, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return OpenSQLite(filepath.Join(o.Path, "store.db"))
	default:
		return nil, fmt.Errorf("unknown store driver %q", o.Driver)
	}
}
