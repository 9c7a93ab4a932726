package cmd

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/face-index/internal/config"
	"github.com/kozaktomas/face-index/internal/database"
	"github.com/kozaktomas/face-index/internal/database/mariadb"
	"github.com/kozaktomas/face-index/internal/database/postgres"
)

// openStore connects the configured persistence backend: PostgreSQL
// when DATABASE_URL is set, the MariaDB fallback otherwise. The
// returned closer releases the connection pool.
func openStore(cfg *config.Config) (database.FaceStore, func(), error) {
	if cfg.Database.URL != "" {
		fmt.Printf("Connecting to PostgreSQL database...\n")
		if err := postgres.Initialize(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		pool := postgres.GetGlobalPool()
		repo := postgres.NewFaceRepository(pool)
		return repo, func() { _ = pool.Close() }, nil
	}

	if cfg.Database.MariaDBDSN != "" {
		fmt.Printf("Connecting to MariaDB database...\n")
		store, err := mariadb.NewStore(cfg.Database.MariaDBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize MariaDB: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}

	return nil, nil, errors.New("DATABASE_URL or MARIADB_DSN environment variable is required")
}
