package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultSQLitePath is the local fallback database used when DATABASE_URL is
// not set, mirroring development deployments without Postgres.
const DefaultSQLitePath = "fotobox.db"

// New returns a connected GORM DB instance. A postgresql:// URL selects the
// Postgres driver; anything else (including empty) opens a local SQLite file.
// Error translation is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func New(databaseURL string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	var (
		gdb *gorm.DB
		err error
	)
	if strings.HasPrefix(databaseURL, "postgresql://") {
		gdb, err = gorm.Open(postgres.Open(databaseURL), cfg)
	} else {
		path := databaseURL
		if path == "" {
			path = DefaultSQLitePath
		}
		gdb, err = gorm.Open(sqlite.Open(path), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return gdb, nil
}
