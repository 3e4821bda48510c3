package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	// Import the SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/brandlens/brandlens/internal/profile"
	"github.com/brandlens/brandlens/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a SQLite database for the given profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// WAL keeps readers unblocked during a pipeline run's writes.
	db, err := sql.Open("sqlite", profile.DSN+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{
		db:      db,
		profile: profile,
	}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS comment (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	brand_id INTEGER NOT NULL,
	text TEXT NOT NULL,
	sentiment TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comment_brand_id ON comment (brand_id);

CREATE TABLE IF NOT EXISTS keyword (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	brand_id INTEGER NOT NULL,
	phrase TEXT NOT NULL,
	created_ts BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_keyword_brand_id ON keyword (brand_id);

CREATE TABLE IF NOT EXISTS theme_node (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	brand_id INTEGER NOT NULL,
	keyword TEXT NOT NULL,
	weight INTEGER NOT NULL,
	sentiment TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_theme_node_brand_id ON theme_node (brand_id);

CREATE TABLE IF NOT EXISTS theme_link (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	brand_id INTEGER NOT NULL,
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	value REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_theme_link_brand_id ON theme_link (brand_id);

CREATE TABLE IF NOT EXISTS keyword_embedding (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text_hash TEXT NOT NULL,
	model TEXT NOT NULL,
	embedding TEXT NOT NULL,
	created_ts BIGINT NOT NULL,
	UNIQUE(text_hash, model)
);
`

// Migrate applies the schema.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
