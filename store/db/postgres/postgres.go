package postgres

import (
	"context"
	"database/sql"
	"fmt"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/brandlens/brandlens/internal/profile"
	"github.com/brandlens/brandlens/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL database for the given profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

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

// Migrate applies the schema. The embedding column dimension follows the
// configured embedding model, so switching models needs a fresh table.
func (d *DB) Migrate(ctx context.Context) error {
	dims := d.profile.AIEmbeddingDimensions
	if dims <= 0 {
		dims = 1024
	}

	schema := fmt.Sprintf(`
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS comment (
	id SERIAL PRIMARY KEY,
	uid TEXT NOT NULL UNIQUE,
	brand_id INTEGER NOT NULL,
	text TEXT NOT NULL,
	sentiment TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comment_brand_id ON comment (brand_id);

CREATE TABLE IF NOT EXISTS keyword (
	id SERIAL PRIMARY KEY,
	brand_id INTEGER NOT NULL,
	phrase TEXT NOT NULL,
	created_ts BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_keyword_brand_id ON keyword (brand_id);

CREATE TABLE IF NOT EXISTS theme_node (
	id SERIAL PRIMARY KEY,
	brand_id INTEGER NOT NULL,
	keyword TEXT NOT NULL,
	weight INTEGER NOT NULL,
	sentiment TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_theme_node_brand_id ON theme_node (brand_id);

CREATE TABLE IF NOT EXISTS theme_link (
	id SERIAL PRIMARY KEY,
	brand_id INTEGER NOT NULL,
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	value DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_theme_link_brand_id ON theme_link (brand_id);

CREATE TABLE IF NOT EXISTS keyword_embedding (
	id SERIAL PRIMARY KEY,
	text_hash TEXT NOT NULL,
	model TEXT NOT NULL,
	embedding vector(%d) NOT NULL,
	created_ts BIGINT NOT NULL,
	UNIQUE(text_hash, model)
);
`, dims)

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
