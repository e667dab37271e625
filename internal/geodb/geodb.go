// Package geodb persists survey point layers and GPS tracks in sqlite. A
// layer is the unit the CLI tools import into and export from, standing in
// for the point feature classes a GIS host would manage.
package geodb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the survey database at path and applies
// the base schema. Schema upgrades beyond the base tables go through the
// Migrate functions.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open survey db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS points (
			point_id          TEXT PRIMARY KEY,
			layer             TEXT NOT NULL,
			name              TEXT,
			x                 DOUBLE NOT NULL,
			y                 DOUBLE NOT NULL,
			elevation         DOUBLE,
			time              TEXT,
			description       TEXT,
			symbol            TEXT,
			type              TEXT,
			samples           BIGINT,
			created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_points_layer ON points(layer);
		CREATE TABLE IF NOT EXISTS tracks (
			track_id          TEXT PRIMARY KEY,
			name              TEXT,
			point_count       BIGINT,
			created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS track_points (
			track_id          TEXT NOT NULL,
			seq               BIGINT NOT NULL,
			x                 DOUBLE NOT NULL,
			y                 DOUBLE NOT NULL,
			elevation         DOUBLE,
			time              TEXT,
			PRIMARY KEY (track_id, seq),
			FOREIGN KEY (track_id) REFERENCES tracks(track_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create survey schema: %w", err)
	}

	return &DB{db}, nil
}
