package geodb

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// TrackPoint is one vertex of a stored track.
type TrackPoint struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Elevation *float64 `json:"elevation,omitempty"`
	Time      string   `json:"time,omitempty"`
}

// TrackInfo summarises one stored track.
type TrackInfo struct {
	TrackID    string `json:"track_id"`
	Name       string `json:"name"`
	PointCount int    `json:"point_count"`
}

// InsertTrack stores a named track and its points, returning the track id.
// Tracks with fewer than two points are rejected; a one-point track is not a
// line.
func (db *DB) InsertTrack(name string, points []TrackPoint) (string, error) {
	if len(points) < 2 {
		return "", fmt.Errorf("track %q has %d points, need at least 2", name, len(points))
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("insert track: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	if _, err := tx.Exec(`INSERT INTO tracks (track_id, name, point_count) VALUES (?, ?, ?)`,
		id, name, len(points)); err != nil {
		return "", fmt.Errorf("insert track %q: %w", name, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO track_points (track_id, seq, x, y, elevation, time) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("insert track points: %w", err)
	}
	defer stmt.Close()

	for i, p := range points {
		var elevation interface{}
		if p.Elevation != nil {
			elevation = *p.Elevation
		}
		if _, err := stmt.Exec(id, i, p.X, p.Y, elevation, nullIfEmpty(p.Time)); err != nil {
			return "", fmt.Errorf("insert track point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListTracks returns all stored tracks, newest first.
func (db *DB) ListTracks() ([]TrackInfo, error) {
	rows, err := db.Query(`SELECT track_id, name, point_count FROM tracks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []TrackInfo
	for rows.Next() {
		var info TrackInfo
		var name sql.NullString
		if err := rows.Scan(&info.TrackID, &name, &info.PointCount); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		info.Name = name.String
		tracks = append(tracks, info)
	}
	return tracks, rows.Err()
}

// TrackPoints returns a track's points in recorded order.
func (db *DB) TrackPoints(trackID string) ([]TrackPoint, error) {
	rows, err := db.Query(`SELECT x, y, elevation, time FROM track_points WHERE track_id = ? ORDER BY seq`, trackID)
	if err != nil {
		return nil, fmt.Errorf("track points: %w", err)
	}
	defer rows.Close()

	var points []TrackPoint
	for rows.Next() {
		var p TrackPoint
		var elevation sql.NullFloat64
		var ptime sql.NullString
		if err := rows.Scan(&p.X, &p.Y, &elevation, &ptime); err != nil {
			return nil, fmt.Errorf("scan track point: %w", err)
		}
		if elevation.Valid {
			p.Elevation = &elevation.Float64
		}
		p.Time = ptime.String
		points = append(points, p)
	}
	return points, rows.Err()
}
