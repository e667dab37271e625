package geodb

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Point is one stored survey point. X/Y are in whatever frame the layer was
// imported in; the store does not track which, that is the surveyor's
// bookkeeping (and the reason parameter files carry their own record).
type Point struct {
	PointID     string   `json:"point_id"`
	Layer       string   `json:"layer"`
	Name        string   `json:"name"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Elevation   *float64 `json:"elevation,omitempty"`
	Time        string   `json:"time,omitempty"`
	Description string   `json:"description,omitempty"`
	Symbol      string   `json:"symbol,omitempty"`
	Type        string   `json:"type,omitempty"`
	Samples     *int64   `json:"samples,omitempty"`
}

// LayerInfo summarises one layer.
type LayerInfo struct {
	Layer  string `json:"layer"`
	Points int    `json:"points"`
}

// InsertPoints stores points into a layer in one transaction. Points without
// an id are assigned one.
func (db *DB) InsertPoints(layer string, points []Point) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("insert points: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO points (point_id, layer, name, x, y, elevation, time, description, symbol, type, samples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("insert points: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		id := p.PointID
		if id == "" {
			id = uuid.New().String()
		}
		var elevation, samples interface{}
		if p.Elevation != nil {
			elevation = *p.Elevation
		}
		if p.Samples != nil {
			samples = *p.Samples
		}
		if _, err := stmt.Exec(id, layer, p.Name, p.X, p.Y, elevation,
			nullIfEmpty(p.Time), nullIfEmpty(p.Description), nullIfEmpty(p.Symbol), nullIfEmpty(p.Type), samples); err != nil {
			return fmt.Errorf("insert point %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

// ListPoints returns the points of a layer ordered by name.
func (db *DB) ListPoints(layer string) ([]Point, error) {
	rows, err := db.Query(`
		SELECT point_id, layer, name, x, y, elevation, time, description, symbol, type, samples
		FROM points
		WHERE layer = ?
		ORDER BY name`, layer)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Layers returns every layer with its point count.
func (db *DB) Layers() ([]LayerInfo, error) {
	rows, err := db.Query(`SELECT layer, COUNT(*) FROM points GROUP BY layer ORDER BY layer`)
	if err != nil {
		return nil, fmt.Errorf("list layers: %w", err)
	}
	defer rows.Close()

	var layers []LayerInfo
	for rows.Next() {
		var info LayerInfo
		if err := rows.Scan(&info.Layer, &info.Points); err != nil {
			return nil, fmt.Errorf("scan layer: %w", err)
		}
		layers = append(layers, info)
	}
	return layers, rows.Err()
}

// DeleteLayer removes a layer and returns how many points went with it.
func (db *DB) DeleteLayer(layer string) (int64, error) {
	res, err := db.Exec(`DELETE FROM points WHERE layer = ?`, layer)
	if err != nil {
		return 0, fmt.Errorf("delete layer: %w", err)
	}
	return res.RowsAffected()
}

func scanPoint(rows *sql.Rows) (Point, error) {
	var p Point
	var elevation sql.NullFloat64
	var samples sql.NullInt64
	var ptime, desc, symbol, ptype sql.NullString
	if err := rows.Scan(&p.PointID, &p.Layer, &p.Name, &p.X, &p.Y,
		&elevation, &ptime, &desc, &symbol, &ptype, &samples); err != nil {
		return Point{}, fmt.Errorf("scan point: %w", err)
	}
	if elevation.Valid {
		p.Elevation = &elevation.Float64
	}
	if samples.Valid {
		p.Samples = &samples.Int64
	}
	p.Time = ptime.String
	p.Description = desc.String
	p.Symbol = symbol.String
	p.Type = ptype.String
	return p, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
