package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matsen/ppaat/internal/engine"
	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/stats"
	"github.com/matsen/ppaat/internal/view"
)

// ErrNoBuild is returned when the cache has never been rebuilt.
var ErrNoBuild = errors.New("snapshot cache is empty; run ppaat rebuild")

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Build describes one rebuild of the cache.
type Build struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Views     int       `json:"views"`
	Nodes     int       `json:"nodes"`
}

// NodeRow is one node of one cached view.
type NodeRow struct {
	View       string              `json:"view"`
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Species    network.Species     `json:"species"`
	Status     network.MatchStatus `json:"status"`
	Group      network.GroupID     `json:"group,omitempty"`
	Visible    bool                `json:"visible"`
	Positioned bool                `json:"positioned"`
	X          float64             `json:"x"`
	Y          float64             `json:"y"`
}

// NodeFilter narrows QueryNodes. Zero fields match everything.
type NodeFilter struct {
	View        string
	Group       network.GroupID
	Status      *network.MatchStatus
	Species     network.Species
	VisibleOnly bool
	Name        string // substring, case-insensitive
}

const selectNodeFields = `view, id, name, species, status, grp, visible, positioned, x, y`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS builds (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			views INTEGER NOT NULL,
			nodes INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS nodes (
			view TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			species INTEGER NOT NULL,
			status TEXT NOT NULL,
			grp TEXT,
			visible INTEGER NOT NULL,
			positioned INTEGER NOT NULL,
			x REAL,
			y REAL,
			PRIMARY KEY (view, id)
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_group ON nodes(view, grp);

		CREATE TABLE IF NOT EXISTS stats (
			view TEXT PRIMARY KEY,
			summary_json TEXT NOT NULL,
			missing_json TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a snapshots
// JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (*Build, error) {
	snaps, err := ReadSnapshots(jsonlPath)
	if err != nil {
		return nil, fmt.Errorf("reading JSONL: %w", err)
	}
	return d.RebuildFromSnapshots(jsonlPath, snaps)
}

// RebuildFromSnapshots clears the database and stores snaps as one build.
func (d *DB) RebuildFromSnapshots(source string, snaps []engine.Snapshot) (*Build, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"builds", "nodes", "stats"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return nil, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	nodeStmt, err := tx.Prepare(`
		INSERT INTO nodes (` + selectNodeFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing nodes insert: %w", err)
	}
	defer nodeStmt.Close()

	statsStmt, err := tx.Prepare(`INSERT INTO stats (view, summary_json, missing_json) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing stats insert: %w", err)
	}
	defer statsStmt.Close()

	b := &Build{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Views:     len(snaps),
	}
	for _, s := range snaps {
		for _, n := range s.Nodes {
			_, err := nodeStmt.Exec(
				s.View, n.ID, n.Name, int(n.Species), n.Status.String(), string(n.Group),
				n.Visible, n.Positioned, n.Position.X, n.Position.Y,
			)
			if err != nil {
				return nil, fmt.Errorf("inserting node %s/%s: %w", s.View, n.ID, err)
			}
			b.Nodes++
		}

		summary, err := json.Marshal(s.Stats)
		if err != nil {
			return nil, fmt.Errorf("marshaling stats for %s: %w", s.View, err)
		}
		missing, err := json.Marshal(s.Missing)
		if err != nil {
			return nil, fmt.Errorf("marshaling missing report for %s: %w", s.View, err)
		}
		if _, err := statsStmt.Exec(s.View, string(summary), string(missing)); err != nil {
			return nil, fmt.Errorf("inserting stats for %s: %w", s.View, err)
		}
	}

	_, err = tx.Exec(`INSERT INTO builds (id, source, created_at, views, nodes) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Source, b.CreatedAt.Unix(), b.Views, b.Nodes)
	if err != nil {
		return nil, fmt.Errorf("inserting build: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing rebuild: %w", err)
	}
	return b, nil
}

// LatestBuild returns the build currently held by the cache.
func (d *DB) LatestBuild() (*Build, error) {
	var b Build
	var created int64
	err := d.db.QueryRow(`SELECT id, source, created_at, views, nodes FROM builds ORDER BY created_at DESC LIMIT 1`).
		Scan(&b.ID, &b.Source, &created, &b.Views, &b.Nodes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoBuild
	}
	if err != nil {
		return nil, fmt.Errorf("reading build: %w", err)
	}
	b.CreatedAt = time.Unix(created, 0).UTC()
	return &b, nil
}

// QueryNodes returns the cached nodes matching f, ordered by view then id.
func (d *DB) QueryNodes(f NodeFilter) ([]NodeRow, error) {
	query := `SELECT ` + selectNodeFields + ` FROM nodes WHERE 1=1`
	var args []interface{}

	if f.View != "" {
		if _, err := view.ParseKey(f.View); err != nil {
			return nil, err
		}
		query += " AND view = ?"
		args = append(args, f.View)
	}
	if f.Group != network.GroupNone {
		query += " AND grp = ?"
		args = append(args, string(f.Group))
	}
	if f.Status != nil {
		query += " AND status = ?"
		args = append(args, f.Status.String())
	}
	if f.Species.Valid() {
		query += " AND species = ?"
		args = append(args, int(f.Species))
	}
	if f.VisibleOnly {
		query += " AND visible = 1"
	}
	if f.Name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+f.Name+"%")
	}
	query += " ORDER BY view, id"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var out []NodeRow
	for rows.Next() {
		var (
			r       NodeRow
			species int
			status  string
			grp     sql.NullString
		)
		if err := rows.Scan(&r.View, &r.ID, &r.Name, &species, &status, &grp, &r.Visible, &r.Positioned, &r.X, &r.Y); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		r.Species = network.Species(species)
		r.Group = network.GroupID(grp.String)
		if r.Status, err = network.ParseMatchStatus(status); err != nil {
			return nil, fmt.Errorf("node %s/%s: %w", r.View, r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetStats returns the cached summary and missing-interolog report of a view.
func (d *DB) GetStats(key string) (stats.Summary, [2]stats.MissingReport, error) {
	var (
		sum              stats.Summary
		missing          [2]stats.MissingReport
		sumJSON, missJSON string
	)
	err := d.db.QueryRow(`SELECT summary_json, missing_json FROM stats WHERE view = ?`, key).Scan(&sumJSON, &missJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return sum, missing, fmt.Errorf("no cached stats for view %q", key)
	}
	if err != nil {
		return sum, missing, fmt.Errorf("reading stats: %w", err)
	}
	if err := json.Unmarshal([]byte(sumJSON), &sum); err != nil {
		return sum, missing, fmt.Errorf("parsing stats for %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(missJSON), &missing); err != nil {
		return sum, missing, fmt.Errorf("parsing missing report for %s: %w", key, err)
	}
	return sum, missing, nil
}
