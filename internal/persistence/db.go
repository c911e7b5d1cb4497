// Package persistence provides SQLite-based state storage: the agent
// snapshot, the discovered world, user profiles, and the narration log.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// DB wraps a SQLite connection for simulation state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS agent (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		snapshot_json TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locations (
		coord TEXT PRIMARY KEY,
		location_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS objects (
		id TEXT PRIMARY KEY,
		object_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		beat INTEGER NOT NULL,
		at TEXT NOT NULL,
		kind TEXT NOT NULL,
		text TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_beat ON events(beat);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveAgent writes the single agent snapshot as one JSON row.
func (db *DB) SaveAgent(a *agent.Agent) error {
	snapshot, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal agent: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO agent (id, snapshot_json, saved_at) VALUES (1, ?, ?)",
		string(snapshot), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadAgent restores the agent snapshot. Returns sql.ErrNoRows when no
// save exists.
func (db *DB) LoadAgent() (*agent.Agent, error) {
	var snapshot string
	if err := db.conn.Get(&snapshot, "SELECT snapshot_json FROM agent WHERE id = 1"); err != nil {
		return nil, err
	}
	var a agent.Agent
	if err := json.Unmarshal([]byte(snapshot), &a); err != nil {
		return nil, fmt.Errorf("unmarshal agent: %w", err)
	}
	if a.Users == nil {
		a.Users = make(map[string]*agent.UserProfile)
	}
	return &a, nil
}

// SaveWorld writes the full discovered map and object registry in one
// transaction (full replace).
func (db *DB) SaveWorld(w *world.World) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM locations"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM objects"); err != nil {
		return err
	}

	stmt, err := tx.Preparex("INSERT INTO locations (coord, location_json) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for c, loc := range w.Grid {
		locJSON, err := json.Marshal(loc)
		if err != nil {
			return fmt.Errorf("marshal location %s: %w", c.Key(), err)
		}
		if _, err := stmt.Exec(c.Key(), string(locJSON)); err != nil {
			return fmt.Errorf("insert location %s: %w", c.Key(), err)
		}
	}

	for id, obj := range w.Objects {
		objJSON, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("marshal object %s: %w", id, err)
		}
		if _, err := tx.Exec("INSERT INTO objects (id, object_json) VALUES (?, ?)", id, string(objJSON)); err != nil {
			return fmt.Errorf("insert object %s: %w", id, err)
		}
	}

	meta := map[string]any{
		"time_of_day": w.TimeOfDay,
		"weather":     w.Weather,
	}
	homeJSON, _ := json.Marshal(w.Home)
	meta["home"] = string(homeJSON)
	for k, v := range meta {
		if _, err := tx.Exec("INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)", k, fmt.Sprint(v)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	w.Dirty = false
	return nil
}

// LoadWorld restores the discovered map into a fresh world with the
// given entropy seed.
func (db *DB) LoadWorld(seed int64) (*world.World, error) {
	w := world.New(seed)

	type locRow struct {
		Coord string `db:"coord"`
		JSON  string `db:"location_json"`
	}
	var locs []locRow
	if err := db.conn.Select(&locs, "SELECT coord, location_json FROM locations"); err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	for _, row := range locs {
		c, err := world.ParseCoord(row.Coord)
		if err != nil {
			return nil, err
		}
		var loc world.Location
		if err := json.Unmarshal([]byte(row.JSON), &loc); err != nil {
			return nil, fmt.Errorf("unmarshal location %s: %w", row.Coord, err)
		}
		w.Grid[c] = &loc
	}

	type objRow struct {
		ID   string `db:"id"`
		JSON string `db:"object_json"`
	}
	var objs []objRow
	if err := db.conn.Select(&objs, "SELECT id, object_json FROM objects"); err != nil {
		return nil, fmt.Errorf("load objects: %w", err)
	}
	for _, row := range objs {
		var obj world.Object
		if err := json.Unmarshal([]byte(row.JSON), &obj); err != nil {
			return nil, fmt.Errorf("unmarshal object %s: %w", row.ID, err)
		}
		w.Objects[row.ID] = &obj
	}

	if v, err := db.GetMeta("time_of_day"); err == nil {
		w.TimeOfDay = v
	}
	if v, err := db.GetMeta("weather"); err == nil {
		w.Weather = v
	}
	if v, err := db.GetMeta("home"); err == nil && v != "" {
		var home []world.Coord
		if err := json.Unmarshal([]byte(v), &home); err == nil {
			w.Home = home
		}
	}

	return w, nil
}

// HasState reports whether a previous save exists.
func (db *DB) HasState() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM agent"); err != nil {
		return false
	}
	return n > 0
}

// EventRow is one persisted narration line.
type EventRow struct {
	Beat int64  `db:"beat"`
	At   string `db:"at"`
	Kind string `db:"kind"`
	Text string `db:"text"`
}

// AppendEvents appends narration events to the log.
func (db *DB) AppendEvents(rows []EventRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range rows {
		if _, err := tx.Exec(
			"INSERT INTO events (beat, at, kind, text) VALUES (?, ?, ?, ?)",
			r.Beat, r.At, r.Kind, r.Text,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentEvents returns the most recent N narration lines, oldest first.
func (db *DB) RecentEvents(limit int) ([]EventRow, error) {
	var rows []EventRow
	err := db.conn.Select(&rows,
		"SELECT beat, at, kind, text FROM events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// SaveAll performs a full save: agent snapshot, world, beat marker.
func (db *DB) SaveAll(a *agent.Agent, w *world.World, beat int64) error {
	if err := db.SaveAgent(a); err != nil {
		return fmt.Errorf("save agent: %w", err)
	}
	if err := db.SaveWorld(w); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	if err := db.SaveMeta("last_beat", fmt.Sprintf("%d", beat)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	slog.Debug("state saved", "beat", beat, "locations", len(w.Grid))
	return nil
}

// IsNotFound reports whether an error means no saved row existed.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
