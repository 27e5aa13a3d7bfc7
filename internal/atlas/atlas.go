// Package atlas bundles a batch run's per-map artifacts (province/territory
// PNGs, CSVs, shapes JSON, manifests) into a single SQLite file, one row per
// file keyed by map ID and relative path. Adapted from the teacher's
// internal/mbtiles writer/reader, which did the equivalent for z/x/y tile
// blobs: the batched-transaction write pattern, WAL pragmas, and gzip
// framing are kept; the schema is repurposed from a tile pyramid to a named
// artifact bundle.
package atlas

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"sync"

	_ "modernc.org/sqlite"
)

// DefaultBatchSize is the number of files buffered before an automatic flush.
const DefaultBatchSize = 100

// FileEntry is a single artifact to store: MapID groups files from one
// generation run, Path is the artifact's relative path within that run
// (e.g. "provinces.csv", "territories/TERR0001.json").
type FileEntry struct {
	MapID string
	Path  string
	Data  []byte
}

// Writer writes files to a .worldatlas SQLite bundle.
type Writer struct {
	db        *sql.DB
	batch     []FileEntry
	batchSize int
	mu        sync.Mutex
}

// New creates or opens a .worldatlas bundle at path and ensures its schema.
func New(path string) (*Writer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("atlas: open %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = 50000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("atlas: pragma %q: %w", p, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("atlas: schema: %w", err)
	}

	return &Writer{db: db, batch: make([]FileEntry, 0, DefaultBatchSize), batchSize: DefaultBatchSize}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS maps (
			map_id TEXT PRIMARY KEY,
			created_at TEXT
		);

		CREATE TABLE IF NOT EXISTS files (
			map_id TEXT NOT NULL,
			path TEXT NOT NULL,
			data BLOB NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS file_index ON files (map_id, path);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// RegisterMap inserts a maps row for mapID, createdAt as a caller-formatted
// timestamp string (pass an already-rendered RFC3339 string: this package
// never calls time.Now/Date itself).
func (w *Writer) RegisterMap(mapID, createdAt string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.db.Exec("INSERT OR REPLACE INTO maps (map_id, created_at) VALUES (?, ?)", mapID, createdAt)
	return err
}

// WriteFile adds a file to the batch, flushing automatically once full.
func (w *Writer) WriteFile(mapID, path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.batch = append(w.batch, FileEntry{MapID: mapID, Path: path, Data: data})
	if len(w.batch) >= w.batchSize {
		return w.flushLocked()
	}
	return nil
}

// Flush writes any buffered files to the database.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *Writer) flushLocked() error {
	if len(w.batch) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO files (map_id, path, data) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range w.batch {
		compressed, err := gzipCompress(f.Data)
		if err != nil {
			return fmt.Errorf("compress %s/%s: %w", f.MapID, f.Path, err)
		}
		if _, err := stmt.Exec(f.MapID, f.Path, compressed); err != nil {
			return fmt.Errorf("insert %s/%s: %w", f.MapID, f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	w.batch = w.batch[:0]
	return nil
}

// Close flushes remaining files and closes the database.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.db.Close()
		return err
	}
	return w.db.Close()
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		gw.Close()
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reader reads files back out of a .worldatlas bundle.
type Reader struct {
	db *sql.DB
}

// Open opens an existing .worldatlas bundle for reading.
func Open(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("atlas: open %s: %w", path, err)
	}
	return &Reader{db: db}, nil
}

// MapIDs lists every map ID registered in the bundle.
func (r *Reader) MapIDs() ([]string, error) {
	rows, err := r.db.Query("SELECT map_id FROM maps ORDER BY map_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReadFile returns the decompressed contents of mapID's file at path.
func (r *Reader) ReadFile(mapID, path string) ([]byte, error) {
	var compressed []byte
	err := r.db.QueryRow("SELECT data FROM files WHERE map_id = ? AND path = ?", mapID, path).Scan(&compressed)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s/%s: %w", mapID, path, err)
	}

	gr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("atlas: gunzip %s/%s: %w", mapID, path, err)
	}
	defer gr.Close()
	return io.ReadAll(gr)
}

// Close closes the underlying database.
func (r *Reader) Close() error {
	return r.db.Close()
}
