package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Schema for the snapshot catalog.
const catalogSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    snap_rid    INTEGER PRIMARY KEY,
    source_rid  INTEGER NOT NULL,
    key_class   INTEGER NOT NULL,
    created_at  INTEGER NOT NULL,
    size        INTEGER NOT NULL,
    checksum    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source_rid, created_at);
`

type SnapshotInfo struct {
	SnapRID   uint32 `json:"snap_rid"`
	SourceRID uint32 `json:"source_rid"`
	KeyClass  uint8  `json:"key_class"`
	CreatedAt int64  `json:"created_at"`
	Size      int    `json:"size"`
	Checksum  uint32 `json:"checksum"`
}

// Catalog indexes snapshots outside the record store so they can be
// listed and verified without scanning pebble.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens or creates the catalog database at the given path.
func OpenCatalog(path string) (*Catalog, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Catalog) Insert(info SnapshotInfo) error {
	_, err := c.db.Exec(
		`INSERT INTO snapshots (snap_rid, source_rid, key_class, created_at, size, checksum)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		info.SnapRID, info.SourceRID, info.KeyClass, info.CreatedAt, info.Size, info.Checksum)
	if err != nil {
		return fmt.Errorf("insert snapshot %d: %w", info.SnapRID, err)
	}
	return nil
}

// Get returns the catalog entry for a snapshot id, or nil if absent.
func (c *Catalog) Get(snapRID uint32) (*SnapshotInfo, error) {
	var info SnapshotInfo
	err := c.db.QueryRow(
		`SELECT snap_rid, source_rid, key_class, created_at, size, checksum
		 FROM snapshots WHERE snap_rid = ?`, snapRID).
		Scan(&info.SnapRID, &info.SourceRID, &info.KeyClass, &info.CreatedAt, &info.Size, &info.Checksum)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot %d: %w", snapRID, err)
	}
	return &info, nil
}

// List returns the newest entries first.
func (c *Catalog) List(limit int) ([]SnapshotInfo, error) {
	rows, err := c.db.Query(
		`SELECT snap_rid, source_rid, key_class, created_at, size, checksum
		 FROM snapshots ORDER BY created_at DESC, snap_rid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	infos := []SnapshotInfo{}
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.SnapRID, &info.SourceRID, &info.KeyClass,
			&info.CreatedAt, &info.Size, &info.Checksum); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
