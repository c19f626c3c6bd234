// Package storage persists shell state that outlives a single run: the
// recently opened wallet list and per-wallet window geometry. It is backed
// by a small SQLite database in the data directory.
package storage

import (
	"database/sql"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/emberwallet/ember/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_wallets (
	id          TEXT PRIMARY KEY,
	path        TEXT NOT NULL UNIQUE,
	last_opened INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS window_geometry (
	wallet_path TEXT PRIMARY KEY,
	width       INTEGER NOT NULL,
	height      INTEGER NOT NULL,
	maximized   INTEGER NOT NULL DEFAULT 0
);
`

// RecentWallet is one row of the recently opened list.
type RecentWallet struct {
	ID         string
	Path       string
	LastOpened time.Time
}

// Geometry is the saved size of a wallet window.
type Geometry struct {
	Width     int
	Height    int
	Maximized bool
}

// RecentStore persists recent wallets and window geometry.
type RecentStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at dbPath.
func Open(dbPath string) (*RecentStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, common.WrapError(err, "error opening recent-wallet store")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, common.WrapError(err, "error initializing recent-wallet store")
	}
	return &RecentStore{db: db}, nil
}

// OpenDefault opens the store at its standard location in the data
// directory.
func OpenDefault() (*RecentStore, error) {
	dataDir, err := common.GetDataDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dataDir, common.RecentDBFileName))
}

// Close closes the underlying database.
func (s *RecentStore) Close() error {
	return s.db.Close()
}

// Touch records that the wallet at path was just opened, inserting it or
// bumping its timestamp.
func (s *RecentStore) Touch(path string) error {
	_, err := s.db.Exec(`
		INSERT INTO recent_wallets (id, path, last_opened) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET last_opened = excluded.last_opened`,
		uuid.NewString(), path, time.Now().Unix())
	return common.WrapError(err, "error recording recent wallet")
}

// List returns up to limit recent wallets, most recent first.
func (s *RecentStore) List(limit int) ([]RecentWallet, error) {
	rows, err := s.db.Query(`
		SELECT id, path, last_opened FROM recent_wallets
		ORDER BY last_opened DESC LIMIT ?`, limit)
	if err != nil {
		return nil, common.WrapError(err, "error listing recent wallets")
	}
	defer rows.Close()

	var result []RecentWallet
	for rows.Next() {
		var rw RecentWallet
		var ts int64
		if err := rows.Scan(&rw.ID, &rw.Path, &ts); err != nil {
			return nil, common.WrapError(err, "error scanning recent wallet")
		}
		rw.LastOpened = time.Unix(ts, 0)
		result = append(result, rw)
	}
	return result, rows.Err()
}

// Remove drops the wallet at path from the recent list, e.g. after its
// file disappeared.
func (s *RecentStore) Remove(path string) error {
	_, err := s.db.Exec(`DELETE FROM recent_wallets WHERE path = ?`, path)
	return common.WrapError(err, "error removing recent wallet")
}

// SaveGeometry stores the window size for a wallet path.
func (s *RecentStore) SaveGeometry(path string, g Geometry) error {
	maximized := 0
	if g.Maximized {
		maximized = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO window_geometry (wallet_path, width, height, maximized)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(wallet_path) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			maximized = excluded.maximized`,
		path, g.Width, g.Height, maximized)
	return common.WrapError(err, "error saving window geometry")
}

// Geometry returns the saved window size for a wallet path. The second
// return value is false when nothing was saved.
func (s *RecentStore) Geometry(path string) (Geometry, bool, error) {
	var g Geometry
	var maximized int
	err := s.db.QueryRow(`
		SELECT width, height, maximized FROM window_geometry
		WHERE wallet_path = ?`, path).Scan(&g.Width, &g.Height, &maximized)
	if err == sql.ErrNoRows {
		return Geometry{}, false, nil
	}
	if err != nil {
		return Geometry{}, false, common.WrapError(err, "error loading window geometry")
	}
	g.Maximized = maximized == 1
	return g, true, nil
}
