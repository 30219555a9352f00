package sqlite

import (
	"context"
	"database/sql"
	"os"

	_ "modernc.org/sqlite"
)

const defaultPath = "face_hires.db"

const createRestorationsTable = `
CREATE TABLE IF NOT EXISTS face_restorations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    score REAL NOT NULL,
    box_x0 INTEGER NOT NULL,
    box_y0 INTEGER NOT NULL,
    box_x1 INTEGER NOT NULL,
    box_y1 INTEGER NOT NULL,
    relative_size REAL NOT NULL,
    denoising_strength REAL NOT NULL,
    mask_blur INTEGER NOT NULL,
    inpaint_padding INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

// New opens (creating if needed) the local database and ensures the schema
// exists. The path can be overridden with the SQLITE_PATH environment
// variable.
func New(ctx context.Context) (*sql.DB, error) {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = defaultPath
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createRestorationsTable); err != nil {
		return nil, err
	}

	return db, nil
}
