// Package ledger keeps a queryable history of stored uploads in DuckDB.
package ledger

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcboeker/go-duckdb"
	"github.com/resource-uploader/backend/internal/models"
)

// DuckLedger records uploads in a DuckDB database file.
type DuckLedger struct {
	db     *sql.DB
	dbPath string
}

// Open opens (or creates) the ledger database at dbPath.
func Open(dbPath string, threads int) (*DuckLedger, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{"PRAGMA enable_progress_bar=false"}
		if threads > 0 {
			pragmas = append(pragmas, fmt.Sprintf("PRAGMA threads=%d", threads))
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS uploads (
			id            VARCHAR PRIMARY KEY,
			original_name VARCHAR NOT NULL,
			stored_name   VARCHAR NOT NULL,
			folder        VARCHAR NOT NULL,
			file_path     VARCHAR NOT NULL,
			file_size     BIGINT NOT NULL,
			fell_back     BOOLEAN NOT NULL,
			stored_at     TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create uploads table: %w", err)
	}

	return &DuckLedger{db: db, dbPath: dbPath}, nil
}

// Record inserts one upload.
func (l *DuckLedger) Record(ctx context.Context, rec *models.UploadRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO uploads (id, original_name, stored_name, folder, file_path, file_size, fell_back, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OriginalName, rec.StoredName, rec.Folder, rec.FilePath, rec.FileSize, rec.FellBack, rec.StoredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording upload %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns up to limit uploads, newest first.
func (l *DuckLedger) Recent(ctx context.Context, limit int) ([]*models.UploadRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, original_name, stored_name, folder, file_path, file_size, fell_back, stored_at
		 FROM uploads
		 ORDER BY stored_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying uploads: %w", err)
	}
	defer rows.Close()

	records := make([]*models.UploadRecord, 0, limit)
	for rows.Next() {
		rec := &models.UploadRecord{}
		if err := rows.Scan(&rec.ID, &rec.OriginalName, &rec.StoredName, &rec.Folder,
			&rec.FilePath, &rec.FileSize, &rec.FellBack, &rec.StoredAt); err != nil {
			return nil, fmt.Errorf("scanning upload row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Path returns the database file location.
func (l *DuckLedger) Path() string {
	return l.dbPath
}

// Close closes the database.
func (l *DuckLedger) Close() error {
	return l.db.Close()
}
