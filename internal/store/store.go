// Package store persists import history to PostgreSQL.
//
// Each successful import is recorded with its classification stats and the
// full typed table as a JSONB payload, so past conversions can be inspected
// without re-reading the source workbook.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrNotFound is returned when the requested import record does not exist.
var ErrNotFound = errors.New("import not found")

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// ImportRecord is one persisted import.
type ImportRecord struct {
	ID         string          `json:"id"`
	FileName   string          `json:"fileName"`
	SheetName  string          `json:"sheetName"`
	RowCount   int             `json:"rowCount"`
	CellCount  int             `json:"cellCount"`
	EmptyCells int             `json:"emptyCells"`
	DateCells  int             `json:"dateCells"`
	DateErrors int             `json:"dateErrors"`
	Table      json.RawMessage `json:"table,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Store provides import history persistence over a pgx pool or transaction.
type Store struct {
	db DBTX
}

// New creates a Store backed by db.
func New(db DBTX) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS sheet_imports (
    id          UUID PRIMARY KEY,
    file_name   TEXT NOT NULL,
    sheet_name  TEXT NOT NULL,
    row_count   INTEGER NOT NULL,
    cell_count  INTEGER NOT NULL,
    empty_cells INTEGER NOT NULL,
    date_cells  INTEGER NOT NULL,
    date_errors INTEGER NOT NULL,
    table_data  JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_sheet_imports_created_at
    ON sheet_imports (created_at DESC);
`

// EnsureSchema creates the sheet_imports table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InsertImport persists one import record.
func (s *Store) InsertImport(ctx context.Context, rec ImportRecord) error {
	id := ToPgUUID(rec.ID)
	if !id.Valid {
		return fmt.Errorf("insert import: invalid id %q", rec.ID)
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO sheet_imports
			(id, file_name, sheet_name, row_count, cell_count,
			 empty_cells, date_cells, date_errors, table_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id,
		ToPgText(rec.FileName),
		ToPgText(rec.SheetName),
		rec.RowCount,
		rec.CellCount,
		rec.EmptyCells,
		rec.DateCells,
		rec.DateErrors,
		rec.Table,
	)
	if err != nil {
		return fmt.Errorf("insert import %s: %w", rec.ID, err)
	}
	return nil
}

// ListImports returns the most recent imports, newest first, without their
// table payloads.
func (s *Store) ListImports(ctx context.Context, limit int) ([]ImportRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, file_name, sheet_name, row_count, cell_count,
		       empty_cells, date_cells, date_errors, created_at
		FROM sheet_imports
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	var out []ImportRecord
	for rows.Next() {
		var (
			rec       ImportRecord
			id        pgtype.UUID
			file      pgtype.Text
			sheet     pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &file, &sheet,
			&rec.RowCount, &rec.CellCount, &rec.EmptyCells,
			&rec.DateCells, &rec.DateErrors, &createdAt); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		rec.ID = UUIDString(id)
		rec.FileName = file.String
		rec.SheetName = sheet.String
		rec.CreatedAt = createdAt.Time
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return out, nil
}

// GetImport returns one import record including its table payload, or
// ErrNotFound.
func (s *Store) GetImport(ctx context.Context, importID string) (*ImportRecord, error) {
	id := ToPgUUID(importID)
	if !id.Valid {
		return nil, fmt.Errorf("get import %q: %w", importID, ErrNotFound)
	}

	var (
		rec       ImportRecord
		file      pgtype.Text
		sheet     pgtype.Text
		createdAt pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, `
		SELECT file_name, sheet_name, row_count, cell_count,
		       empty_cells, date_cells, date_errors, table_data, created_at
		FROM sheet_imports
		WHERE id = $1`,
		id,
	).Scan(&file, &sheet,
		&rec.RowCount, &rec.CellCount, &rec.EmptyCells,
		&rec.DateCells, &rec.DateErrors, &rec.Table, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get import %s: %w", importID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get import %s: %w", importID, err)
	}

	rec.ID = importID
	rec.FileName = file.String
	rec.SheetName = sheet.String
	rec.CreatedAt = createdAt.Time
	return &rec, nil
}
