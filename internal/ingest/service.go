// Package ingest orchestrates workbook conversion and import persistence.
//
// This package ties the pieces together: it opens an uploaded workbook,
// pulls the requested sheet's raw cells, runs the frame builder over them,
// and optionally records the result in the import history store. It has no
// transport dependencies and can be driven by web handlers, CLI tools, or
// tests.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kmandrus/sheetframe/internal/config"
	"github.com/kmandrus/sheetframe/internal/frame"
	"github.com/kmandrus/sheetframe/internal/store"
	"github.com/kmandrus/sheetframe/internal/xlsx"
)

// ImportStore is the persistence interface the service needs.
// Satisfied by *store.Store.
type ImportStore interface {
	InsertImport(ctx context.Context, rec store.ImportRecord) error
	ListImports(ctx context.Context, limit int) ([]store.ImportRecord, error)
	GetImport(ctx context.Context, importID string) (*store.ImportRecord, error)
}

// Options are the per-request knobs for a conversion. Zero values fall back
// to the service defaults from configuration.
type Options struct {
	// Sheet names the worksheet to read; empty selects the configured
	// default sheet.
	Sheet string

	// SkipHeader overrides the configured header handling when non-nil.
	SkipHeader *bool
}

// ConvertResult is the outcome of one workbook conversion.
type ConvertResult struct {
	FileName   string           `json:"fileName"`
	Sheet      string           `json:"sheet"`
	SkipHeader bool             `json:"skipHeader"`
	Stats      frame.BuildStats `json:"stats"`
	Table      *frame.Table     `json:"table"`
}

// Service provides workbook conversion and import history operations.
type Service struct {
	store        ImportStore
	defaultSheet string
	skipHeader   bool
	logger       *slog.Logger
}

// NewService creates a Service with defaults drawn from cfg.
func NewService(st ImportStore, cfg *config.Config) *Service {
	return &Service{
		store:        st,
		defaultSheet: cfg.Import.DefaultSheet,
		skipHeader:   cfg.Import.SkipHeader,
		logger:       slog.Default(),
	}
}

// buildOptions resolves per-request options against the service defaults.
func (s *Service) buildOptions(opts Options) frame.BuildOptions {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = s.defaultSheet
	}
	if sheet == "" {
		sheet = frame.DefaultSheet
	}

	skip := s.skipHeader
	if opts.SkipHeader != nil {
		skip = *opts.SkipHeader
	}

	return frame.BuildOptions{Sheet: sheet, SkipHeader: skip}
}

// Convert opens the workbook in data and builds a typed table from the
// requested sheet. A sheet that does not exist yields an empty table; an
// unreadable workbook is an error.
func (s *Service) Convert(ctx context.Context, fileName string, data []byte, opts Options) (*ConvertResult, error) {
	logger := s.logger.With("file", fileName)

	wb, err := xlsx.Open(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", fileName, err)
	}
	defer wb.Close()

	bopts := s.buildOptions(opts)

	rows, err := wb.Rows(bopts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", fileName, err)
	}
	if rows == nil {
		logger.Warn("sheet not found, producing empty table",
			"sheet", bopts.Sheet, "available", wb.Sheets())
	}

	table, stats := frame.NewBuilder(logger).Build(rows, bopts)

	logger.Info("workbook converted",
		"sheet", bopts.Sheet,
		"rows", stats.Rows,
		"cells", stats.Cells,
		"dates", stats.Dates,
		"date_errors", stats.DateErrors,
	)

	return &ConvertResult{
		FileName:   fileName,
		Sheet:      bopts.Sheet,
		SkipHeader: bopts.SkipHeader,
		Stats:      stats,
		Table:      &table,
	}, nil
}

// Import converts the workbook and persists the result in the import
// history. The returned record includes the serialized table payload.
func (s *Service) Import(ctx context.Context, fileName string, data []byte, opts Options) (*store.ImportRecord, error) {
	res, err := s.Convert(ctx, fileName, data, opts)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(res.Table)
	if err != nil {
		return nil, fmt.Errorf("import %s: encode table: %w", fileName, err)
	}

	rec := store.ImportRecord{
		ID:         uuid.New().String(),
		FileName:   fileName,
		SheetName:  res.Sheet,
		RowCount:   res.Stats.Rows,
		CellCount:  res.Stats.Cells,
		EmptyCells: res.Stats.Empty,
		DateCells:  res.Stats.Dates,
		DateErrors: res.Stats.DateErrors,
		Table:      payload,
	}

	if err := s.store.InsertImport(ctx, rec); err != nil {
		return nil, fmt.Errorf("import %s: %w", fileName, err)
	}

	s.logger.Info("import recorded", "import_id", rec.ID, "file", fileName, "rows", rec.RowCount)
	return &rec, nil
}

// History returns the most recent import records, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]store.ImportRecord, error) {
	return s.store.ListImports(ctx, limit)
}

// Get returns one stored import including its table payload.
func (s *Service) Get(ctx context.Context, importID string) (*store.ImportRecord, error) {
	return s.store.GetImport(ctx, importID)
}
