package frame

import "log/slog"

// DefaultSheet is the worksheet consulted when no sheet name is configured.
const DefaultSheet = "Sheet1"

// BuildOptions controls a single table build.
type BuildOptions struct {
	// Sheet is the worksheet to read. The workbook layer applies
	// DefaultSheet when empty; the builder itself never consults it.
	Sheet string

	// SkipHeader drops the first supplied row before building, for sources
	// whose first row is a header. When false the first row is retained as
	// data.
	SkipHeader bool
}

// BuildStats summarizes one build pass for observability and persistence.
type BuildStats struct {
	Rows       int `json:"rows"`
	Cells      int `json:"cells"`
	Empty      int `json:"empty"`
	Dates      int `json:"dates"`
	DateErrors int `json:"dateErrors"`
}

// Builder assembles typed tables from raw cell rows.
type Builder struct {
	classifier *Classifier
	logger     *slog.Logger
}

// NewBuilder returns a Builder that logs classification gaps through logger.
// A nil logger falls back to slog.Default().
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		classifier: NewClassifier(logger),
		logger:     logger,
	}
}

// Build walks rows in input order and classifies every cell. Row order,
// column order, and per-row lengths are preserved exactly; jagged input
// yields a jagged table.
//
// Build never fails as a whole. A cell that cannot be classified, including
// a date payload that fails to decode, degrades to an empty cell and is
// logged.
func (b *Builder) Build(rows [][]RawCell, opts BuildOptions) (Table, BuildStats) {
	if opts.SkipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	var stats BuildStats
	out := make([]Row, 0, len(rows))
	for ri, raws := range rows {
		row := make(Row, 0, len(raws))
		for ci, raw := range raws {
			row = append(row, b.buildCell(raw, ri, ci, &stats))
		}
		out = append(out, row)
	}
	stats.Rows = len(out)

	return Table{Rows: out}, stats
}

// buildCell classifies one raw cell, falling back to date detection when the
// primary probes produce nothing.
func (b *Builder) buildCell(raw RawCell, ri, ci int, stats *BuildStats) Cell {
	stats.Cells++

	if v := b.classifier.Classify(raw); v != nil {
		return Cell{Value: v}
	}

	d, ok, err := b.classifier.ClassifyDate(raw)
	if err != nil {
		stats.DateErrors++
		b.logger.Warn("date decode failed, leaving cell empty",
			"row", ri, "col", ci, "error", err)
		return Cell{}
	}
	if ok {
		stats.Dates++
		cv := DateValue(d)
		return Cell{Value: &cv}
	}

	stats.Empty++
	return Cell{}
}
