package frame

import (
	"encoding/json"
	"testing"
)

// ----------------------------------------------------------------------------
// Build Tests
// ----------------------------------------------------------------------------

func TestBuildPreservesJaggedRows(t *testing.T) {
	b := NewBuilder(quietLogger())

	rows := [][]RawCell{
		{intCell(1)},
		{},
	}

	table, stats := b.Build(rows, BuildOptions{})

	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if len(table.Rows[0]) != 1 {
		t.Errorf("row 0 length = %d, want 1", len(table.Rows[0]))
	}
	if len(table.Rows[1]) != 0 {
		t.Errorf("row 1 length = %d, want 0 (no padding)", len(table.Rows[1]))
	}
	if stats.Rows != 2 || stats.Cells != 1 {
		t.Errorf("stats = %+v, want 2 rows, 1 cell", stats)
	}
}

func TestBuildClassifiesCells(t *testing.T) {
	b := NewBuilder(quietLogger())

	rows := [][]RawCell{
		{intCell(1), floatCell(2.5), textCell("x")},
		{dateCell(60), emptyCell(), errorCell("#REF!")},
	}

	table, stats := b.Build(rows, BuildOptions{})

	wantKinds := [][]*Kind{
		{kindPtr(KindInt), kindPtr(KindFloat), kindPtr(KindText)},
		{kindPtr(KindDate), nil, nil},
	}
	for ri, row := range table.Rows {
		for ci, cell := range row {
			want := wantKinds[ri][ci]
			if want == nil {
				if cell.HasValue() {
					t.Errorf("cell (%d,%d) = %+v, want no value", ri, ci, cell.Value)
				}
				continue
			}
			if !cell.HasValue() {
				t.Errorf("cell (%d,%d) has no value, want kind %v", ri, ci, *want)
				continue
			}
			if cell.Value.Kind != *want {
				t.Errorf("cell (%d,%d) kind = %v, want %v", ri, ci, cell.Value.Kind, *want)
			}
		}
	}

	if stats.Dates != 1 {
		t.Errorf("stats.Dates = %d, want 1", stats.Dates)
	}
	// The empty cell and the error cell both resolve to no value.
	if stats.Empty != 2 {
		t.Errorf("stats.Empty = %d, want 2", stats.Empty)
	}
}

func TestBuildBadDateDegradesToEmptyCell(t *testing.T) {
	b := NewBuilder(quietLogger())

	rows := [][]RawCell{{dateCell(0.5), intCell(7)}}

	table, stats := b.Build(rows, BuildOptions{})

	if table.Rows[0][0].HasValue() {
		t.Error("undecodable date cell should be empty")
	}
	if !table.Rows[0][1].HasValue() {
		t.Error("a bad cell must not affect its neighbors")
	}
	if stats.DateErrors != 1 {
		t.Errorf("stats.DateErrors = %d, want 1", stats.DateErrors)
	}
}

func TestBuildSkipHeader(t *testing.T) {
	b := NewBuilder(quietLogger())

	rows := [][]RawCell{
		{textCell("name"), textCell("amount")},
		{textCell("widget"), intCell(3)},
	}

	t.Run("header retained by default", func(t *testing.T) {
		table, _ := b.Build(rows, BuildOptions{})
		if len(table.Rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(table.Rows))
		}
	})

	t.Run("header dropped when requested", func(t *testing.T) {
		table, stats := b.Build(rows, BuildOptions{SkipHeader: true})
		if len(table.Rows) != 1 {
			t.Fatalf("got %d rows, want 1", len(table.Rows))
		}
		if got := table.Rows[0][0].Value.Text; got != "widget" {
			t.Errorf("first cell = %q, want %q", got, "widget")
		}
		if stats.Rows != 1 {
			t.Errorf("stats.Rows = %d, want 1", stats.Rows)
		}
	})

	t.Run("skipping the header of empty input is a no-op", func(t *testing.T) {
		table, _ := b.Build(nil, BuildOptions{SkipHeader: true})
		if len(table.Rows) != 0 {
			t.Fatalf("got %d rows, want 0", len(table.Rows))
		}
	})
}

func kindPtr(k Kind) *Kind { return &k }

// ----------------------------------------------------------------------------
// JSON Rendering Tests
// ----------------------------------------------------------------------------

func TestCellMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{
			name: "empty cell renders null",
			cell: Cell{},
			want: `null`,
		},
		{
			name: "integer cell",
			cell: Cell{Value: &CellValue{Kind: KindInt, Int: 5}},
			want: `{"kind":"int","value":5}`,
		},
		{
			name: "date cell renders ISO form",
			cell: Cell{Value: &CellValue{Kind: KindDate, Date: Date{Year: 1900, Month: 2, Day: 29}}},
			want: `{"kind":"date","value":"1900-02-29"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.cell)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("marshal = %s, want %s", got, tt.want)
			}
		})
	}
}
