// Package frame converts untyped spreadsheet cell values into a strongly
// typed in-memory table.
//
// This package is the heart of the importer, containing all domain logic
// independent of any workbook format or transport layer. It can be used by
// web handlers, CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around three pieces, composed leaf to root:
//
//   - Date decoding: [DecodeSerial] turns an Excel 1900-system day count into
//     a calendar [Date], reproducing the fictitious 1900-02-29 the format
//     encodes. [DecodeComponents] builds a Date from three numeric fragments
//     and a format tag.
//   - Classification: a [Classifier] maps one probe-capable [RawCell] to an
//     optional [CellValue], falling back to date decoding for cells that
//     carry a date/time payload.
//   - Building: a [Builder] walks a 2-D sequence of raw cells and assembles a
//     [Table], preserving row order and per-row lengths exactly. A bad cell
//     degrades to an empty cell; a build never fails as a whole.
//
// # Cell Values
//
// [CellValue] is a closed variant over integer, float, text, and date kinds.
// Consumers switch exhaustively on [CellValue.Kind]; adding a kind forces
// every consumption site to be revisited.
//
// All functions here are pure given their inputs and safe to call
// concurrently across independent cells.
package frame
