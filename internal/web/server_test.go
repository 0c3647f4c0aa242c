package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kmandrus/sheetframe/internal/config"
	"github.com/kmandrus/sheetframe/internal/ingest"
	"github.com/kmandrus/sheetframe/internal/store"
)

// memStore is an in-memory ImportStore for handler tests.
type memStore struct {
	recs []store.ImportRecord
}

func (m *memStore) InsertImport(_ context.Context, rec store.ImportRecord) error {
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memStore) ListImports(_ context.Context, limit int) ([]store.ImportRecord, error) {
	if limit > 0 && limit < len(m.recs) {
		return m.recs[:limit], nil
	}
	return m.recs, nil
}

func (m *memStore) GetImport(_ context.Context, importID string) (*store.ImportRecord, error) {
	for i := range m.recs {
		if m.recs[i].ID == importID {
			return &m.recs[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func testServer(t *testing.T) (*Server, *memStore) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: 0},
		Import: config.ImportConfig{
			MaxFileSize:  1 << 20,
			DefaultSheet: "Sheet1",
		},
	}
	st := &memStore{}
	return NewServer(ingest.NewService(st, cfg), cfg), st
}

// workbookForm builds a multipart body carrying a small workbook plus any
// extra form fields.
func workbookForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "name")
	f.SetCellValue("Sheet1", "A2", "widget")
	f.SetCellValue("Sheet1", "B2", 3)
	wb, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "test.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(wb.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	return &body, mw.FormDataContentType()
}

// ----------------------------------------------------------------------------
// Route Tests
// ----------------------------------------------------------------------------

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestConvertEndpoint(t *testing.T) {
	srv, _ := testServer(t)
	body, contentType := workbookForm(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res ingest.ConvertResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.FileName != "test.xlsx" || res.Sheet != "Sheet1" {
		t.Errorf("result = %q/%q, want test.xlsx/Sheet1", res.FileName, res.Sheet)
	}
	if res.Stats.Rows != 2 {
		t.Errorf("Stats.Rows = %d, want 2", res.Stats.Rows)
	}
}

func TestConvertEndpointSkipHeader(t *testing.T) {
	srv, _ := testServer(t)
	body, contentType := workbookForm(t, map[string]string{"skip_header": "true"})

	req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res ingest.ConvertResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.SkipHeader || res.Stats.Rows != 1 {
		t.Errorf("SkipHeader = %v, Rows = %d, want true and 1", res.SkipHeader, res.Stats.Rows)
	}
}

func TestConvertEndpointRejectsMissingFile(t *testing.T) {
	srv, _ := testServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("sheet", "Sheet1")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestImportEndpoints(t *testing.T) {
	srv, st := testServer(t)
	body, contentType := workbookForm(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(st.recs) != 1 {
		t.Fatalf("store has %d records, want 1", len(st.recs))
	}

	var created store.ImportRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// List
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listed []store.ImportRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("listed = %+v, want one record with ID %s", listed, created.ID)
	}

	// Get
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	// Unknown ID
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports/does-not-exist", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown import status = %d, want 404", rec.Code)
	}
}

func TestListImportsRejectsBadLimit(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports?limit=zero", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
