package web

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kmandrus/sheetframe/internal/ingest"
)

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readWorkbookForm extracts the uploaded workbook and conversion options
// from a multipart form. It writes the error response itself and reports
// ok=false when the request is malformed.
//
// Form fields:
//   - file: the workbook (required)
//   - sheet: worksheet name (optional, defaults from config)
//   - skip_header: "true" to drop the first row (optional)
func (s *Server) readWorkbookForm(w http.ResponseWriter, r *http.Request) (fileName string, data []byte, opts ingest.Options, ok bool) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return "", nil, ingest.Options{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return "", nil, ingest.Options{}, false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return "", nil, ingest.Options{}, false
	}

	opts.Sheet = r.FormValue("sheet")
	if v := r.FormValue("skip_header"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid skip_header value")
			return "", nil, ingest.Options{}, false
		}
		opts.SkipHeader = &skip
	}

	return header.Filename, data, opts, true
}

// handleConvert converts an uploaded workbook to a typed table without
// persisting anything.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	fileName, data, opts, ok := s.readWorkbookForm(w, r)
	if !ok {
		return
	}

	res, err := s.service.Convert(r.Context(), fileName, data, opts)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleImport converts an uploaded workbook and records the result in the
// import history.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	fileName, data, opts, ok := s.readWorkbookForm(w, r)
	if !ok {
		return
	}

	rec, err := s.service.Import(r.Context(), fileName, data, opts)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// handleListImports returns recent import records, newest first. The table
// payload is omitted from list responses.
func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	recs, err := s.service.History(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// handleGetImport returns one stored import including its table payload.
func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")
	if importID == "" {
		writeError(w, http.StatusBadRequest, "missing import ID")
		return
	}

	rec, err := s.service.Get(r.Context(), importID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
