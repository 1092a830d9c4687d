// Package httpadapter exposes the document pipeline over HTTP: upload,
// status/result retrieval and XLSX export.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/achartier/docintel/internal/core/ports"
	"github.com/achartier/docintel/internal/observability/metrics"
)

// maxUploadBytes bounds one uploaded document. Scanned PDFs run large;
// anything bigger than this is almost certainly not a business document.
const maxUploadBytes = 50 << 20

type Router struct {
	ingest   ports.DocumentIngestor
	docs     ports.DocumentReader
	exporter ports.ResultExporter
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	ingest ports.DocumentIngestor,
	docs ports.DocumentReader,
	exporter ports.ResultExporter,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		ingest:   ingest,
		docs:     docs,
		exporter: exporter,
		metrics:  httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.documentSubtree)
	mux.HandleFunc("/v1/exports/documents.xlsx", rt.exportDocuments)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	doc, err := rt.ingest.Upload(r.Context(), fileHeader.Filename, mimeType, file)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordUpload("api", mimeType, fileHeader.Size)
	}
	writeJSON(w, http.StatusAccepted, doc)
}

// documentSubtree routes /v1/documents/{id} and /v1/documents/{id}/result.
func (rt *Router) documentSubtree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, tail, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	switch tail {
	case "":
		writeJSON(w, http.StatusOK, doc)
	case "result":
		if doc.Result == nil {
			writeError(w, http.StatusNotFound, "document has no result yet")
			return
		}
		writeJSON(w, http.StatusOK, doc.Result)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (rt *Router) exportDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'from' date, expected YYYY-MM-DD")
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'to' date, expected YYYY-MM-DD")
		return
	}

	data, err := rt.exporter.ExportXLSX(r.Context(), from, to)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
