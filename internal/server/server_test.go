package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratapsingh123om/wqam-dashboard/internal/analyze"
	"github.com/pratapsingh123om/wqam-dashboard/internal/history"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() (*Server, *history.Store) {
	store := history.New(10)
	srv := New(analyze.NewPipeline(), store, nil)
	return srv, store
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestAnalyzeUpload(t *testing.T) {
	srv, store := newTestServer()
	body, contentType := multipartBody(t, "samples.csv", "pH,Turbidity\n7.1,1.2\n7.3,1.5\n")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/analyze?uploader=alice", body)
	req.Header.Set("Content-Type", contentType)
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report analyze.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "alice", report.UploadedBy)
	assert.Equal(t, "samples.csv", report.SourceFilename)
	assert.Len(t, report.Parameters, 2)
	assert.Equal(t, 1, store.Len())
}

func TestAnalyzeUploadDefaultsUploader(t *testing.T) {
	srv, _ := newTestServer()
	body, contentType := multipartBody(t, "samples.csv", "pH\n7.0\n")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/analyze", body)
	req.Header.Set("Content-Type", contentType)
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var report analyze.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "anonymous", report.UploadedBy)
}

func TestAnalyzeUploadMissingFile(t *testing.T) {
	srv, _ := newTestServer()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/analyze", nil)
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeUploadRejectsUnusableContent(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		content  string
	}{
		{"no recognized parameters", "parts.csv", "widget,count\nbolt,12\n"},
		{"header only", "empty.csv", "pH,Turbidity\n"},
		{"unsupported format", "notes.docx", "free text"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv, store := newTestServer()
			body, contentType := multipartBody(t, c.filename, c.content)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/uploads/analyze", body)
			req.Header.Set("Content-Type", contentType)
			srv.Router().ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, 0, store.Len())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestListReports(t *testing.T) {
	srv, store := newTestServer()
	store.Add(&analyze.Report{ID: "one"})
	store.Add(&analyze.Report{ID: "two"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var reports []analyze.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "two", reports[0].ID)
}

func TestLatestReport(t *testing.T) {
	srv, store := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/latest", nil)
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	store.Add(&analyze.Report{ID: "fresh"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/reports/latest", nil)
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var report analyze.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "fresh", report.ID)
}
