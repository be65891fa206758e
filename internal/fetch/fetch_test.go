package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-rag/internal/config"
)

func newTestDownloader(t *testing.T, maxMB int64) *Downloader {
	t.Helper()
	d, err := NewDownloader(&config.PDFConfig{
		ReportURL:       "https://reports.example.com/",
		DownloadTimeout: 5 * time.Second,
		MaxSizeMB:       maxMB,
		DownloadDir:     t.TempDir(),
	})
	require.NoError(t, err)
	return d
}

func TestReportURL(t *testing.T) {
	d := newTestDownloader(t, 50)
	assert.Equal(t, "https://reports.example.com/005930", d.ReportURL("005930"))
}

func TestDownloadSuccess(t *testing.T) {
	body := "%PDF-1.4 fake report body"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	d := newTestDownloader(t, 50)
	info, err := d.Download(context.Background(), srv.URL, "005930")
	require.NoError(t, err)

	assert.Equal(t, "005930", info.Ticker)
	assert.Equal(t, int64(len(body)), info.FileSize)
	assert.True(t, strings.HasPrefix(info.Filename, "005930_"))
	assert.Contains(t, info.ContentType, "application/pdf")

	data, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	d.Cleanup(info.Path)
	_, err = os.Stat(info.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadRejectsNonPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not found</html>"))
	}))
	defer srv.Close()

	d := newTestDownloader(t, 50)
	_, err := d.Download(context.Background(), srv.URL, "005930")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a PDF")
}

func TestDownloadRejectsOversizeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(make([]byte, 2*1024*1024))
	}))
	defer srv.Close()

	d := newTestDownloader(t, 1)
	_, err := d.Download(context.Background(), srv.URL, "005930")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestDownloadRejectsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := newTestDownloader(t, 50)
	_, err := d.Download(context.Background(), srv.URL, "005930")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
