package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"finance-rag/internal/config"
	"finance-rag/internal/helper"
)

// FileInfo describes a downloaded report file.
type FileInfo struct {
	Path         string    `json:"path"`
	Filename     string    `json:"filename"`
	SourceURL    string    `json:"source_url"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `json:"content_type"`
	DownloadTime time.Time `json:"download_time"`
	Ticker       string    `json:"ticker"`
}

// Downloader fetches report PDFs over HTTP with a per-call timeout,
// a content-type check and a maximum-size guard.
type Downloader struct {
	cfg    *config.PDFConfig
	client *http.Client
}

func NewDownloader(cfg *config.PDFConfig) (*Downloader, error) {
	if err := helper.CreateFolder(cfg.DownloadDir); err != nil {
		return nil, fmt.Errorf("creating download dir: %w", err)
	}
	return &Downloader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.DownloadTimeout},
	}, nil
}

// ReportURL builds the report download URL for a ticker.
func (d *Downloader) ReportURL(ticker string) string {
	return d.cfg.ReportURL + ticker
}

// Download fetches url into the download directory. The body is rejected when
// the content type is not PDF or the size exceeds the configured maximum; the
// size is enforced again after writing, since servers may omit Content-Length.
func (d *Downloader) Download(ctx context.Context, url, ticker string) (*FileInfo, error) {
	filename := d.filename(ticker)
	path := filepath.Join(d.cfg.DownloadDir, filename)
	maxBytes := d.cfg.MaxSizeMB * 1024 * 1024

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: HTTP %d", url, resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/pdf") {
		return nil, fmt.Errorf("downloading %s: not a PDF (content type %q)", url, contentType)
	}
	if resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("downloading %s: file too large (%d bytes)", url, resp.ContentLength)
	}

	out, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	written, err := io.Copy(out, io.LimitReader(resp.Body, maxBytes+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if written > maxBytes {
		os.Remove(path)
		return nil, fmt.Errorf("downloading %s: file too large (over %d MB)", url, d.cfg.MaxSizeMB)
	}

	log.Info().Str("filename", filename).Int64("bytes", written).Msg("report downloaded")

	return &FileInfo{
		Path:         path,
		Filename:     filename,
		SourceURL:    url,
		FileSize:     written,
		ContentType:  contentType,
		DownloadTime: time.Now(),
		Ticker:       ticker,
	}, nil
}

// Cleanup removes a downloaded temp file. Failure to delete is logged, not
// surfaced; the pipeline result does not depend on it.
func (d *Downloader) Cleanup(path string) {
	if err := os.Remove(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to delete downloaded file")
		return
	}
	log.Info().Str("path", path).Msg("downloaded file deleted")
}

func (d *Downloader) filename(ticker string) string {
	stamp := time.Now().Format("20060102_150405")
	if ticker != "" {
		return fmt.Sprintf("%s_%s.pdf", ticker, stamp)
	}
	return fmt.Sprintf("pdf_%s_%s.pdf", uuid.NewString()[:8], stamp)
}
