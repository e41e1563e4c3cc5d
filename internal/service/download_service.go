package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"wallcove/internal/catalog"
)

type DownloadResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

type DownloadService struct {
	store WallpaperStore
	http  *http.Client
	log   zerolog.Logger
}

func NewDownloadService(store WallpaperStore, httpClient *http.Client, log zerolog.Logger) *DownloadService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DownloadService{
		store: store,
		http:  httpClient,
		log:   log,
	}
}

// Download records the download, then fetches the bytes from the media
// host with attachment disposition forced via the URL rewrite.
func (s *DownloadService) Download(ctx context.Context, slug string) (DownloadResult, error) {
	wp, err := s.store.IncrementDownloads(ctx, slug)
	if err != nil {
		return DownloadResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attachmentURL(wp.DownloadURL), nil)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("%w: fetch image: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DownloadResult{}, fmt.Errorf("%w: fetch image: %s", ErrUpstream, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("%w: read image: %v", ErrUpstream, err)
	}

	contentType := wp.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return DownloadResult{
		Filename:    fmt.Sprintf("%s.%s", catalog.Slugify(wp.Title), extensionFromMime(wp.MimeType)),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// attachmentURL rewrites the delivery URL so the host serves the image
// with attachment disposition. Best effort: URLs without the /upload/
// segment pass through unchanged.
func attachmentURL(downloadURL string) string {
	return strings.ReplaceAll(downloadURL, "/upload/", "/upload/fl_attachment/")
}

func extensionFromMime(mimeType string) string {
	if mimeType == "" {
		return "jpg"
	}
	parts := strings.Split(mimeType, "/")
	ext := parts[len(parts)-1]
	if ext == "" {
		return "jpg"
	}
	return ext
}
