package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wallcove/internal/models"
	"wallcove/internal/repository"
	"wallcove/internal/service"
)

type wallpaperSummary struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	ViewURL         string    `json:"viewUrl"`
	Category        string    `json:"category,omitempty"`
	Tags            string    `json:"tags,omitempty"`
	Device          string    `json:"device"`
	Width           *int      `json:"width,omitempty"`
	Height          *int      `json:"height,omitempty"`
	ResolutionLabel string    `json:"resolutionLabel,omitempty"`
	Downloads       int64     `json:"downloads"`
	IsFeatured      bool      `json:"isFeatured"`
	CreatedAt       time.Time `json:"createdAt"`
}

func summarize(wp models.Wallpaper) wallpaperSummary {
	return wallpaperSummary{
		Slug:            wp.Slug,
		Title:           wp.Title,
		ViewURL:         wp.ViewURL,
		Category:        wp.Category,
		Tags:            wp.Tags,
		Device:          string(wp.Device),
		Width:           wp.Width,
		Height:          wp.Height,
		ResolutionLabel: wp.ResolutionLabel,
		Downloads:       wp.Downloads,
		IsFeatured:      wp.IsFeatured,
		CreatedAt:       wp.CreatedAt,
	}
}

func summarizeAll(wallpapers []models.Wallpaper) []wallpaperSummary {
	items := make([]wallpaperSummary, 0, len(wallpapers))
	for _, wp := range wallpapers {
		items = append(items, summarize(wp))
	}
	return items
}

func (h HandlerSet) ListWallpapers(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page = v
		}
	}

	params := service.ListParams{
		Query:      strings.TrimSpace(c.Query("q")),
		Category:   strings.TrimSpace(c.Query("cat")),
		Resolution: strings.TrimSpace(c.Query("res")),
		Page:       page,
	}

	result, err := h.catalog.List(c.Request.Context(), params)
	if err != nil {
		h.log.Error().Err(err).Msg("list wallpapers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      summarizeAll(result.Items),
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"total":      result.Total,
		"q":          params.Query,
		"cat":        params.Category,
		"res":        params.Resolution,
		"categories": models.Categories,
	})
}

type downloadOptionResponse struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type detailResponse struct {
	wallpaperSummary
	MimeType        string                   `json:"mimeType,omitempty"`
	SizeBytes       *int64                   `json:"sizeBytes,omitempty"`
	DownloadURL     string                   `json:"downloadUrl"`
	AspectRatio     string                   `json:"aspectRatio,omitempty"`
	UpdatedAt       time.Time                `json:"updatedAt"`
	Related         []wallpaperSummary       `json:"related"`
	DownloadOptions []downloadOptionResponse `json:"downloadOptions"`
}

func (h HandlerSet) WallpaperDetail(c *gin.Context) {
	slug := c.Param("slug")

	result, err := h.catalog.Detail(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrWallpaperNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "wallpaper_not_found"})
			return
		}
		h.log.Error().Err(err).Str("slug", slug).Msg("wallpaper detail failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	options := make([]downloadOptionResponse, 0, len(result.DownloadOptions))
	for _, opt := range result.DownloadOptions {
		options = append(options, downloadOptionResponse{Label: opt.Label, URL: opt.URL})
	}

	c.JSON(http.StatusOK, detailResponse{
		wallpaperSummary: summarize(result.Wallpaper),
		MimeType:         result.Wallpaper.MimeType,
		SizeBytes:        result.Wallpaper.SizeBytes,
		DownloadURL:      result.Wallpaper.DownloadURL,
		AspectRatio:      result.AspectRatio,
		UpdatedAt:        result.Wallpaper.UpdatedAt,
		Related:          summarizeAll(result.Related),
		DownloadOptions:  options,
	})
}
