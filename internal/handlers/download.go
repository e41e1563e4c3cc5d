package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallcove/internal/repository"
	"wallcove/internal/service"
)

func (h HandlerSet) DownloadWallpaper(c *gin.Context) {
	slug := c.Param("slug")

	result, err := h.downloads.Download(c.Request.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrWallpaperNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "wallpaper_not_found"})
		case errors.Is(err, service.ErrUpstream):
			h.log.Error().Err(err).Str("slug", slug).Msg("download fetch failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Str("slug", slug).Msg("download failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
