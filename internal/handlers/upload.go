package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallcove/internal/models"
	"wallcove/internal/service"
)

func (h HandlerSet) UploadForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":  models.Categories,
		"devices":     []models.Device{models.DevicePC, models.DeviceMobile},
		"maxUploadMB": h.cfg.Media.MaxUploadMB,
	})
}

func (h HandlerSet) UploadWallpaper(c *gin.Context) {
	title := c.PostForm("title")

	var data []byte
	fileHeader, err := c.FormFile("image")
	if err == nil {
		maxBytes := h.cfg.Media.MaxUploadMB << 20
		if maxBytes > 0 && fileHeader.Size > maxBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the upload size limit"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file could not be read"})
			return
		}
		defer file.Close()

		data, err = io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file could not be read"})
			return
		}
	}

	wp, err := h.uploads.Upload(c.Request.Context(), service.UploadInput{
		Title:    title,
		Category: c.PostForm("category"),
		Tags:     c.PostForm("tags"),
		Device:   models.Device(c.PostForm("device")),
		Data:     data,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUpstream):
			h.log.Error().Err(err).Msg("upload failed upstream")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Msg("upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"wallpaper": summarize(wp),
		"slug":      wp.Slug,
	})
}
