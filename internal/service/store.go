package service

import (
	"context"
	"errors"

	"wallcove/internal/models"
	"wallcove/internal/repository"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("media host failure")
)

// WallpaperStore is the persistence surface the services need,
// implemented by repository.WallpaperRepository.
type WallpaperStore interface {
	Create(ctx context.Context, wp models.Wallpaper) error
	GetBySlug(ctx context.Context, slug string) (models.Wallpaper, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Search(ctx context.Context, filter repository.SearchFilter, limit, offset int) ([]models.Wallpaper, error)
	CountSearch(ctx context.Context, filter repository.SearchFilter) (int, error)
	Related(ctx context.Context, category string, excludeSlug string, limit int) ([]models.Wallpaper, error)
	IncrementDownloads(ctx context.Context, slug string) (models.Wallpaper, error)
}
