package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"wallcove/internal/mediahost"
	"wallcove/internal/models"
	"wallcove/internal/repository"
)

// fakeStore is an in-memory WallpaperStore mirroring the SQL contract:
// case-insensitive matching, created_at DESC listing, downloads DESC
// related ordering.
type fakeStore struct {
	wallpapers []models.Wallpaper
	createErr  error
}

func (f *fakeStore) Create(_ context.Context, wp models.Wallpaper) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.wallpapers = append(f.wallpapers, wp)
	return nil
}

func (f *fakeStore) GetBySlug(_ context.Context, slug string) (models.Wallpaper, error) {
	for _, wp := range f.wallpapers {
		if wp.Slug == slug {
			return wp, nil
		}
	}
	return models.Wallpaper{}, repository.ErrWallpaperNotFound
}

func (f *fakeStore) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, wp := range f.wallpapers {
		if wp.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Search(_ context.Context, filter repository.SearchFilter, limit, offset int) ([]models.Wallpaper, error) {
	matched := f.filtered(filter)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeStore) CountSearch(_ context.Context, filter repository.SearchFilter) (int, error) {
	return len(f.filtered(filter)), nil
}

func (f *fakeStore) Related(_ context.Context, category string, excludeSlug string, limit int) ([]models.Wallpaper, error) {
	var matched []models.Wallpaper
	for _, wp := range f.wallpapers {
		if wp.Category == category && wp.Slug != excludeSlug {
			matched = append(matched, wp)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Downloads > matched[j].Downloads
	})
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeStore) IncrementDownloads(_ context.Context, slug string) (models.Wallpaper, error) {
	for i := range f.wallpapers {
		if f.wallpapers[i].Slug == slug {
			f.wallpapers[i].Downloads++
			f.wallpapers[i].UpdatedAt = time.Now().UTC()
			return f.wallpapers[i], nil
		}
	}
	return models.Wallpaper{}, repository.ErrWallpaperNotFound
}

func (f *fakeStore) filtered(filter repository.SearchFilter) []models.Wallpaper {
	var matched []models.Wallpaper
	for _, wp := range f.wallpapers {
		if f.matches(wp, filter) {
			matched = append(matched, wp)
		}
	}
	return matched
}

func (f *fakeStore) matches(wp models.Wallpaper, filter repository.SearchFilter) bool {
	if q := strings.ToLower(filter.Query); q != "" {
		if !strings.Contains(strings.ToLower(wp.Title), q) &&
			!strings.Contains(strings.ToLower(wp.Category), q) &&
			!strings.Contains(strings.ToLower(wp.Tags), q) {
			return false
		}
	}
	if filter.Category != "" && !strings.EqualFold(wp.Category, filter.Category) {
		return false
	}
	switch strings.ToLower(filter.Resolution) {
	case "":
	case "4k":
		if !dimensionAtLeast(wp, 3840, 2160) {
			return false
		}
	case "8k":
		if !dimensionAtLeast(wp, 7680, 4320) {
			return false
		}
	default:
		if !strings.EqualFold(wp.ResolutionLabel, filter.Resolution) {
			return false
		}
	}
	return true
}

func dimensionAtLeast(wp models.Wallpaper, width, height int) bool {
	return (wp.Width != nil && *wp.Width >= width) || (wp.Height != nil && *wp.Height >= height)
}

var errProviderDown = errors.New("provider unavailable")

type fakeProvider struct {
	asset    mediahost.Asset
	err      error
	uploads  int
	lastOpts mediahost.UploadOptions
}

func (f *fakeProvider) Upload(_ context.Context, _ []byte, opts mediahost.UploadOptions) (mediahost.Asset, error) {
	f.uploads++
	f.lastOpts = opts
	if f.err != nil {
		return mediahost.Asset{}, f.err
	}
	return f.asset, nil
}

func (f *fakeProvider) BuildURL(publicID string, chain ...mediahost.Transformation) string {
	parts := []string{"https://cdn.test"}
	for _, t := range chain {
		parts = append(parts, fmt.Sprintf("w%d-h%d-%s-%s-%s", t.Width, t.Height, t.Crop, t.Quality, t.FetchFormat))
	}
	parts = append(parts, publicID)
	return strings.Join(parts, "/")
}
