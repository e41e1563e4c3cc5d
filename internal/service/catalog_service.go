package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"wallcove/internal/catalog"
	"wallcove/internal/mediahost"
	"wallcove/internal/models"
	"wallcove/internal/repository"
)

const (
	pageSize     = 24
	relatedLimit = 6
)

// Preset download variants offered on the detail page, rendered through
// the provider's URL builder.
var downloadPresets = []struct {
	label     string
	transform mediahost.Transformation
}{
	{"HD (1920x1080)", mediahost.Transformation{Width: 1920, Height: 1080, Crop: "fill"}},
	{"2K (2560x1440)", mediahost.Transformation{Width: 2560, Height: 1440, Crop: "fill"}},
	{"4K (3840x2160)", mediahost.Transformation{Width: 3840, Height: 2160, Crop: "fill"}},
	{"Mobile (1080x2400)", mediahost.Transformation{Width: 1080, Height: 2400, Crop: "fill"}},
}

type CatalogService struct {
	store    WallpaperStore
	provider mediahost.Provider
	log      zerolog.Logger
}

func NewCatalogService(store WallpaperStore, provider mediahost.Provider, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		provider: provider,
		log:      log,
	}
}

type ListParams struct {
	Query      string
	Category   string
	Resolution string
	Page       int
}

type ListResult struct {
	Items      []models.Wallpaper
	Page       int
	TotalPages int
	Total      int
}

// List returns one page of search results, newest first. Out-of-range
// pages clamp to the nearest valid page instead of failing.
func (s *CatalogService) List(ctx context.Context, params ListParams) (ListResult, error) {
	filter := repository.SearchFilter{
		Query:      params.Query,
		Category:   params.Category,
		Resolution: params.Resolution,
	}

	total, err := s.store.CountSearch(ctx, filter)
	if err != nil {
		return ListResult{}, fmt.Errorf("count wallpapers: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	items, err := s.store.Search(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return ListResult{}, fmt.Errorf("search wallpapers: %w", err)
	}

	return ListResult{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

type DownloadOption struct {
	Label string
	URL   string
}

type DetailResult struct {
	Wallpaper       models.Wallpaper
	AspectRatio     string
	Related         []models.Wallpaper
	DownloadOptions []DownloadOption
}

// Detail returns the wallpaper plus up to six same-category wallpapers
// ordered by popularity, and the preset-resolution download links.
func (s *CatalogService) Detail(ctx context.Context, slug string) (DetailResult, error) {
	wp, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return DetailResult{}, err
	}

	related, err := s.store.Related(ctx, wp.Category, wp.Slug, relatedLimit)
	if err != nil {
		return DetailResult{}, fmt.Errorf("related wallpapers: %w", err)
	}

	var aspect string
	if wp.Width != nil && wp.Height != nil {
		aspect = catalog.AspectRatio(*wp.Width, *wp.Height)
	}

	options := make([]DownloadOption, 0, len(downloadPresets))
	for _, preset := range downloadPresets {
		options = append(options, DownloadOption{
			Label: preset.label,
			URL:   s.provider.BuildURL(wp.ExternalMediaID, preset.transform),
		})
	}

	return DetailResult{
		Wallpaper:       wp,
		AspectRatio:     aspect,
		Related:         related,
		DownloadOptions: options,
	}, nil
}
