package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallcove/internal/models"
	"wallcove/internal/repository"
	"wallcove/internal/service"
)

func intPtr(v int) *int { return &v }

func seedWallpaper(slug string, mutate func(*models.Wallpaper)) models.Wallpaper {
	wp := models.Wallpaper{
		ID:        slug,
		Title:     slug,
		Slug:      slug,
		Device:    models.DevicePC,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if mutate != nil {
		mutate(&wp)
	}
	return wp
}

func TestListTextSearchMatchesTitleCategoryTags(t *testing.T) {
	store := &fakeStore{wallpapers: []models.Wallpaper{
		seedWallpaper("a", func(wp *models.Wallpaper) { wp.Title = "Deep Space Nebula" }),
		seedWallpaper("b", func(wp *models.Wallpaper) { wp.Category = "space" }),
		seedWallpaper("c", func(wp *models.Wallpaper) { wp.Tags = "stars,SPACE,night" }),
		seedWallpaper("d", func(wp *models.Wallpaper) { wp.Title = "Forest Road"; wp.Category = "nature" }),
	}}
	svc := service.NewCatalogService(store, &fakeProvider{}, zerolog.Nop())

	result, err := svc.List(context.Background(), service.ListParams{Query: "space", Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	for _, wp := range result.Items {
		assert.NotEqual(t, "d", wp.Slug)
	}
}

func TestListFiltersCombineWithAnd(t *testing.T) {
	store := &fakeStore{wallpapers: []models.Wallpaper{
		seedWallpaper("a", func(wp *models.Wallpaper) { wp.Title = "Space Station"; wp.Category = "nature" }),
		seedWallpaper("b", func(wp *models.Wallpaper) { wp.Title = "Space Walk"; wp.Category = "space" }),
		seedWallpaper("c", func(wp *models.Wallpaper) { wp.Title = "Meadow"; wp.Category = "nature" }),
	}}
	svc := service.NewCatalogService(store, &fakeProvider{}, zerolog.Nop())

	result, err := svc.List(context.Background(), service.ListParams{Query: "space", Category: "NATURE", Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "a", result.Items[0].Slug)
}

func TestListResolution4KUsesThresholdsNotLabel(t *testing.T) {
	store := &fakeStore{wallpapers: []models.Wallpaper{
		// Qualifies via width even though the label disagrees.
		seedWallpaper("wide", func(wp *models.Wallpaper) {
			wp.Width = intPtr(3840)
			wp.Height = intPtr(1600)
			wp.ResolutionLabel = "ultrawide"
		}),
		// Qualifies via height alone.
		seedWallpaper("tall", func(wp *models.Wallpaper) {
			wp.Width = intPtr(1000)
			wp.Height = intPtr(2160)
			wp.ResolutionLabel = "4K"
		}),
		// Label claims 4K but the dimensions fall short.
		seedWallpaper("mislabeled", func(wp *models.Wallpaper) {
			wp.Width = intPtr(800)
			wp.Height = intPtr(600)
			wp.ResolutionLabel = "4K"
		}),
		seedWallpaper("fhd", func(wp *models.Wallpaper) {
			wp.Width = intPtr(1920)
			wp.Height = intPtr(1080)
			wp.ResolutionLabel = "FHD"
		}),
		seedWallpaper("nodims", nil),
	}}
	svc := service.NewCatalogService(store, &fakeProvider{}, zerolog.Nop())

	result, err := svc.List(context.Background(), service.ListParams{Resolution: "4k", Page: 1})
	require.NoError(t, err)
	slugs := make([]string, 0, len(result.Items))
	for _, wp := range result.Items {
		slugs = append(slugs, wp.Slug)
	}
	assert.ElementsMatch(t, []string{"wide", "tall"}, slugs)
}

func TestListExactLabelFilter(t *testing.T) {
	store := &fakeStore{wallpapers: []models.Wallpaper{
		seedWallpaper("qhd", func(wp *models.Wallpaper) { wp.ResolutionLabel = "QHD" }),
		seedWallpaper("fhd", func(wp *models.Wallpaper) { wp.ResolutionLabel = "FHD" }),
	}}
	svc := service.NewCatalogService(store, &fakeProvider{}, zerolog.Nop())

	result, err := svc.List(context.Background(), service.ListParams{Resolution: "qhd", Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "qhd", result.Items[0].Slug)
}

func TestListPaginationClampsAndOrders(t *testing.T) {
	store := &fakeStore{}
	base := time.Now().UTC()
	for i := 0; i < 30; i++ {
		wp := seedWallpaper(fmt.Sprintf("wp-%02d", i), nil)
		wp.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		store.wallpapers = append(store.wallpapers, wp)
	}
	svc := service.NewCatalogService(store, &fakeProvider{}, zerolog.Nop())

	first, err := svc.List(context.Background(), service.ListParams{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Items, 24)
	assert.Equal(t, 30, first.Total)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, "wp-29", first.Items[0].Slug, "newest first")

	// Below range clamps to the first page.
	low, err := svc.List(context.Background(), service.ListParams{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, low.Page)

	// Beyond range clamps to the last page.
	high, err := svc.List(context.Background(), service.ListParams{Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 2, high.Page)
	assert.Len(t, high.Items, 6)

	// Empty catalog still reports one (empty) page.
	empty, err := service.NewCatalogService(&fakeStore{}, &fakeProvider{}, zerolog.Nop()).
		List(context.Background(), service.ListParams{Page: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
}

func TestDetailNotFound(t *testing.T) {
	svc := service.NewCatalogService(&fakeStore{}, &fakeProvider{}, zerolog.Nop())

	_, err := svc.Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrWallpaperNotFound)
}

func TestDetailRelatedAndPresets(t *testing.T) {
	store := &fakeStore{}
	main := seedWallpaper("main", func(wp *models.Wallpaper) {
		wp.Category = "space"
		wp.ExternalMediaID = "wallpapers/main"
		wp.Width = intPtr(1920)
		wp.Height = intPtr(1080)
	})
	store.wallpapers = append(store.wallpapers, main)
	for i := 0; i < 8; i++ {
		wp := seedWallpaper(fmt.Sprintf("space-%d", i), func(wp *models.Wallpaper) { wp.Category = "space" })
		wp.Downloads = int64(i)
		store.wallpapers = append(store.wallpapers, wp)
	}
	store.wallpapers = append(store.wallpapers,
		seedWallpaper("other", func(wp *models.Wallpaper) { wp.Category = "nature" }))

	svc := service.NewCatalogService(store, &fakeProvider{}, zerolog.Nop())

	result, err := svc.Detail(context.Background(), "main")
	require.NoError(t, err)

	assert.Equal(t, "16:9", result.AspectRatio)

	require.Len(t, result.Related, 6, "capped at six")
	assert.Equal(t, "space-7", result.Related[0].Slug, "most downloaded first")
	for _, wp := range result.Related {
		assert.NotEqual(t, "main", wp.Slug)
		assert.Equal(t, "space", wp.Category)
	}

	require.Len(t, result.DownloadOptions, 4)
	assert.Equal(t, "HD (1920x1080)", result.DownloadOptions[0].Label)
	assert.Equal(t, "https://cdn.test/w1920-h1080-fill--/wallpapers/main", result.DownloadOptions[0].URL)
	assert.Equal(t, "Mobile (1080x2400)", result.DownloadOptions[3].Label)
}

func TestDetailWithoutDimensionsHasNoAspectRatio(t *testing.T) {
	store := &fakeStore{wallpapers: []models.Wallpaper{seedWallpaper("plain", nil)}}
	svc := service.NewCatalogService(store, &fakeProvider{}, zerolog.Nop())

	result, err := svc.Detail(context.Background(), "plain")
	require.NoError(t, err)
	assert.Empty(t, result.AspectRatio)
}
