package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wallcove/internal/catalog"
	"wallcove/internal/config"
	"wallcove/internal/ids"
	"wallcove/internal/media/dimensions"
	"wallcove/internal/mediahost"
	"wallcove/internal/models"
)

// Preview transformation chain: a bounded low-quality rendition for
// gallery tiles, full quality stays behind the download URL.
var previewChain = []mediahost.Transformation{
	{Width: 600, Height: 600, Crop: "limit"},
	{Quality: "auto:low", FetchFormat: "auto"},
}

type UploadInput struct {
	Title    string
	Category string
	Tags     string
	Device   models.Device
	Data     []byte
}

type UploadService struct {
	store    WallpaperStore
	provider mediahost.Provider
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewUploadService(store WallpaperStore, provider mediahost.Provider, cfg *config.AppConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		store:    store,
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

// Upload validates the input, hands the bytes to the media host and
// persists the catalog record. Nothing is persisted on any failure.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (models.Wallpaper, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Wallpaper{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(input.Data) == 0 {
		return models.Wallpaper{}, fmt.Errorf("%w: image file is required", ErrValidation)
	}
	if input.Category != "" && !models.ValidCategory(input.Category) {
		return models.Wallpaper{}, fmt.Errorf("%w: unknown category %q", ErrValidation, input.Category)
	}
	device := input.Device
	if device == "" {
		device = models.DevicePC
	}
	if !models.ValidDevice(device) {
		return models.Wallpaper{}, fmt.Errorf("%w: unknown device %q", ErrValidation, input.Device)
	}

	folder := s.cfg.Media.Folder
	if folder == "" {
		folder = "wallpapers"
	}
	asset, err := s.provider.Upload(ctx, input.Data, mediahost.UploadOptions{
		Folder:  folder,
		Quality: "auto:best",
	})
	if err != nil {
		return models.Wallpaper{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	width, height := asset.Width, asset.Height
	if width == 0 || height == 0 {
		w, h, derr := dimensions.Decode(input.Data)
		if derr != nil {
			// Degrade gracefully: the record keeps absent dimensions.
			s.log.Warn().Err(derr).Str("public_id", asset.PublicID).Msg("dimension fallback failed")
		} else {
			width, height = w, h
		}
	}

	wp, err := s.prepareWallpaper(ctx, title, input, asset, width, height)
	if err != nil {
		return models.Wallpaper{}, err
	}

	if err := s.store.Create(ctx, wp); err != nil {
		return models.Wallpaper{}, fmt.Errorf("save wallpaper: %w", err)
	}

	s.log.Info().
		Str("slug", wp.Slug).
		Str("public_id", wp.ExternalMediaID).
		Str("resolution", wp.ResolutionLabel).
		Msg("wallpaper uploaded")

	return wp, nil
}

// prepareWallpaper is the prepare-for-insert step: it derives the
// unique slug and resolution label before the record hits the store.
func (s *UploadService) prepareWallpaper(ctx context.Context, title string, input UploadInput, asset mediahost.Asset, width, height int) (models.Wallpaper, error) {
	slug, err := catalog.UniqueSlug(title, func(candidate string) (bool, error) {
		return s.store.SlugExists(ctx, candidate)
	})
	if err != nil {
		return models.Wallpaper{}, fmt.Errorf("derive slug: %w", err)
	}

	now := time.Now().UTC()
	wp := models.Wallpaper{
		ID:              ids.New(),
		Title:           title,
		Slug:            slug,
		ExternalMediaID: asset.PublicID,
		ViewURL:         s.provider.BuildURL(asset.PublicID, previewChain...),
		DownloadURL:     asset.SecureURL,
		MimeType:        "image/" + asset.Format,
		Category:        input.Category,
		Tags:            input.Tags,
		Device:          input.Device,
		IsFeatured:      false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if wp.Device == "" {
		wp.Device = models.DevicePC
	}

	if width > 0 && height > 0 {
		wp.Width = &width
		wp.Height = &height
		wp.ResolutionLabel = catalog.ResolutionLabel(width, height)
	}
	if asset.SizeBytes > 0 {
		size := asset.SizeBytes
		wp.SizeBytes = &size
	}

	return wp, nil
}
