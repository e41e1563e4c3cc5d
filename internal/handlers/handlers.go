package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"wallcove/internal/config"
	"wallcove/internal/mediahost"
	"wallcove/internal/middleware"
	"wallcove/internal/models"
	"wallcove/internal/repository"
	"wallcove/internal/service"
)

type catalogService interface {
	List(ctx context.Context, params service.ListParams) (service.ListResult, error)
	Detail(ctx context.Context, slug string) (service.DetailResult, error)
}

type uploadService interface {
	Upload(ctx context.Context, input service.UploadInput) (models.Wallpaper, error)
}

type downloadService interface {
	Download(ctx context.Context, slug string) (service.DownloadResult, error)
}

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	db        *pgxpool.Pool
	catalog   catalogService
	uploads   uploadService
	downloads downloadService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, provider mediahost.Provider, cfg *config.AppConfig) HandlerSet {
	wallpapers := repository.NewWallpaperRepository(db)
	fetchClient := &http.Client{Timeout: cfg.Media.FetchTimeout}

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		db:        db,
		catalog:   service.NewCatalogService(wallpapers, provider, log),
		uploads:   service.NewUploadService(wallpapers, provider, cfg, log),
		downloads: service.NewDownloadService(wallpapers, fetchClient, log),
	}
}

func (h HandlerSet) Register(engine *gin.Engine) {
	engine.GET("/api/healthz", h.Health)

	engine.GET("/", h.ListWallpapers)
	engine.GET("/w/:slug", h.WallpaperDetail)
	engine.GET("/w/:slug/download", h.DownloadWallpaper)

	upload := engine.Group("/upload")
	upload.Use(middleware.StaffAuth(h.cfg))
	upload.GET("", h.UploadForm)
	upload.POST("", h.UploadWallpaper)

	v1 := engine.Group("/api/v1")
	v1.GET("/wallpapers", h.ListWallpapers)
	v1.GET("/wallpapers/:slug", h.WallpaperDetail)
}
