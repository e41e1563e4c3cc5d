package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wallcove/internal/models"
)

var ErrWallpaperNotFound = errors.New("wallpaper not found")

const wallpaperColumns = `
	id, title, slug, external_media_id, view_url, download_url, mime_type,
	width, height, size_bytes, category, tags, device, resolution_label,
	downloads, is_featured, created_at, updated_at`

// SearchFilter describes the list/search predicates. All non-empty
// filters combine with AND; the free-text query matches title, category
// or tags case-insensitively.
type SearchFilter struct {
	Query      string
	Category   string
	Resolution string
}

// likeEscaper neutralizes LIKE metacharacters so user input matches
// literally inside a containment pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (f SearchFilter) whereClause() (string, []any) {
	var conds []string
	var args []any

	if f.Query != "" {
		args = append(args, likeEscaper.Replace(f.Query))
		p := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE '%%' || $%d || '%%' OR category ILIKE '%%' || $%d || '%%' OR tags ILIKE '%%' || $%d || '%%')",
			p, p, p))
	}

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("lower(category) = lower($%d)", len(args)))
	}

	switch strings.ToLower(f.Resolution) {
	case "":
	case "4k":
		conds = append(conds, "(width >= 3840 OR height >= 2160)")
	case "8k":
		conds = append(conds, "(width >= 7680 OR height >= 4320)")
	default:
		args = append(args, f.Resolution)
		conds = append(conds, fmt.Sprintf("lower(resolution_label) = lower($%d)", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type WallpaperRepository struct {
	pool *pgxpool.Pool
}

func NewWallpaperRepository(pool *pgxpool.Pool) *WallpaperRepository {
	return &WallpaperRepository{pool: pool}
}

func (r *WallpaperRepository) Create(ctx context.Context, wp models.Wallpaper) error {
	const query = `
		INSERT INTO wallpapers (
			id, title, slug, external_media_id, view_url, download_url, mime_type,
			width, height, size_bytes, category, tags, device, resolution_label,
			downloads, is_featured, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		wp.ID,
		wp.Title,
		wp.Slug,
		wp.ExternalMediaID,
		wp.ViewURL,
		wp.DownloadURL,
		wp.MimeType,
		wp.Width,
		wp.Height,
		wp.SizeBytes,
		wp.Category,
		wp.Tags,
		wp.Device,
		wp.ResolutionLabel,
		wp.Downloads,
		wp.IsFeatured,
	)
	return err
}

func (r *WallpaperRepository) GetBySlug(ctx context.Context, slug string) (models.Wallpaper, error) {
	query := `SELECT` + wallpaperColumns + ` FROM wallpapers WHERE slug = $1`

	row := r.pool.QueryRow(ctx, query, slug)
	wp, err := scanWallpaper(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Wallpaper{}, ErrWallpaperNotFound
		}
		return models.Wallpaper{}, err
	}
	return wp, nil
}

func (r *WallpaperRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM wallpapers WHERE slug = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *WallpaperRepository) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]models.Wallpaper, error) {
	where, args := filter.whereClause()
	query := fmt.Sprintf(
		`SELECT%s FROM wallpapers%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		wallpaperColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWallpapers(rows)
}

func (r *WallpaperRepository) CountSearch(ctx context.Context, filter SearchFilter) (int, error) {
	where, args := filter.whereClause()
	query := `SELECT COUNT(*) FROM wallpapers` + where

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Related returns wallpapers sharing a category, most downloaded first.
func (r *WallpaperRepository) Related(ctx context.Context, category string, excludeSlug string, limit int) ([]models.Wallpaper, error) {
	query := `SELECT` + wallpaperColumns + `
		FROM wallpapers
		WHERE category = $1 AND slug != $2
		ORDER BY downloads DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, category, excludeSlug, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWallpapers(rows)
}

// IncrementDownloads bumps the counter by one atomically and returns
// the updated record.
func (r *WallpaperRepository) IncrementDownloads(ctx context.Context, slug string) (models.Wallpaper, error) {
	query := `
		UPDATE wallpapers
		SET downloads = downloads + 1, updated_at = NOW()
		WHERE slug = $1
		RETURNING` + wallpaperColumns

	row := r.pool.QueryRow(ctx, query, slug)
	wp, err := scanWallpaper(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Wallpaper{}, ErrWallpaperNotFound
		}
		return models.Wallpaper{}, err
	}
	return wp, nil
}

func scanWallpaper(row pgx.Row) (models.Wallpaper, error) {
	var wp models.Wallpaper
	err := row.Scan(
		&wp.ID,
		&wp.Title,
		&wp.Slug,
		&wp.ExternalMediaID,
		&wp.ViewURL,
		&wp.DownloadURL,
		&wp.MimeType,
		&wp.Width,
		&wp.Height,
		&wp.SizeBytes,
		&wp.Category,
		&wp.Tags,
		&wp.Device,
		&wp.ResolutionLabel,
		&wp.Downloads,
		&wp.IsFeatured,
		&wp.CreatedAt,
		&wp.UpdatedAt,
	)
	return wp, err
}

func collectWallpapers(rows pgx.Rows) ([]models.Wallpaper, error) {
	var wallpapers []models.Wallpaper
	for rows.Next() {
		wp, err := scanWallpaper(rows)
		if err != nil {
			return nil, err
		}
		wallpapers = append(wallpapers, wp)
	}
	return wallpapers, rows.Err()
}
