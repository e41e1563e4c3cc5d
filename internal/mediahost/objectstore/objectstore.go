package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"wallcove/internal/config"
	"wallcove/internal/ids"
	"wallcove/internal/media/sniffer"
	"wallcove/internal/mediahost"
)

// Store is the self-hosted media host backend: originals in an
// S3-compatible bucket, no on-the-fly transformations. Dimensions are
// never reported, so uploads rely on the decode fallback.
type Store struct {
	client *minio.Client
	cfg    config.ObjectStoreConfig
}

func New(cfg config.ObjectStoreConfig) (*Store, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
		}
	}
	return nil
}

func (s *Store) Upload(ctx context.Context, data []byte, opts mediahost.UploadOptions) (mediahost.Asset, error) {
	result, err := sniffer.DetectHead(data)
	if err != nil {
		return mediahost.Asset{}, fmt.Errorf("detect type: %w", err)
	}

	objectKey := s.buildObjectKey(opts.Folder, string(result.Type))

	info, err := s.client.PutObject(ctx, s.cfg.Bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: result.MIME,
	})
	if err != nil {
		return mediahost.Asset{}, fmt.Errorf("put object: %w", err)
	}

	return mediahost.Asset{
		PublicID:  objectKey,
		SecureURL: s.publicURL(objectKey),
		SizeBytes: info.Size,
		Format:    string(result.Type),
	}, nil
}

// BuildURL serves originals only; transformation chains are ignored.
func (s *Store) BuildURL(publicID string, _ ...mediahost.Transformation) string {
	return s.publicURL(publicID)
}

func (s *Store) buildObjectKey(folder string, ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(folder, datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}

func (s *Store) publicURL(objectKey string) string {
	base := strings.TrimSuffix(s.cfg.Endpoint, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s", base, s.cfg.Bucket, objectKey)
}
