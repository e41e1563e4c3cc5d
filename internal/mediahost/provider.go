package mediahost

import "context"

// Asset is what a hosting provider hands back for an uploaded image.
// Width and Height may be zero when the provider could not determine
// them; callers are expected to fall back to decoding the bytes.
type Asset struct {
	PublicID  string
	SecureURL string
	Width     int
	Height    int
	SizeBytes int64
	Format    string
}

type UploadOptions struct {
	Folder  string
	Quality string
}

// Transformation describes one delivery-URL transformation component.
// Zero-valued fields are omitted from the rendered component.
type Transformation struct {
	Width       int
	Height      int
	Crop        string
	Quality     string
	FetchFormat string
}

// Provider is the narrow seam between the catalog and the image host,
// so catalog logic stays testable without network access.
type Provider interface {
	Upload(ctx context.Context, data []byte, opts UploadOptions) (Asset, error)
	BuildURL(publicID string, chain ...Transformation) string
}
