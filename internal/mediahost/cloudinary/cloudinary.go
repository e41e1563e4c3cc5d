package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"wallcove/internal/config"
	"wallcove/internal/mediahost"
)

const (
	defaultAPIBase      = "https://api.cloudinary.com"
	defaultDeliveryBase = "https://res.cloudinary.com"
)

// Client talks to the Cloudinary upload and delivery APIs.
type Client struct {
	cloudName    string
	apiKey       string
	apiSecret    string
	apiBase      string
	deliveryBase string
	http         *http.Client
}

type Option func(*Client)

// WithAPIBase overrides the upload API endpoint.
func WithAPIBase(base string) Option {
	return func(c *Client) { c.apiBase = strings.TrimSuffix(base, "/") }
}

// WithDeliveryBase overrides the delivery URL host.
func WithDeliveryBase(base string) Option {
	return func(c *Client) { c.deliveryBase = strings.TrimSuffix(base, "/") }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

func New(cfg config.CloudinaryConfig, opts ...Option) *Client {
	c := &Client{
		cloudName:    cfg.CloudName,
		apiKey:       cfg.APIKey,
		apiSecret:    cfg.APISecret,
		apiBase:      defaultAPIBase,
		deliveryBase: defaultDeliveryBase,
		http:         &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	Format    string `json:"format"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the image bytes as a signed multipart request to the
// image upload endpoint.
func (c *Client) Upload(ctx context.Context, data []byte, opts mediahost.UploadOptions) (mediahost.Asset, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	if opts.Folder != "" {
		params["folder"] = opts.Folder
	}
	if opts.Quality != "" {
		params["quality"] = opts.Quality
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return mediahost.Asset{}, fmt.Errorf("write field %s: %w", key, err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return mediahost.Asset{}, fmt.Errorf("write api key: %w", err)
	}
	if err := writer.WriteField("signature", signParams(params, c.apiSecret)); err != nil {
		return mediahost.Asset{}, fmt.Errorf("write signature: %w", err)
	}

	part, err := writer.CreateFormFile("file", "file")
	if err != nil {
		return mediahost.Asset{}, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return mediahost.Asset{}, fmt.Errorf("write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return mediahost.Asset{}, fmt.Errorf("close multipart: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.apiBase, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return mediahost.Asset{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return mediahost.Asset{}, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return mediahost.Asset{}, fmt.Errorf("read response: %w", err)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return mediahost.Asset{}, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return mediahost.Asset{}, fmt.Errorf("upload failed: %s", msg)
	}

	return mediahost.Asset{
		PublicID:  parsed.PublicID,
		SecureURL: parsed.SecureURL,
		Width:     parsed.Width,
		Height:    parsed.Height,
		SizeBytes: parsed.Bytes,
		Format:    parsed.Format,
	}, nil
}

// BuildURL renders a delivery URL with the transformation chain as
// slash-separated components.
func (c *Client) BuildURL(publicID string, chain ...mediahost.Transformation) string {
	segments := []string{c.deliveryBase, c.cloudName, "image", "upload"}
	for _, t := range chain {
		if component := renderTransformation(t); component != "" {
			segments = append(segments, component)
		}
	}
	segments = append(segments, publicID)
	return strings.Join(segments, "/")
}

func renderTransformation(t mediahost.Transformation) string {
	var parts []string
	if t.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", t.Height))
	}
	if t.Crop != "" {
		parts = append(parts, "c_"+t.Crop)
	}
	if t.Quality != "" {
		parts = append(parts, "q_"+t.Quality)
	}
	if t.FetchFormat != "" {
		parts = append(parts, "f_"+t.FetchFormat)
	}
	return strings.Join(parts, ",")
}

// signParams computes the API signature: the SHA-1 hex digest of the
// sorted key=value pairs joined with '&', followed by the API secret.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
