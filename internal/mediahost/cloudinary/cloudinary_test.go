package cloudinary_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallcove/internal/config"
	"wallcove/internal/mediahost"
	"wallcove/internal/mediahost/cloudinary"
)

func newTestClient(baseURL string) *cloudinary.Client {
	return cloudinary.New(config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "secret456",
	}, cloudinary.WithAPIBase(baseURL))
}

func TestUploadSendsSignedMultipart(t *testing.T) {
	var gotPath string
	var form map[string]string
	var fileBytes []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(32<<20))

		form = map[string]string{}
		for key, values := range r.MultipartForm.Value {
			form[key] = values[0]
		}

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		fileBytes = buf[:n]

		json.NewEncoder(w).Encode(map[string]any{
			"public_id":  "wallpapers/abc123",
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/wallpapers/abc123.jpg",
			"width":      2560,
			"height":     1440,
			"bytes":      98765,
			"format":     "jpg",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	asset, err := client.Upload(context.Background(), []byte("raw-image"), mediahost.UploadOptions{
		Folder:  "wallpapers",
		Quality: "auto:best",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1_1/demo/image/upload", gotPath)
	assert.Equal(t, []byte("raw-image"), fileBytes)
	assert.Equal(t, "key123", form["api_key"])
	assert.Equal(t, "wallpapers", form["folder"])
	assert.Equal(t, "auto:best", form["quality"])
	require.NotEmpty(t, form["timestamp"])

	// Signature is the SHA-1 of the sorted signed params plus the secret.
	payload := "folder=wallpapers&quality=auto:best&timestamp=" + form["timestamp"] + "secret456"
	sum := sha1.Sum([]byte(payload))
	assert.Equal(t, hex.EncodeToString(sum[:]), form["signature"])

	assert.Equal(t, "wallpapers/abc123", asset.PublicID)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/wallpapers/abc123.jpg", asset.SecureURL)
	assert.Equal(t, 2560, asset.Width)
	assert.Equal(t, 1440, asset.Height)
	assert.EqualValues(t, 98765, asset.SizeBytes)
	assert.Equal(t, "jpg", asset.Format)
}

func TestUploadSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Invalid image file"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Upload(context.Background(), []byte("bad"), mediahost.UploadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestBuildURL(t *testing.T) {
	client := newTestClient("http://unused")

	plain := client.BuildURL("wallpapers/abc123")
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/wallpapers/abc123", plain)

	chained := client.BuildURL("wallpapers/abc123",
		mediahost.Transformation{Width: 600, Height: 600, Crop: "limit"},
		mediahost.Transformation{Quality: "auto:low", FetchFormat: "auto"},
	)
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_600,h_600,c_limit/q_auto:low,f_auto/wallpapers/abc123",
		chained)

	preset := client.BuildURL("wallpapers/abc123",
		mediahost.Transformation{Width: 3840, Height: 2160, Crop: "fill"})
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_3840,h_2160,c_fill/wallpapers/abc123",
		preset)
}
