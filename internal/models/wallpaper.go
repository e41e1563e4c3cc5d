package models

import "time"

type Device string

const (
	DevicePC     Device = "pc"
	DeviceMobile Device = "mobile"
)

// Categories is the closed set of catalog categories. An empty category is
// also valid and means "uncategorized".
var Categories = []string{
	"nature",
	"cityscape",
	"space",
	"fantasy",
	"games",
	"anime",
	"cars",
	"technology",
	"movies",
	"superheros",
	"other",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidDevice(device Device) bool {
	return device == DevicePC || device == DeviceMobile
}

type Wallpaper struct {
	ID              string
	Title           string
	Slug            string
	ExternalMediaID string
	ViewURL         string
	DownloadURL     string
	MimeType        string
	Width           *int
	Height          *int
	SizeBytes       *int64
	Category        string
	Tags            string
	Device          Device
	ResolutionLabel string
	Downloads       int64
	IsFeatured      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
