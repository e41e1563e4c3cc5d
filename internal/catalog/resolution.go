package catalog

import "fmt"

// Threshold pairs for named resolution classes, checked top-down.
// Either dimension meeting its threshold qualifies.
var resolutionClasses = []struct {
	width  int
	height int
	label  string
}{
	{7680, 4320, "8K"},
	{3840, 2160, "4K"},
	{2560, 1440, "QHD"},
	{1920, 1080, "FHD"},
	{1280, 720, "HD"},
}

// ResolutionLabel classifies a wallpaper's dimensions into a named
// resolution class, falling back to the literal "WxH" below HD.
func ResolutionLabel(width, height int) string {
	for _, c := range resolutionClasses {
		if width >= c.width || height >= c.height {
			return c.label
		}
	}
	return fmt.Sprintf("%dx%d", width, height)
}

// AspectRatio returns the gcd-reduced "w:h" form, or "" when either
// dimension is missing.
func AspectRatio(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	g := gcd(width, height)
	return fmt.Sprintf("%d:%d", width/g, height/g)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
