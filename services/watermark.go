package services

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// A4 proportions at roughly 150 dpi, used for the page-background canvas.
const (
	watermarkPageW = 1240
	watermarkPageH = 1754

	watermarkOpacity = 0.06
	watermarkAngle   = -30 // degrees
)

// EnsureWatermark returns the path of the low-opacity watermark image
// derived from the company logo, generating and caching it on first
// use. Subsequent calls reuse the cached file.
func EnsureWatermark(logoPath, cachePath string) (string, error) {
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	logoFile, err := os.Open(logoPath)
	if err != nil {
		return "", fmt.Errorf("open logo: %w", err)
	}
	defer logoFile.Close()

	logo, _, err := image.Decode(logoFile)
	if err != nil {
		return "", fmt.Errorf("decode logo: %w", err)
	}

	faded := fadeAndScale(logo, watermarkPageW*6/10, watermarkOpacity)

	// Compose the faded logo diagonally across a white page-sized canvas.
	dc := gg.NewContext(watermarkPageW, watermarkPageH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	cx, cy := float64(watermarkPageW)/2, float64(watermarkPageH)/2
	dc.RotateAbout(gg.Radians(watermarkAngle), cx, cy)
	dc.DrawImageAnchored(faded, int(cx), int(cy), 0.5, 0.5)

	out, err := os.Create(cachePath)
	if err != nil {
		return "", fmt.Errorf("create watermark cache: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, dc.Image()); err != nil {
		return "", fmt.Errorf("encode watermark: %w", err)
	}
	return cachePath, nil
}

// fadeAndScale resizes src to targetW preserving aspect ratio and
// multiplies its alpha channel down to the given opacity.
func fadeAndScale(src image.Image, targetW int, opacity float64) *image.NRGBA {
	b := src.Bounds()
	targetH := targetW * b.Dy() / b.Dx()
	if targetH < 1 {
		targetH = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(float64(dst.Pix[i]) * opacity)
	}
	return dst
}
