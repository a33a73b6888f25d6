package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register decoder
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Fixed artifact names for the per-run composited assets. They carry the
// "temp" prefix so the embeddable resolver never re-trims them.
const (
	comboArtifact       = "temp_combo.png"
	trimmedSignArtifact = "temp_sign_trimmed.png"
)

// Stamp geometry relative to the trimmed signature.
const (
	stampHeightFactor = 1.3 // stamp height = 1.3x signature height
	stampMinHeight    = 150 // but never smaller than this
	stampShiftFactor  = 0.6 // stamp starts at 0.6x signature width
	canvasMargin      = 10
)

// Overlay composites a stamp over a signature and persists the result in
// assetDir under a fixed artifact name, returning the artifact path. The
// signature is trimmed first; the stamp, when present, is trimmed, scaled
// and offset to overlap the signature's tail. Without a stamp the trimmed
// signature alone is persisted. On any failure the original signature path
// is returned so the caller still has something to embed.
func Overlay(assetDir, signPath, stampPath string) (string, error) {
	sign, err := loadImage(signPath)
	if err != nil {
		return signPath, fmt.Errorf("loading signature: %w", err)
	}
	sign = Trim(sign)

	if stampPath == "" {
		out := filepath.Join(assetDir, trimmedSignArtifact)
		if err := savePNG(out, sign); err != nil {
			return signPath, err
		}
		return out, nil
	}

	stamp, err := loadImage(stampPath)
	if err != nil {
		return signPath, fmt.Errorf("loading stamp: %w", err)
	}
	stamp = Trim(stamp)

	combined := composite(sign, stamp)
	out := filepath.Join(assetDir, comboArtifact)
	if err := savePNG(out, combined); err != nil {
		return signPath, err
	}
	return out, nil
}

// composite scales the stamp relative to the signature and draws both onto
// a transparent canvas, vertically centered, with the stamp shifted right
// so it overlaps the signature's tail.
func composite(sign, stamp image.Image) image.Image {
	signW := sign.Bounds().Dx()
	signH := sign.Bounds().Dy()

	targetH := int(float64(signH) * stampHeightFactor)
	if targetH < stampMinHeight {
		targetH = stampMinHeight
	}
	ratio := float64(targetH) / float64(stamp.Bounds().Dy())
	targetW := int(float64(stamp.Bounds().Dx()) * ratio)
	stamp = scale(stamp, targetW, targetH)

	shiftX := int(float64(signW) * stampShiftFactor)
	canvasW := max(signW, shiftX+targetW) + canvasMargin
	canvasH := max(signH, targetH) + canvasMargin

	canvas := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))

	ySign := (canvasH - signH) / 2
	draw.Draw(canvas, image.Rect(0, ySign, signW, ySign+signH), sign, sign.Bounds().Min, draw.Over)

	yStamp := (canvasH - targetH) / 2
	draw.Draw(canvas, image.Rect(shiftX, yStamp, shiftX+targetW, yStamp+targetH), stamp, stamp.Bounds().Min, draw.Over)

	return canvas
}

// scale resizes an image with Catmull-Rom resampling.
func scale(img image.Image, w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating asset dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
