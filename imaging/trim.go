// Package imaging prepares signature and stamp images for embedding into
// generated documents: auto-cropping transparent margins, compositing a
// stamp over a signature, and resolving name-addressed image files with
// diagnostic placeholders instead of errors.
package imaging

import (
	"image"
	"image/draw"
)

// Trim crops an image to the bounding box of its non-transparent pixels.
// Fully transparent or nil images are returned unchanged, as is anything
// with no transparent margin. Trimming an already-trimmed image is a no-op.
func Trim(img image.Image) image.Image {
	if img == nil {
		return img
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.NRGBA)
	if !ok {
		rgba = image.NewNRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}

	bbox, ok := alphaBounds(rgba)
	if !ok || bbox == bounds {
		return img
	}

	return rgba.SubImage(bbox)
}

// alphaBounds computes the bounding box of pixels with non-zero alpha.
// The second return is false when every pixel is transparent.
func alphaBounds(img *image.NRGBA) (image.Rectangle, bool) {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		rowStart := img.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			alpha := img.Pix[rowStart+(x-bounds.Min.X)*4+3]
			if alpha == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}

	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
