package imaging

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver locates image assets by explicit path or bare name (typically a
// person's full name) under an asset directory, and produces trimmed
// derivative files for embedding. Resolution never fails hard: a missing or
// unreadable asset yields a diagnostic placeholder string that is rendered
// into the document where the image would have been.
type Resolver struct {
	// Dir is the asset directory searched for name-addressed images and
	// used to store derivatives.
	Dir string
}

// Probed extensions for bare-name lookups, in order.
var probeExtensions = []string{"", ".png", ".jpg", ".jpeg"}

// Resolve locates the backing file for a name or path. It tries the literal
// path, then the asset dir with each probe extension. On a miss it returns
// a diagnostic placeholder instead of a path.
func (r *Resolver) Resolve(nameOrPath string) (path string, diag string) {
	if nameOrPath == "" {
		return "", "[ПУСТОЕ ИМЯ]"
	}

	if fileExists(nameOrPath) {
		return nameOrPath, ""
	}

	base := filepath.Join(r.Dir, nameOrPath)
	for _, ext := range probeExtensions {
		if fileExists(base + ext) {
			return base + ext, ""
		}
	}

	return "", fmt.Sprintf("[НЕТ ФАЙЛА: %s]", nameOrPath)
}

// Embeddable resolves an image for document embedding, optionally producing
// a trimmed derivative. The returned path points at the file to embed; a
// non-empty diag means resolution or processing failed and the diagnostic
// text should be rendered in place of the image.
//
// Already-processed artifacts (basename carrying the "temp" prefix marker)
// are embedded as-is even when trimming is requested.
func (r *Resolver) Embeddable(nameOrPath string, trim bool) (path string, diag string) {
	path, diag = r.Resolve(nameOrPath)
	if diag != "" {
		return "", diag
	}

	if !trim || strings.Contains(filepath.Base(path), "temp") {
		return path, ""
	}

	derived, err := r.trimmedDerivative(path)
	if err != nil {
		return "", fmt.Sprintf("[ОШИБКА ОБРАБОТКИ: %v]", err)
	}
	return derived, ""
}

// trimmedDerivative produces (or reuses) the trimmed copy of a source
// image. Derivatives are keyed by a hash of the source content plus the
// operation, so an updated source file gets a fresh derivative while
// repeated runs over unchanged inputs reuse the cached file.
func (r *Resolver) trimmedDerivative(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	key := derivativeKey(data, "trim")
	out := filepath.Join(r.Dir, fmt.Sprintf("trimmed_%s.png", key))
	if fileExists(out) {
		return out, nil
	}

	img, err := loadImage(path)
	if err != nil {
		return "", err
	}
	if err := savePNG(out, Trim(img)); err != nil {
		return "", err
	}
	return out, nil
}

// derivativeKey derives the cache key for a processed image from the source
// bytes and the operation parameters.
func derivativeKey(content []byte, op string) string {
	h := sha1.New()
	h.Write(content)
	h.Write([]byte(op))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
