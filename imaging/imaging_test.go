package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testImage builds an NRGBA image with an opaque block at the given
// rectangle inside transparent margins.
func testImage(w, h int, opaque image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := opaque.Min.Y; y < opaque.Max.Y; y++ {
		for x := opaque.Min.X; x < opaque.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
}

func TestTrimCropsTransparentMargins(t *testing.T) {
	img := testImage(100, 80, image.Rect(20, 10, 60, 50))

	trimmed := Trim(img)
	b := trimmed.Bounds()
	if b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("trimmed bounds = %dx%d, want 40x40", b.Dx(), b.Dy())
	}
}

func TestTrimIdempotent(t *testing.T) {
	img := testImage(100, 80, image.Rect(20, 10, 60, 50))

	once := Trim(img)
	twice := Trim(once)
	if once.Bounds().Size() != twice.Bounds().Size() {
		t.Errorf("second trim changed bounds: %v -> %v", once.Bounds(), twice.Bounds())
	}
}

func TestTrimFullyTransparentUnchanged(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	trimmed := Trim(img)
	if trimmed.Bounds() != img.Bounds() {
		t.Errorf("fully transparent image was cropped: %v", trimmed.Bounds())
	}
}

func TestTrimNilPassthrough(t *testing.T) {
	if got := Trim(nil); got != nil {
		t.Errorf("Trim(nil) = %v, want nil", got)
	}
}

func TestOverlayWithoutStamp(t *testing.T) {
	dir := t.TempDir()
	signPath := filepath.Join(dir, "sign.png")
	writePNG(t, signPath, testImage(100, 40, image.Rect(10, 5, 90, 35)))

	out, err := Overlay(dir, signPath, "")
	if err != nil {
		t.Fatalf("Overlay() unexpected error: %v", err)
	}
	if filepath.Base(out) != trimmedSignArtifact {
		t.Errorf("artifact = %s, want %s", filepath.Base(out), trimmedSignArtifact)
	}

	img, err := loadImage(out)
	if err != nil {
		t.Fatalf("loading artifact: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 30 {
		t.Errorf("artifact bounds = %v, want trimmed 80x30", img.Bounds())
	}
}

func TestOverlayWithStamp(t *testing.T) {
	dir := t.TempDir()
	signPath := filepath.Join(dir, "sign.png")
	stampPath := filepath.Join(dir, "stamp.png")
	writePNG(t, signPath, testImage(200, 100, image.Rect(0, 0, 200, 100)))
	writePNG(t, stampPath, testImage(120, 120, image.Rect(0, 0, 120, 120)))

	out, err := Overlay(dir, signPath, stampPath)
	if err != nil {
		t.Fatalf("Overlay() unexpected error: %v", err)
	}
	if filepath.Base(out) != comboArtifact {
		t.Errorf("artifact = %s, want %s", filepath.Base(out), comboArtifact)
	}

	img, err := loadImage(out)
	if err != nil {
		t.Fatalf("loading artifact: %v", err)
	}

	// Stamp height = max(1.3*100, 150) = 150, square stamp so width 150.
	// Canvas: w = max(200, 120+150)+10 = 280, h = max(100,150)+10 = 160.
	if img.Bounds().Dx() != 280 || img.Bounds().Dy() != 160 {
		t.Errorf("canvas = %dx%d, want 280x160", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestOverlayMissingSignatureReturnsOriginalPath(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "none.png")

	out, err := Overlay(dir, missing, "")
	if err == nil {
		t.Error("expected error for missing signature")
	}
	if out != missing {
		t.Errorf("fallback path = %q, want original %q", out, missing)
	}
}

func TestResolveProbesExtensions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Иванов Иван Иванович.png"), testImage(10, 10, image.Rect(0, 0, 10, 10)))
	r := &Resolver{Dir: dir}

	path, diag := r.Resolve("Иванов Иван Иванович")
	if diag != "" {
		t.Fatalf("Resolve() diag = %q", diag)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("resolved path = %q, want .png probe", path)
	}
}

func TestResolveMissingYieldsDiagnostic(t *testing.T) {
	r := &Resolver{Dir: t.TempDir()}

	_, diag := r.Resolve("Петров Петр Петрович")
	if !strings.Contains(diag, "НЕТ ФАЙЛА") || !strings.Contains(diag, "Петров Петр Петрович") {
		t.Errorf("diag = %q, want missing-file placeholder naming the asset", diag)
	}
}

func TestResolveEmptyName(t *testing.T) {
	r := &Resolver{Dir: t.TempDir()}
	_, diag := r.Resolve("")
	if diag != "[ПУСТОЕ ИМЯ]" {
		t.Errorf("diag = %q", diag)
	}
}

func TestEmbeddableProducesCachedDerivative(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sign.png")
	writePNG(t, src, testImage(100, 40, image.Rect(10, 5, 90, 35)))
	r := &Resolver{Dir: dir}

	first, diag := r.Embeddable(src, true)
	if diag != "" {
		t.Fatalf("Embeddable() diag = %q", diag)
	}
	if !strings.HasPrefix(filepath.Base(first), "trimmed_") {
		t.Errorf("derivative name = %q, want trimmed_ prefix", filepath.Base(first))
	}

	info1, err := os.Stat(first)
	if err != nil {
		t.Fatalf("stat derivative: %v", err)
	}

	second, _ := r.Embeddable(src, true)
	if second != first {
		t.Errorf("repeat derivative = %q, want cached %q", second, first)
	}
	info2, _ := os.Stat(second)
	if !info2.ModTime().Equal(info1.ModTime()) {
		t.Error("derivative was rewritten instead of reused")
	}
}

func TestEmbeddableChangedSourceGetsFreshDerivative(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sign.png")
	writePNG(t, src, testImage(100, 40, image.Rect(10, 5, 90, 35)))
	r := &Resolver{Dir: dir}

	first, _ := r.Embeddable(src, true)

	writePNG(t, src, testImage(100, 40, image.Rect(0, 0, 50, 20)))
	second, diag := r.Embeddable(src, true)
	if diag != "" {
		t.Fatalf("Embeddable() diag = %q", diag)
	}
	if second == first {
		t.Error("changed source reused stale derivative")
	}
}

func TestEmbeddableSkipsTrimForTempArtifacts(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "temp_combo.png")
	writePNG(t, src, testImage(50, 50, image.Rect(10, 10, 40, 40)))
	r := &Resolver{Dir: dir}

	path, diag := r.Embeddable(src, true)
	if diag != "" {
		t.Fatalf("Embeddable() diag = %q", diag)
	}
	if path != src {
		t.Errorf("path = %q, want temp artifact untouched", path)
	}
}

func TestEmbeddableMissingAssetDiagnostic(t *testing.T) {
	r := &Resolver{Dir: t.TempDir()}
	path, diag := r.Embeddable("Сидоров", true)
	if path != "" || diag == "" {
		t.Errorf("Embeddable(missing) = %q,%q want empty path and diagnostic", path, diag)
	}
}
