package docxtpl

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Template is a parsed DOCX template. A Template is immutable; each Render
// call works on a private copy of the package parts, so one Template can
// render many documents without state leaking between them.
type Template struct {
	parts map[string][]byte
	order []string
}

// Open reads a DOCX template from a file.
func Open(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return OpenBytes(data)
}

// OpenBytes reads a DOCX template from memory.
func OpenBytes(data []byte) (*Template, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening template archive: %w", err)
	}

	t := &Template{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		t.parts[f.Name] = content
		t.order = append(t.order, f.Name)
	}

	if _, ok := t.parts["word/document.xml"]; !ok {
		return nil, fmt.Errorf("not a DOCX template: missing word/document.xml")
	}

	return t, nil
}

// Render resolves every placeholder in the template against ctx and returns
// the finished document as DOCX bytes.
func (t *Template) Render(ctx Context) ([]byte, error) {
	job := &renderJob{
		parts: make(map[string][]byte, len(t.parts)),
		order: append([]string(nil), t.order...),
	}
	for name, content := range t.parts {
		job.parts[name] = content
	}

	for _, name := range t.order {
		if !isRenderablePart(name) {
			continue
		}
		job.renderPart(name, ctx)
	}

	return job.bytes()
}

// isRenderablePart reports whether a package part carries template
// placeholders: the main document body plus headers and footers.
func isRenderablePart(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	if !strings.HasPrefix(name, "word/") || !strings.HasSuffix(name, ".xml") {
		return false
	}
	base := strings.TrimPrefix(name, "word/")
	return strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer")
}

// bytes reassembles the package parts into a DOCX archive, keeping the
// original entry order and appending parts added during rendering.
func (j *renderJob) bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	written := make(map[string]bool, len(j.order))
	for _, name := range j.order {
		if written[name] {
			continue
		}
		written[name] = true
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("writing part %s: %w", name, err)
		}
		if _, err := w.Write(j.parts[name]); err != nil {
			return nil, fmt.Errorf("writing part %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing document archive: %w", err)
	}
	return buf.Bytes(), nil
}
