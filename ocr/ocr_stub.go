//go:build !ocr

// Package ocr extracts text from scanned registry statements (выписки
// ЕГРЮЛ) so entity-field extraction can work from photographs and scans,
// not just digital documents.
//
// This is the stub used when the "ocr" build tag is not set. All
// operations return ErrOCRNotEnabled. To enable recognition, rebuild with
// the tag and Tesseract installed:
//
//	go build -tags ocr
package ocr

import "errors"

// ErrOCRNotEnabled is returned when recognition is requested but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguages matches the OCR-enabled implementation.
const DefaultLanguages = "rus+eng"

// Client is a stub that fails every operation.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. Safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// Recognize returns ErrOCRNotEnabled.
func (c *Client) Recognize(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// ExtractText returns ErrOCRNotEnabled.
func (c *Client) ExtractText(imagePath string) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns ErrOCRNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
