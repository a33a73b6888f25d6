//go:build ocr

// Package ocr extracts text from scanned registry statements (выписки
// ЕГРЮЛ) so entity-field extraction can work from photographs and scans,
// not just digital documents.
//
// This implementation wraps the Tesseract engine via gosseract and needs
// Tesseract installed on the system. On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-rus
package ocr

import (
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages covers registry statements: Russian body text with
// Latin-script codes and abbreviations mixed in.
const DefaultLanguages = "rus+eng"

// Client wraps Tesseract for registry statement recognition.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client configured for Russian registry documents.
// Close it when done to release engine resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(DefaultLanguages); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting OCR languages: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources. Safe on a nil client.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Recognize performs OCR on image bytes (PNG, JPEG, TIFF) and returns the
// recognized text trimmed of surrounding whitespace.
func (c *Client) Recognize(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ExtractText recognizes the text of one scanned page from a file.
func (c *Client) ExtractText(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("reading scan %s: %w", imagePath, err)
	}
	return c.Recognize(data)
}

// SetLanguage overrides the recognition languages. Multiple languages are
// "+" separated, e.g. "rus+eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
