//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	client, err := New()
	if err == nil {
		t.Error("expected error from New() when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("expected nil client when OCR is disabled")
	}
}

func TestStubOperationsFail(t *testing.T) {
	c := &Client{}
	if _, err := c.Recognize(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize: %v", err)
	}
	if _, err := c.ExtractText("scan.png"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("ExtractText: %v", err)
	}
	if err := c.SetLanguage(DefaultLanguages); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage: %v", err)
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}
