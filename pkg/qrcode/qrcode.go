package qrcode

import (
	"encoding/base64"
	"fmt"

	qr "github.com/skip2/go-qrcode"

	"grocerz/internal/models"
)

// DefaultSize is the pixel width and height of generated QR images.
const DefaultSize = 256

// Encoder renders signed payload strings as QR code images. The payload
// passes through verbatim: an input the code cannot hold is an error, never
// a truncation, since a truncated payload would no longer verify.
type Encoder struct {
	size int
}

// NewEncoder creates an Encoder producing square images of the given pixel
// size. A non-positive size falls back to DefaultSize.
func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Encoder{size: size}
}

// Encode renders the payload as PNG bytes.
func (e *Encoder) Encode(payload string) ([]byte, error) {
	png, err := qr.Encode(payload, qr.Medium, e.size)
	if err != nil {
		return nil, &models.EncodingError{Err: fmt.Errorf("render QR code: %w", err)}
	}
	return png, nil
}

// EncodeDataURL renders the payload as a base64 PNG data URL for inline
// display.
func (e *Encoder) EncodeDataURL(payload string) (string, error) {
	png, err := e.Encode(payload)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
