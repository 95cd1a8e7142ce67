// Package qrcode generates PNG QR codes with base64 data-URI support, used
// for order tracking links on receipts.
package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the pixel size used when callers pass a non-positive size.
// 256px scans reliably on mobile devices.
const DefaultSize = 256

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("qrcode: empty content")

// Generate returns a PNG QR code encoding content at the given pixel size.
// Medium error correction balances data capacity with damage recovery.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}
	return png, nil
}

// GenerateBase64Image returns the QR code as a data URI suitable for direct
// embedding in HTML.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
