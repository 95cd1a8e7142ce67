package order

import (
	"net/url"
	"strings"

	"github.com/cbcbeauty/storefront/pkg/qrcode"
)

// TrackingURL builds the public link for an order's tracking page.
func TrackingURL(baseURL, orderID string) string {
	return strings.TrimSuffix(baseURL, "/") + "/orders/" + url.PathEscape(orderID)
}

// TrackingQR returns a PNG QR code encoding the order's tracking link,
// printed on receipts so customers can follow delivery from their phone.
func TrackingQR(baseURL, orderID string, size int) ([]byte, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}
	return qrcode.Generate(TrackingURL(baseURL, orderID), size)
}
