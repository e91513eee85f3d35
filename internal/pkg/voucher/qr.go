package voucher

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

// RenderQR encodes payload as a PNG QR code of size pixels.
func RenderQR(payload string, size int) ([]byte, error) {
	if size < MinQRSize || size > MaxQRSize {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
