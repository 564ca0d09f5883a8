package qr

import "github.com/skip2/go-qrcode"

// Generate renders the content as a PNG QR code of the given pixel size.
func Generate(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
