package landing

import (
	"fmt"
	"strings"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
)

// QRSize is the rendered QR edge length in pixels.
const QRSize = 256

// Encoder renders content as a PNG QR code of the given size.
type Encoder func(content string, size int) ([]byte, error)

// EncodePNG encodes with high error correction so the code survives print
// and projector glare.
func EncodePNG(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.High, size)
}

// service caches the PNG for the last payload; the payload only changes when
// the public base URL is derived from a different request host.
type service struct {
	encode Encoder

	mu      sync.Mutex
	content string
	png     []byte
}

func newService(encode Encoder) *service {
	return &service{encode: encode}
}

func (s *service) qrPNG(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("qr payload is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.png != nil && s.content == content {
		return s.png, nil
	}
	png, err := s.encode(content, QRSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	s.content, s.png = content, png
	return png, nil
}
