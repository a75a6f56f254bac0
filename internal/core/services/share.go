package services

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
)

// Ensure ShareService implements the interface.
var _ driving.ShareService = (*ShareService)(nil)

// DefaultShareBase is used when no share base URL is configured.
const DefaultShareBase = "https://folio.pub/v"

// ShareService builds share URLs and QR codes for publications.
type ShareService struct {
	baseURL string
}

// NewShareService creates a share service. baseURL is the public viewer
// prefix; the publication ID is appended as the final path segment.
func NewShareService(baseURL string) *ShareService {
	if baseURL == "" {
		baseURL = DefaultShareBase
	}
	return &ShareService{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the public share URL for a publication.
func (s *ShareService) URL(id string) string {
	return s.baseURL + "/" + id
}

// QRCodePNG returns the share URL encoded as a QR code PNG of the given
// pixel size.
func (s *ShareService) QRCodePNG(id string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	code, err := s.encode(id)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("scaling QR code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding QR PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// QRCodeCells renders the share URL as a QR code using half-block
// characters, two modules per terminal row.
func (s *ShareService) QRCodeCells(id string) (string, error) {
	code, err := s.encode(id)
	if err != nil {
		return "", err
	}

	bounds := code.Bounds()
	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := isDark(code, x, y)
			bottom := y+1 < bounds.Max.Y && isDark(code, x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (s *ShareService) encode(id string) (barcode.Barcode, error) {
	code, err := qr.Encode(s.URL(id), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}
	return code, nil
}

func isDark(code barcode.Barcode, x, y int) bool {
	r, g, bl, _ := code.At(x, y).RGBA()
	return r == 0 && g == 0 && bl == 0
}
