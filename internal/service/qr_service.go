package service

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCode is the payload of GET /api/qr-code
type QRCode struct {
	QRCode  string `json:"qr_code"`
	MenuURL string `json:"menu_url"`
}

// QRService renders the public menu URL as a QR code
type QRService struct {
	menuURL string
	size    int
}

// NewQRService creates a new QR service
func NewQRService(menuURL string) *QRService {
	return &QRService{menuURL: menuURL, size: 370}
}

// PNG returns the QR code image
func (s *QRService) PNG() ([]byte, error) {
	png, err := qrcode.Encode(s.menuURL, qrcode.Medium, s.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// Generate returns the QR code as base64 PNG together with the encoded URL
func (s *QRService) Generate() (*QRCode, error) {
	png, err := s.PNG()
	if err != nil {
		return nil, err
	}
	return &QRCode{
		QRCode:  base64.StdEncoding.EncodeToString(png),
		MenuURL: s.menuURL,
	}, nil
}
