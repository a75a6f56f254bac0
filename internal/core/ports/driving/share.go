package driving

// ShareService builds share surfaces for publications.
type ShareService interface {
	// URL returns the public share URL for a publication.
	URL(id string) string

	// QRCodePNG returns the share URL encoded as a QR code PNG.
	QRCodePNG(id string, size int) ([]byte, error)

	// QRCodeCells returns the share URL encoded as a QR code rendered
	// with terminal block characters.
	QRCodeCells(id string) (string, error)
}
