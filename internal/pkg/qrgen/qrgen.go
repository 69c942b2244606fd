// Package qrgen encodes verification URLs as QR code images.
package qrgen

import (
	"context"

	"github.com/skip2/go-qrcode"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/metrics"
)

// Encoder produces a PNG image for the given payload. Implementations must be
// safe for concurrent use; the renderer treats a failed encode as a local,
// recoverable condition.
type Encoder interface {
	Encode(ctx context.Context, payload string, size int) ([]byte, error)
}

// PNGEncoder encodes QR codes with medium error recovery.
type PNGEncoder struct{}

// NewPNGEncoder creates a PNG QR encoder.
func NewPNGEncoder() *PNGEncoder {
	return &PNGEncoder{}
}

// Encode returns PNG bytes for payload at size x size pixels.
func (e *PNGEncoder) Encode(ctx context.Context, payload string, size int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// qrcode.Medium recovers up to 15% damage, enough for print-and-scan
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		metrics.QREncodeTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.QREncodeTotal.WithLabelValues("success").Inc()
	return png, nil
}
