// Package render is the certificate rendering engine: it composes a
// deterministic one-page landscape layout from a certificate record and
// draws it to two targets, a paginated PDF document and an HTML preview,
// which share the block-list contract.
package render

import (
	"strings"
	"time"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/qrgen"
)

// Engine renders certificates. It owns nothing beyond the duration of one
// render call and keeps no cache; concurrent calls are independent.
type Engine struct {
	qr       qrgen.Encoder
	issuer   Issuer
	baseURL  string
	fontPath string
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the issue-date clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithUnicodeFont sets a UTF-8 TTF used for non-latin headline scripts in the
// PDF target. When unset or unreadable the PDF falls back to the english
// headline strings.
func WithUnicodeFont(path string) Option {
	return func(e *Engine) { e.fontPath = path }
}

// NewEngine creates a rendering engine. baseURL is the public origin the
// verification URL is built on, without a trailing slash.
func NewEngine(qr qrgen.Encoder, issuer Issuer, baseURL string, opts ...Option) *Engine {
	e := &Engine{
		qr:      qr,
		issuer:  issuer,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportFilename is the download name for a recipient's certificate:
// whitespace collapsed to underscores plus the _Certificate suffix.
func ExportFilename(recipient string) string {
	name := strings.Join(strings.Fields(recipient), "_")
	if name == "" {
		name = "Unnamed"
	}
	return name + "_Certificate.pdf"
}
