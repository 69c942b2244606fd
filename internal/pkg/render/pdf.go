package render

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
)

// Body band policy: at most six wrapped lines at the base size; overflow
// steps the font down once, then truncates with an ellipsis. Blocks below
// the band never move.
const (
	bodyBaseSize     = 12.0
	bodyBaseLines    = 6
	bodySmallSize    = 10.0
	bodySmallLeading = 6.0
	bodySmallLines   = 7
)

const unicodeFontFamily = "certigen-unicode"

// RenderPDF composes the layout for req and draws it as a single landscape
// A4 PDF page. QR encoding failure degrades the verification region to a
// labelled placeholder; a missing logo or unicode font is logged and
// skipped. The render itself only fails on document assembly errors.
func (e *Engine) RenderPDF(ctx context.Context, req Request) ([]byte, error) {
	lay := e.Compose(req)

	var qrPNG []byte
	if e.qr != nil {
		png, err := e.qr.Encode(ctx, lay.VerifyURL, 512)
		if err != nil {
			logger.Warn("QR encoding failed, degrading verification region",
				zap.String("cert_id", lay.CertID),
				zap.Error(err),
			)
		} else {
			qrPNG = png
		}
	}

	return e.drawPDF(lay, qrPNG)
}

// pdfTarget wraps the gofpdf document with the font fallbacks the engine
// needs for non-latin text.
type pdfTarget struct {
	pdf       *gofpdf.Fpdf
	tr        func(string) string
	style     Style
	unicodeOK bool
}

func (e *Engine) drawPDF(lay *Layout, qrPNG []byte) ([]byte, error) {
	style := lay.Style
	g := style.Geometry

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	t := &pdfTarget{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		style: style,
	}

	// Register the UTF-8 font if one is configured and readable; headline
	// scripts fall back to english without it.
	if e.fontPath != "" {
		if _, err := os.Stat(e.fontPath); err != nil {
			logger.Warn("Unicode font not found, non-latin headlines fall back to english",
				zap.String("path", e.fontPath),
			)
		} else {
			pdf.AddUTF8Font(unicodeFontFamily, "", e.fontPath)
			if pdf.Err() {
				logger.Warn("Failed to load unicode font", zap.String("path", e.fontPath), zap.Error(pdf.Error()))
				pdf.ClearError()
			} else {
				t.unicodeOK = true
			}
		}
	}

	t.drawFrame(g)
	e.drawLogo(t, g)

	for _, b := range lay.Blocks {
		switch b.Kind {
		case BlockHeadline:
			t.drawHeadline(g, b)
		case BlockRecipient:
			t.drawRecipient(g, b)
		case BlockInstitution:
			t.drawInstitution(g, b)
		case BlockBody:
			t.drawBody(g, b)
		case BlockActivityBadge:
			t.drawBadge(g, b)
		case BlockSignatureLeft:
			t.drawSignature(g, b, 60, 120)
		case BlockSignatureRight:
			t.drawSignature(g, b, g.PageW-120, g.PageW-60)
		case BlockFooter:
			t.drawFooter(g, b)
		case BlockVerification:
			t.drawVerification(g, b, qrPNG)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to assemble document: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}

// cell draws one line of text, picking the unicode face for non-latin
// content when available.
func (t *pdfTarget) cell(x, y, w float64, s, fontStyle string, size float64, align string) {
	family := t.style.FontFamily
	raw := false
	if !isLatin(s) && t.unicodeOK {
		family, fontStyle, raw = unicodeFontFamily, "", true
	}
	t.pdf.SetFont(family, fontStyle, size)
	txt := s
	if !raw {
		txt = t.tr(s)
	}
	t.pdf.SetXY(x, y)
	t.pdf.CellFormat(w, size*0.42, txt, "", 0, align, false, 0, "")
}

func (t *pdfTarget) centered(y float64, s, fontStyle string, size float64, g Geometry) {
	t.cell(g.Margin, y, g.PageW-2*g.Margin, s, fontStyle, size, "C")
}

func (t *pdfTarget) setDraw(c RGB) { t.pdf.SetDrawColor(c.R, c.G, c.B) }
func (t *pdfTarget) setFill(c RGB) { t.pdf.SetFillColor(c.R, c.G, c.B) }
func (t *pdfTarget) setText(c RGB) { t.pdf.SetTextColor(c.R, c.G, c.B) }

func (t *pdfTarget) drawFrame(g Geometry) {
	s := t.style

	if s.Background != (RGB{255, 255, 255}) {
		t.setFill(s.Background)
		t.pdf.Rect(0, 0, g.PageW, g.PageH, "F")
	}

	t.setDraw(s.BorderColor)
	t.pdf.SetLineWidth(s.BorderWidth)
	t.pdf.Rect(g.Margin, g.Margin, g.PageW-2*g.Margin, g.PageH-2*g.Margin, "D")

	if s.DoubleBorder {
		t.pdf.SetLineWidth(s.BorderWidth / 3)
		inset := g.Margin + 3
		t.pdf.Rect(inset, inset, g.PageW-2*inset, g.PageH-2*inset, "D")
	}

	if s.CornerMarks {
		t.pdf.SetLineWidth(s.BorderWidth)
		const arm = 8.0
		inset := g.Margin + 4
		corners := [][2]float64{
			{inset, inset},
			{g.PageW - inset, inset},
			{inset, g.PageH - inset},
			{g.PageW - inset, g.PageH - inset},
		}
		for _, c := range corners {
			dx, dy := arm, arm
			if c[0] > g.PageW/2 {
				dx = -arm
			}
			if c[1] > g.PageH/2 {
				dy = -arm
			}
			t.pdf.Line(c[0], c[1], c[0]+dx, c[1])
			t.pdf.Line(c[0], c[1], c[0], c[1]+dy)
		}
	}
}

func (e *Engine) drawLogo(t *pdfTarget, g Geometry) {
	if e.issuer.LogoPath == "" {
		return
	}
	if _, err := os.Stat(e.issuer.LogoPath); err != nil {
		logger.Warn("Logo asset missing, skipping", zap.String("path", e.issuer.LogoPath))
		return
	}
	const logoH = 16.0
	opts := gofpdf.ImageOptions{ReadDpi: true}
	t.pdf.ImageOptions(e.issuer.LogoPath, g.PageW/2-logoH/2, g.Margin+6, 0, logoH, false, opts, 0, "")
	if t.pdf.Err() {
		logger.Warn("Failed to place logo, skipping", zap.Error(t.pdf.Error()))
		t.pdf.ClearError()
	}
}

func (t *pdfTarget) drawHeadline(g Geometry, b Block) {
	title, subtitle := b.Lines[0], b.Lines[1]
	if (!isLatin(title) || !isLatin(subtitle)) && !t.unicodeOK {
		// Localized chrome needs the embedded font; degrade to english
		fallback := ResolveHeadline(LanguageEnglish)
		title, subtitle = fallback.Title, fallback.Subtitle
	}

	t.setText(t.style.HeadlineColor)
	t.centered(g.HeadlineY-6, title, "B", 30, g)
	t.centered(g.SubheadY-5, subtitle, "B", 24, g)

	// Accent rule between headline and recipient
	t.setDraw(t.style.AccentColor)
	t.pdf.SetLineWidth(1)
	t.pdf.Line(g.PageW/2-30, g.RuleY, g.PageW/2+30, g.RuleY)
}

func (t *pdfTarget) drawRecipient(g Geometry, b Block) {
	t.setText(t.style.HeadlineColor)
	t.centered(g.RecipientY-5, b.Lines[0], "B", 24, g)
}

func (t *pdfTarget) drawInstitution(g Geometry, b Block) {
	t.setText(t.style.TextColor)
	t.centered(g.InstitutionY-3, b.Lines[0], "I", 14, g)
}

func (t *pdfTarget) drawBody(g Geometry, b Block) {
	body := b.Lines[0]
	contentW := g.PageW - 6*g.Margin

	t.setText(t.style.TextColor)

	size, leading, maxLines := bodyBaseSize, g.BodyLeading, bodyBaseLines
	t.pdf.SetFont(t.style.FontFamily, "", size)
	lines := t.pdf.SplitText(t.tr(body), contentW)
	if len(lines) > maxLines {
		size, leading, maxLines = bodySmallSize, bodySmallLeading, bodySmallLines
		t.pdf.SetFont(t.style.FontFamily, "", size)
		lines = t.pdf.SplitText(t.tr(body), contentW)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		if len(last) > 3 {
			last = last[:len(last)-3]
		}
		lines[maxLines-1] = last + "..."
	}

	y := g.BodyY - 4
	for _, line := range lines {
		t.pdf.SetXY(g.Margin, y)
		t.pdf.CellFormat(g.PageW-2*g.Margin, size*0.42, line, "", 0, "C", false, 0, "")
		y += leading
	}
}

func (t *pdfTarget) drawBadge(g Geometry, b Block) {
	x := g.PageW/2 - g.BadgeW/2
	t.setFill(t.style.BadgeFill)
	t.setDraw(badgeLine)
	t.pdf.SetLineWidth(0.4)
	t.pdf.RoundedRect(x, g.BadgeY, g.BadgeW, g.BadgeH, 5, "1234", "FD")

	t.setText(t.style.HeadlineColor)
	t.cell(x, g.BadgeY+g.BadgeH/2-2.5, g.BadgeW, b.Lines[0], "B", 11, "C")
}

func (t *pdfTarget) drawSignature(g Geometry, b Block, x1, x2 float64) {
	name, title := b.Lines[0], b.Lines[1]
	center := (x1 + x2) / 2
	w := x2 - x1

	t.setDraw(RGB{100, 100, 100})
	t.pdf.SetLineWidth(0.5)
	t.pdf.Line(x1, g.SignatureY, x2, g.SignatureY)

	t.setText(t.style.TextColor)
	t.cell(center-w/2, g.SignatureY-7, w, name, "I", 12, "C")
	t.setText(t.style.MutedColor)
	t.cell(center-w/2, g.SignatureY+2, w, title, "", 10, "C")
}

func (t *pdfTarget) drawFooter(g Geometry, b Block) {
	t.setText(t.style.MutedColor)
	y := g.FooterY
	for i, line := range b.Lines {
		style, size := "", 8.0
		if i == 0 {
			style, size = "B", 9.0
		}
		t.cell(g.Margin+5, y, 120, line, style, size, "L")
		y += 4
	}
}

func (t *pdfTarget) drawVerification(g Geometry, b Block, qrPNG []byte) {
	size := g.QRSize
	x := g.PageW - g.Margin - 8 - size
	y := g.PageH - g.Margin - size - 14

	if qrPNG != nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		t.pdf.RegisterImageOptionsReader("verify-qr", opts, bytes.NewReader(qrPNG))
		t.pdf.ImageOptions("verify-qr", x, y, size, size, false, opts, 0, "")
	} else {
		// Documented placeholder: the render never fails on QR errors
		t.setFill(RGB{240, 240, 240})
		t.pdf.RoundedRect(x, y, size, size, 2, "1234", "F")
		t.setText(t.style.MutedColor)
		t.cell(x, y+size/2-1.5, size, "QR unavailable", "", 6, "C")
	}

	t.setText(t.style.MutedColor)
	ty := y + size + 2
	for i, line := range b.Lines {
		fs := 6.0
		if i >= 2 {
			fs = 7.0
		}
		t.cell(x-20, ty, size+40, line, "", fs, "C")
		ty += 3.2
	}
}
