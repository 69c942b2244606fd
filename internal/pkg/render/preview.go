package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
)

// The preview walks the same ordered block list as the PDF target, so it
// stays a truthful preview of the downloadable artifact: screen units differ,
// the story told does not.
var previewTmpl = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Certificate {{.CertID}}</title>
<style>
  body { background: #e5e7eb; font-family: Helvetica, Arial, sans-serif; }
  .certificate {
    position: relative; width: 1050px; margin: 24px auto; padding: 48px;
    background: {{.Background}};
    border: {{.BorderPx}}px solid {{.BorderColor}};
    {{if .DoubleBorder}}outline: 1px solid {{.BorderColor}}; outline-offset: -10px;{{end}}
    text-align: center; color: rgb(60,60,60);
  }
  .headline h1 { color: {{.HeadlineColor}}; font-size: 34px; margin: 0; }
  .headline h2 { color: {{.HeadlineColor}}; font-size: 26px; margin: 4px 0 0; }
  .rule { width: 120px; height: 3px; background: {{.AccentColor}}; margin: 12px auto 20px; }
  .recipient { color: {{.HeadlineColor}}; font-size: 30px; font-weight: bold; margin: 8px 0; }
  .institution { font-style: italic; font-size: 18px; margin: 4px 0 12px; }
  .body-text { max-width: 700px; margin: 0 auto 16px; font-size: 15px; line-height: 1.5; }
  .badge {
    display: inline-block; padding: 8px 24px; border-radius: 999px;
    background: {{.BadgeFill}}; border: 1px solid rgb(147,197,253);
    color: {{.HeadlineColor}}; font-weight: 600; margin-bottom: 28px;
  }
  .signatures { display: flex; justify-content: space-around; margin: 24px 60px; }
  .signature { width: 220px; }
  .signature .line { border-bottom: 1px solid #9ca3af; padding-bottom: 4px; margin-bottom: 4px; font-style: italic; }
  .signature .role { font-size: 13px; color: #6b7280; }
  .bottom { display: flex; justify-content: space-between; align-items: flex-end; margin-top: 24px; }
  .footer { text-align: left; font-size: 11px; color: #6b7280; }
  .footer .issuer { font-weight: bold; font-size: 13px; }
  .verification { text-align: center; font-size: 11px; color: #6b7280; }
  .verification img, .verification .qr-missing { width: 96px; height: 96px; }
  .qr-missing {
    display: flex; align-items: center; justify-content: center;
    background: #f3f4f6; border-radius: 4px; font-size: 10px;
  }
</style>
</head>
<body>
<div class="certificate">
  <div class="headline">
    <h1>{{.Title}}</h1>
    <h2>{{.Subtitle}}</h2>
    <div class="rule"></div>
  </div>
  <div class="recipient">{{.Recipient}}</div>
  {{if .Institution}}<div class="institution">{{.Institution}}</div>{{end}}
  <div class="body-text">{{.Body}}</div>
  <div class="badge">{{.Activity}}</div>
  <div class="signatures">
    <div class="signature">
      <div class="line">{{.LeftSigner}}</div>
      <div class="role">{{.LeftTitle}}</div>
    </div>
    <div class="signature">
      <div class="line">{{.RightSigner}}</div>
      <div class="role">{{.RightTitle}}</div>
    </div>
  </div>
  <div class="bottom">
    <div class="footer">
      {{range $i, $line := .FooterLines}}{{if eq $i 0}}<div class="issuer">{{$line}}</div>{{else}}<div>{{$line}}</div>{{end}}{{end}}
    </div>
    <div class="verification">
      {{if .QRDataURI}}<img src="{{.QRDataURI}}" alt="Verification QR">{{else}}<div class="qr-missing">QR unavailable</div>{{end}}
      {{range .VerificationLines}}<div>{{.}}</div>{{end}}
    </div>
  </div>
</div>
</body>
</html>
`))

type previewData struct {
	CertID        string
	Background    template.CSS
	BorderColor   template.CSS
	BorderPx      int
	DoubleBorder  bool
	HeadlineColor template.CSS
	AccentColor   template.CSS
	BadgeFill     template.CSS

	Title, Subtitle   string
	Recipient         string
	Institution       string
	Body              string
	Activity          string
	LeftSigner        string
	LeftTitle         string
	RightSigner       string
	RightTitle        string
	FooterLines       []string
	VerificationLines []string
	QRDataURI         template.URL
}

// RenderHTML composes the layout for req and renders the on-screen preview.
// The QR image is inlined as a data URI; encoding failure degrades to a
// labelled placeholder, same policy as the PDF target.
func (e *Engine) RenderHTML(ctx context.Context, req Request) ([]byte, error) {
	lay := e.Compose(req)

	var qrURI template.URL
	if e.qr != nil {
		png, err := e.qr.Encode(ctx, lay.VerifyURL, 192)
		if err != nil {
			logger.Warn("QR encoding failed, preview shows placeholder",
				zap.String("cert_id", lay.CertID),
				zap.Error(err),
			)
		} else {
			qrURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		}
	}

	data := previewData{
		CertID:        lay.CertID,
		Background:    cssRGB(lay.Style.Background),
		BorderColor:   cssRGB(lay.Style.BorderColor),
		BorderPx:      int(lay.Style.BorderWidth * 3),
		DoubleBorder:  lay.Style.DoubleBorder,
		HeadlineColor: cssRGB(lay.Style.HeadlineColor),
		AccentColor:   cssRGB(lay.Style.AccentColor),
		BadgeFill:     cssRGB(lay.Style.BadgeFill),
	}

	for _, b := range lay.Blocks {
		switch b.Kind {
		case BlockHeadline:
			data.Title, data.Subtitle = b.Lines[0], b.Lines[1]
		case BlockRecipient:
			data.Recipient = b.Lines[0]
		case BlockInstitution:
			data.Institution = b.Lines[0]
		case BlockBody:
			data.Body = b.Lines[0]
		case BlockActivityBadge:
			data.Activity = b.Lines[0]
		case BlockSignatureLeft:
			data.LeftSigner, data.LeftTitle = b.Lines[0], b.Lines[1]
		case BlockSignatureRight:
			data.RightSigner, data.RightTitle = b.Lines[0], b.Lines[1]
		case BlockFooter:
			data.FooterLines = b.Lines
		case BlockVerification:
			data.VerificationLines = b.Lines
		}
	}
	data.QRDataURI = qrURI

	var buf bytes.Buffer
	if err := previewTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.Bytes(), nil
}

func cssRGB(c RGB) template.CSS {
	return template.CSS(fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B))
}
