package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/qrgen"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error"); err != nil {
		panic(err)
	}
	m.Run()
}

// failingEncoder simulates a broken QR collaborator.
type failingEncoder struct{}

func (failingEncoder) Encode(ctx context.Context, payload string, size int) ([]byte, error) {
	return nil, errors.New("encoder unavailable")
}

func engineWithQR(enc qrgen.Encoder) *Engine {
	return NewEngine(enc, DefaultIssuer(), "https://certigen.example.com", WithClock(testClock))
}

func TestRenderPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("Produces a PDF document", func(t *testing.T) {
		e := engineWithQR(qrgen.NewPNGEncoder())
		out, err := e.RenderPDF(ctx, scenarioRequest())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Error("Expected PDF magic header")
		}
	})

	t.Run("QR failure degrades, never aborts", func(t *testing.T) {
		e := engineWithQR(failingEncoder{})
		out, err := e.RenderPDF(ctx, scenarioRequest())
		if err != nil {
			t.Fatalf("render must not fail on QR errors, got %v", err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Error("Expected complete document despite QR failure")
		}
	})

	t.Run("Empty recipient renders a degraded document", func(t *testing.T) {
		e := engineWithQR(qrgen.NewPNGEncoder())
		req := scenarioRequest()
		req.RecipientName = ""
		if _, err := e.RenderPDF(ctx, req); err != nil {
			t.Fatalf("empty recipient is a boundary case, not an error: %v", err)
		}
	})

	t.Run("Long body never widens the page", func(t *testing.T) {
		e := engineWithQR(qrgen.NewPNGEncoder())
		req := scenarioRequest()
		req.Body = strings.Repeat("A very long participation description that keeps going. ", 60)
		out, err := e.RenderPDF(ctx, req)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(out) == 0 {
			t.Fatal("Expected document output")
		}
	})

	t.Run("Bengali headline without font degrades to english", func(t *testing.T) {
		e := engineWithQR(qrgen.NewPNGEncoder())
		req := scenarioRequest()
		req.Language = LanguageBengali
		if _, err := e.RenderPDF(ctx, req); err != nil {
			t.Fatalf("missing unicode font must degrade, not fail: %v", err)
		}
	})

	t.Run("Concurrent renders are independent", func(t *testing.T) {
		e := engineWithQR(qrgen.NewPNGEncoder())
		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := scenarioRequest()
				req.CertificateID = "CERT-AB12CD3" + string(rune('0'+i))
				req.Template = []Template{TemplateClassic, TemplateModern, TemplateElegant, TemplateProfessional}[i%4]
				if _, err := e.RenderPDF(ctx, req); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("concurrent render failed: %v", err)
		}
	})
}

func TestRenderHTML(t *testing.T) {
	ctx := context.Background()

	t.Run("Preview agrees with the layout contract", func(t *testing.T) {
		e := engineWithQR(qrgen.NewPNGEncoder())
		out, err := e.RenderHTML(ctx, scenarioRequest())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		html := string(out)

		// Blocks must appear in layout order
		markers := []string{
			"CERTIFICATE", "Asha Rao", "XYZ College", "Workshop",
			"10 March 2024", "M.R Sumit Kumar Biswas", "D.R. DIPAK KUMAR MONDAL",
			"CertiGen", "Certificate ID: CERT-AB12CD34",
		}
		last := -1
		for _, m := range markers {
			idx := strings.Index(html, m)
			if idx < 0 {
				t.Fatalf("preview missing %q", m)
			}
			if idx < last {
				t.Errorf("preview orders %q before the preceding block", m)
			}
			last = idx
		}

		if !strings.Contains(html, "data:image/png;base64,") {
			t.Error("preview should inline the QR image")
		}
	})

	t.Run("Localized headline is preserved in preview", func(t *testing.T) {
		e := engineWithQR(qrgen.NewPNGEncoder())
		req := scenarioRequest()
		req.Language = LanguageHindi
		out, err := e.RenderHTML(ctx, req)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !strings.Contains(string(out), ResolveHeadline(LanguageHindi).Title) {
			t.Error("preview must keep the localized headline")
		}
	})

	t.Run("QR failure shows placeholder", func(t *testing.T) {
		e := engineWithQR(failingEncoder{})
		out, err := e.RenderHTML(ctx, scenarioRequest())
		if err != nil {
			t.Fatalf("preview must not fail on QR errors, got %v", err)
		}
		if !strings.Contains(string(out), "QR unavailable") {
			t.Error("expected labelled placeholder for missing QR")
		}
	})
}
