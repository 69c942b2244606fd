package render

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var testClock = func() time.Time {
	return time.Date(2024, time.April, 2, 15, 4, 5, 0, time.UTC)
}

func testEngine(opts ...Option) *Engine {
	opts = append([]Option{WithClock(testClock)}, opts...)
	return NewEngine(nil, DefaultIssuer(), "https://certigen.example.com", opts...)
}

func scenarioRequest() Request {
	return Request{
		RecipientName: "Asha Rao",
		Institution:   "XYZ College",
		Activity:      "Workshop",
		ActivityDate:  time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		Body:          "",
		Language:      LanguageEnglish,
		Template:      TemplateModern,
		CertificateID: "CERT-AB12CD34",
	}
}

func blockOrder(l *Layout) []BlockKind {
	kinds := make([]BlockKind, len(l.Blocks))
	for i, b := range l.Blocks {
		kinds[i] = b.Kind
	}
	return kinds
}

func TestCompose(t *testing.T) {
	e := testEngine()

	t.Run("Block ordering", func(t *testing.T) {
		lay := e.Compose(scenarioRequest())
		want := []BlockKind{
			BlockHeadline, BlockRecipient, BlockInstitution, BlockBody,
			BlockActivityBadge, BlockSignatureLeft, BlockSignatureRight,
			BlockFooter, BlockVerification,
		}
		if got := blockOrder(lay); !reflect.DeepEqual(got, want) {
			t.Errorf("block order = %v, want %v", got, want)
		}
	})

	t.Run("Institution omitted when empty", func(t *testing.T) {
		req := scenarioRequest()
		req.Institution = ""
		lay := e.Compose(req)
		if lay.Block(BlockInstitution) != nil {
			t.Error("institution block should be omitted, not blanked")
		}
	})

	t.Run("Determinism", func(t *testing.T) {
		a := e.Compose(scenarioRequest())
		b := e.Compose(scenarioRequest())
		if !reflect.DeepEqual(a, b) {
			t.Error("two composes of the same request must be layout-equivalent")
		}
	})

	t.Run("End to end scenario", func(t *testing.T) {
		lay := e.Compose(scenarioRequest())

		head := lay.Block(BlockHeadline)
		if head.Lines[0] != "CERTIFICATE" || head.Lines[1] != "OF ACHIEVEMENT" {
			t.Errorf("headline = %v", head.Lines)
		}
		if got := lay.Block(BlockRecipient).Lines[0]; got != "Asha Rao" {
			t.Errorf("recipient = %q", got)
		}
		if got := lay.Block(BlockInstitution).Lines[0]; got != "XYZ College" {
			t.Errorf("institution = %q", got)
		}

		body := lay.Block(BlockBody).Lines[0]
		if !strings.Contains(body, "Workshop") || !strings.Contains(body, "10 March 2024") {
			t.Errorf("fallback body missing activity or date: %q", body)
		}
		if got := lay.Block(BlockActivityBadge).Lines[0]; got != "Workshop" {
			t.Errorf("badge = %q", got)
		}

		right := lay.Block(BlockSignatureRight)
		if right.Lines[0] != "D.R. DIPAK KUMAR MONDAL" || right.Lines[1] != "Course Director" {
			t.Errorf("right signature = %v, want course-bucket identity", right.Lines)
		}
		left := lay.Block(BlockSignatureLeft)
		if left.Lines[1] != "Executive Director" {
			t.Errorf("left signature title = %q", left.Lines[1])
		}

		if !strings.Contains(lay.VerifyURL, "cert_id=CERT-AB12CD34") {
			t.Errorf("verify URL = %q", lay.VerifyURL)
		}

		verification := lay.Block(BlockVerification)
		joined := strings.Join(verification.Lines, "\n")
		if !strings.Contains(joined, "Online Verified Certificate") ||
			!strings.Contains(joined, "Scan to Verify") ||
			!strings.Contains(joined, "CERT-AB12CD34") ||
			!strings.Contains(joined, "2 April 2024") {
			t.Errorf("verification region = %v", verification.Lines)
		}
	})

	t.Run("Issue date is render time, not activity date", func(t *testing.T) {
		lay := e.Compose(scenarioRequest())
		if !lay.IssueDate.Equal(testClock()) {
			t.Errorf("issue date = %v", lay.IssueDate)
		}
	})

	t.Run("Supplied body is sanitized, not replaced", func(t *testing.T) {
		req := scenarioRequest()
		req.Body = "Delivered a talk on embedded Go. Earned 5 MAR Points."
		lay := e.Compose(req)
		if got := lay.Block(BlockBody).Lines[0]; got != "Delivered a talk on embedded Go." {
			t.Errorf("body = %q", got)
		}
	})
}

func TestExportFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Asha Rao", "Asha_Rao_Certificate.pdf"},
		{"  Asha   Rao ", "Asha_Rao_Certificate.pdf"},
		{"", "Unnamed_Certificate.pdf"},
	}
	for _, c := range cases {
		if got := ExportFilename(c.in); got != c.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
