package render

import (
	"net/url"
	"time"
)

// Request is the input to one render. The engine holds no state between
// calls; two renders of the same request are layout-equivalent, differing at
// most in the issue-date stamp across calendar days.
type Request struct {
	RecipientName string
	Institution   string
	Activity      string
	ActivityDate  time.Time
	Body          string
	Language      Language
	Template      Template
	CertificateID string
}

// BlockKind identifies one positioned region of the certificate.
type BlockKind string

const (
	BlockHeadline       BlockKind = "headline"
	BlockRecipient      BlockKind = "recipient"
	BlockInstitution    BlockKind = "institution"
	BlockBody           BlockKind = "body"
	BlockActivityBadge  BlockKind = "activity_badge"
	BlockSignatureLeft  BlockKind = "signature_left"
	BlockSignatureRight BlockKind = "signature_right"
	BlockFooter         BlockKind = "footer"
	BlockVerification   BlockKind = "verification"
)

// Block is one region of the layout: a kind plus its text lines in reading
// order. Absolute coordinates belong to the render targets; the block list is
// the contract both targets must agree on.
type Block struct {
	Kind  BlockKind
	Lines []string
}

// Layout is the renderer-independent result of composing a request: the
// resolved style plus the ordered block list. It is a one-shot artifact,
// never mutated after composition.
type Layout struct {
	Style     Style
	Blocks    []Block
	CertID    string
	IssueDate time.Time
	VerifyURL string
}

// Block returns the first block of the given kind, or nil.
func (l *Layout) Block(kind BlockKind) *Block {
	for i := range l.Blocks {
		if l.Blocks[i].Kind == kind {
			return &l.Blocks[i]
		}
	}
	return nil
}

// Issuer is the institution footer identity printed on every certificate.
type Issuer struct {
	Name     string
	Tagline  string
	Address  string
	Contact  string
	Website  string
	LogoPath string
}

// DefaultIssuer returns the CertiGen issuing identity.
func DefaultIssuer() Issuer {
	return Issuer{
		Name:    "CertiGen",
		Tagline: "Professional Certificate Generator",
		Address: "Sector V, Salt Lake, Kolkata 700091",
		Contact: "support@certigen.example.com",
		Website: "https://certigen.example.com",
	}
}

// The left signature block carries a fixed executive identity; the right one
// comes from the activity resolver.
const (
	executiveSigner = "M.R Sumit Kumar Biswas"
	executiveTitle  = "Executive Director"
)

// Verification region captions.
const (
	captionVerified = "Online Verified Certificate"
	captionScan     = "Scan to Verify"
)

const issueDateLayout = "2 January 2006"

// Compose resolves style, headline, signer identity and body text for a
// request and assembles the ordered block list. Pure apart from the issue
// date, which is the engine clock's "today".
func (e *Engine) Compose(req Request) *Layout {
	style := ResolveStyle(req.Template)
	head := ResolveHeadline(req.Language)
	identity := ResolveActivity(req.Activity)
	issued := e.now()

	body := Sanitize(req.Body)
	if body == "" {
		body = FallbackBody(req.RecipientName, req.Institution, req.Activity, req.ActivityDate)
	}

	blocks := []Block{
		{Kind: BlockHeadline, Lines: []string{head.Title, head.Subtitle}},
		{Kind: BlockRecipient, Lines: []string{req.RecipientName}},
	}
	// The institution line is omitted, not blanked, when the field is empty
	if req.Institution != "" {
		blocks = append(blocks, Block{Kind: BlockInstitution, Lines: []string{req.Institution}})
	}
	blocks = append(blocks,
		Block{Kind: BlockBody, Lines: []string{body}},
		Block{Kind: BlockActivityBadge, Lines: []string{req.Activity}},
		Block{Kind: BlockSignatureLeft, Lines: []string{executiveSigner, executiveTitle}},
		Block{Kind: BlockSignatureRight, Lines: []string{identity.Signer, identity.Title}},
		Block{Kind: BlockFooter, Lines: footerLines(e.issuer)},
		Block{Kind: BlockVerification, Lines: []string{
			captionVerified,
			captionScan,
			"Certificate ID: " + req.CertificateID,
			"Issue Date: " + issued.Format(issueDateLayout),
		}},
	)

	return &Layout{
		Style:     style,
		Blocks:    blocks,
		CertID:    req.CertificateID,
		IssueDate: issued,
		VerifyURL: e.verifyURL(req.CertificateID),
	}
}

func footerLines(is Issuer) []string {
	lines := make([]string, 0, 5)
	for _, s := range []string{is.Name, is.Tagline, is.Address, is.Contact, is.Website} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

func (e *Engine) verifyURL(certID string) string {
	return e.baseURL + "/verify?cert_id=" + url.QueryEscape(certID)
}
