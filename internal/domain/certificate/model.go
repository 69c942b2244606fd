package certificate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/render"
)

var (
	ErrRecipientRequired   = errors.New("recipient name is required")
	ErrActivityRequired    = errors.New("activity is required")
	ErrInvalidActivityDate = errors.New("invalid activity date: expected YYYY-MM-DD")
	ErrStoreUnavailable    = errors.New("certificate store is not configured")
)

// GenerateRequest is the inbound payload for a single certificate.
type GenerateRequest struct {
	RecipientName string `json:"recipient_name" binding:"required"`
	Institution   string `json:"institution_name"`
	Activity      string `json:"activity" binding:"required"`
	ActivityDate  string `json:"activity_date"`
	Body          string `json:"certificate_text"`
	Language      string `json:"language"`
	Template      string `json:"template"`
	GeneratedBy   string `json:"generated_by"`
}

const activityDateLayout = "2006-01-02"

// Normalize validates the request and resolves it into a render request.
// Unknown languages and templates fall through to the render defaults;
// a missing activity date becomes the given time.
func (r *GenerateRequest) Normalize(now time.Time) (render.Request, error) {
	if strings.TrimSpace(r.RecipientName) == "" {
		return render.Request{}, ErrRecipientRequired
	}
	if strings.TrimSpace(r.Activity) == "" {
		return render.Request{}, ErrActivityRequired
	}

	activityDate := now
	if strings.TrimSpace(r.ActivityDate) != "" {
		parsed, err := time.Parse(activityDateLayout, strings.TrimSpace(r.ActivityDate))
		if err != nil {
			return render.Request{}, fmt.Errorf("%w: got %q", ErrInvalidActivityDate, r.ActivityDate)
		}
		activityDate = parsed
	}

	return render.Request{
		RecipientName: strings.TrimSpace(r.RecipientName),
		Institution:   strings.TrimSpace(r.Institution),
		Activity:      strings.TrimSpace(r.Activity),
		ActivityDate:  activityDate,
		Body:          r.Body,
		Language:      render.Language(strings.ToLower(strings.TrimSpace(r.Language))),
		Template:      render.Template(strings.ToLower(strings.TrimSpace(r.Template))),
	}, nil
}

// GeneratedCertificate is a rendered document plus its issuance facts.
type GeneratedCertificate struct {
	CertID    string
	Filename  string
	PDF       []byte
	IssueDate time.Time
}

// VerifyResult is the answer to a verification lookup. Details are
// present only when an issuance record was found.
type VerifyResult struct {
	CertID      string     `json:"cert_id"`
	Valid       bool       `json:"valid"`
	Recipient   string     `json:"recipient_name,omitempty"`
	Institution string     `json:"institution_name,omitempty"`
	Activity    string     `json:"activity,omitempty"`
	IssueDate   *time.Time `json:"issue_date,omitempty"`
	Message     string     `json:"message"`
}

// BulkResult summarizes a roster batch.
type BulkResult struct {
	Generated []BulkItem `json:"generated"`
	Failed    []BulkItem `json:"failed,omitempty"`
}

// BulkItem is one roster row outcome.
type BulkItem struct {
	Line      int    `json:"line,omitempty"`
	Recipient string `json:"recipient_name,omitempty"`
	CertID    string `json:"cert_id,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Error     string `json:"error,omitempty"`
}
