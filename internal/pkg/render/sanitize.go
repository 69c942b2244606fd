package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Body text produced by the retired point-scoring feature may still carry its
// phrasing. These are the exact historical patterns, matched
// case-insensitively; anything that merely resembles them must survive.
var (
	// The whole sentence containing a numeric "MAR Points" mention goes,
	// so no orphan fragment is left behind.
	marPointsSentence = regexp.MustCompile(`(?i)[^.!?]*\b\d+\s*MAR\s*Points\b[^.!?]*[.!?]?`)
	worthStatement    = regexp.MustCompile(`(?i)This achievement is worth.*?points\.`)
	complianceNote    = regexp.MustCompile(`(?i)meeting all the necessary requirements as per academic standards recognized by MAKAUT\.`)
)

// Sanitize strips the deprecated point-scoring phrases from body text and
// normalizes whitespace. Runs unconditionally before layout. Idempotent.
func Sanitize(body string) string {
	s := marPointsSentence.ReplaceAllString(body, "")
	s = worthStatement.ReplaceAllString(s, "")
	s = complianceNote.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// FallbackBody composes the templated sentence used when no body text was
// supplied or sanitization left nothing.
func FallbackBody(recipient, institution, activity string, activityDate time.Time) string {
	date := activityDate.Format("2 January 2006")
	if institution != "" {
		return fmt.Sprintf("This is to certify that %s from %s has successfully participated in %s conducted on %s.",
			recipient, institution, activity, date)
	}
	return fmt.Sprintf("This is to certify that %s has successfully participated in %s conducted on %s.",
		recipient, activity, date)
}
