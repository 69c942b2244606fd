package render

import "strings"

// Identity is the signer block and point value resolved from an activity
// label. Points are display-only.
type Identity struct {
	Signer string
	Title  string
	Points int
}

var (
	internshipIdentity = Identity{Signer: "D.R. KUHELI MONDAL", Title: "Internship Director", Points: 10}
	courseIdentity     = Identity{Signer: "D.R. DIPAK KUMAR MONDAL", Title: "Course Director", Points: 5}
	hackathonIdentity  = Identity{Signer: "DILIP KUMAR GHOSH", Title: "Hackathon Director", Points: 8}
	volunteerIdentity  = Identity{Signer: "SOURAV YADAV", Title: "Volunteer Program Director", Points: 6}
	projectIdentity    = Identity{Signer: "ANINDITA BHATTACHARYA", Title: "Innovation Lead", Points: 10}

	// defaultIdentity covers every label outside the known buckets,
	// including the empty string.
	defaultIdentity = Identity{Signer: "ASHOK KUMAR GHOSH", Title: "Program Director", Points: 5}
)

// identityTable groups raw labels into buckets. Configuration, not logic:
// lookup stays case-insensitive with a total default.
var identityTable = map[string]Identity{
	"internship":     internshipIdentity,
	"webinar":        courseIdentity,
	"online course":  courseIdentity,
	"workshop":       courseIdentity,
	"hackathon":      hackathonIdentity,
	"volunteering":   volunteerIdentity,
	"volunteer work": volunteerIdentity,
	"project":        projectIdentity,
	"innovation":     projectIdentity,
}

// ResolveActivity returns the signer identity for an activity label. Total:
// every input resolves, unmatched labels get the default tuple.
func ResolveActivity(label string) Identity {
	if id, ok := identityTable[strings.ToLower(strings.TrimSpace(label))]; ok {
		return id
	}
	return defaultIdentity
}
