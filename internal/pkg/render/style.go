package render

// Template names a visual style applied to the fixed certificate layout.
type Template string

const (
	TemplateClassic      Template = "classic"
	TemplateModern       Template = "modern"
	TemplateElegant      Template = "elegant"
	TemplateProfessional Template = "professional"
)

// RGB is a color in 0-255 components.
type RGB struct {
	R, G, B int
}

// Geometry holds the page positions for one template, in millimeters on a
// landscape A4 page. Positions are configuration, not logic: all four
// templates share the block ordering and differ only in these tables.
type Geometry struct {
	PageW, PageH float64
	Margin       float64

	HeadlineY, SubheadY, RuleY float64
	RecipientY                 float64
	InstitutionY               float64
	BodyY, BodyLeading         float64
	BadgeY, BadgeW, BadgeH     float64
	SignatureY                 float64
	FooterY                    float64
	QRSize                     float64
}

// Style describes the border, fill and typography of one template. It is
// consumed by the page-frame drawing step and carries no layout logic.
type Style struct {
	Name          Template
	FontFamily    string // gofpdf core family: Helvetica or Times
	BorderColor   RGB
	BorderWidth   float64
	DoubleBorder  bool
	CornerMarks   bool
	Background    RGB // page tint; pure white means none
	HeadlineColor RGB
	AccentColor   RGB // separator rule and badge border
	BadgeFill     RGB
	TextColor     RGB
	MutedColor    RGB
	Geometry      Geometry
}

// defaultGeometry mirrors the historical jsPDF coordinates: A4 landscape,
// 10mm margin, headline at 40/50mm, body band from 85mm, badge at 110mm,
// signatures ruled at 160mm.
var defaultGeometry = Geometry{
	PageW:  297,
	PageH:  210,
	Margin: 10,

	HeadlineY:    40,
	SubheadY:     50,
	RuleY:        55,
	RecipientY:   70,
	InstitutionY: 78,
	BodyY:        85,
	BodyLeading:  7,
	BadgeY:       110,
	BadgeW:       60,
	BadgeH:       15,
	SignatureY:   160,
	FooterY:      178,
	QRSize:       20,
}

var (
	gold      = RGB{245, 158, 11}
	blue      = RGB{26, 86, 219}
	slate     = RGB{51, 65, 85}
	burgundy  = RGB{128, 0, 32}
	navy      = RGB{15, 42, 86}
	ivory     = RGB{255, 253, 244}
	offWhite  = RGB{248, 250, 252}
	white     = RGB{255, 255, 255}
	badgeBlue = RGB{240, 249, 255}
	badgeLine = RGB{147, 197, 253}
	bodyGray  = RGB{60, 60, 60}
	mutedGray = RGB{120, 120, 120}
)

// styleTable is the closed template enumeration. Adding a template is a data
// change, not a code change.
var styleTable = map[Template]Style{
	TemplateClassic: {
		Name:          TemplateClassic,
		FontFamily:    "Helvetica",
		BorderColor:   gold,
		BorderWidth:   3,
		Background:    white,
		HeadlineColor: blue,
		AccentColor:   gold,
		BadgeFill:     badgeBlue,
		TextColor:     bodyGray,
		MutedColor:    mutedGray,
		Geometry:      defaultGeometry,
	},
	TemplateModern: {
		Name:          TemplateModern,
		FontFamily:    "Helvetica",
		BorderColor:   slate,
		BorderWidth:   1.5,
		DoubleBorder:  true,
		Background:    offWhite,
		HeadlineColor: slate,
		AccentColor:   blue,
		BadgeFill:     badgeBlue,
		TextColor:     bodyGray,
		MutedColor:    mutedGray,
		Geometry: func() Geometry {
			g := defaultGeometry
			g.HeadlineY = 38
			g.SubheadY = 48
			g.RuleY = 53
			return g
		}(),
	},
	TemplateElegant: {
		Name:          TemplateElegant,
		FontFamily:    "Times",
		BorderColor:   burgundy,
		BorderWidth:   1,
		CornerMarks:   true,
		Background:    ivory,
		HeadlineColor: burgundy,
		AccentColor:   gold,
		BadgeFill:     ivory,
		TextColor:     bodyGray,
		MutedColor:    mutedGray,
		Geometry: func() Geometry {
			g := defaultGeometry
			g.HeadlineY = 42
			g.SubheadY = 52
			g.RuleY = 57
			g.RecipientY = 72
			return g
		}(),
	},
	TemplateProfessional: {
		Name:          TemplateProfessional,
		FontFamily:    "Helvetica",
		BorderColor:   navy,
		BorderWidth:   2,
		DoubleBorder:  true,
		Background:    white,
		HeadlineColor: navy,
		AccentColor:   slate,
		BadgeFill:     offWhite,
		TextColor:     bodyGray,
		MutedColor:    mutedGray,
		Geometry:      defaultGeometry,
	},
}

// ResolveStyle maps a template id to its style descriptor. Unknown or empty
// ids resolve to classic. Pure and idempotent: same id, same descriptor.
func ResolveStyle(t Template) Style {
	if s, ok := styleTable[t]; ok {
		return s
	}
	return styleTable[TemplateClassic]
}
