package render

import "unicode"

// Language selects the localized headline strings. Only the certificate's
// fixed chrome is localized; body text is rendered as supplied.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageBengali Language = "bengali"
	LanguageHindi   Language = "hindi"
)

// Headline is the two-line title block of the certificate.
type Headline struct {
	Title    string
	Subtitle string
}

// Hand-authored translations. Not produced by a translation service at
// render time.
var headlineTable = map[Language]Headline{
	LanguageEnglish: {Title: "CERTIFICATE", Subtitle: "OF ACHIEVEMENT"},
	LanguageBengali: {Title: "সার্টিফিকেট", Subtitle: "কৃতিত্বের স্বীকৃতি"},
	LanguageHindi:   {Title: "प्रमाण पत्र", Subtitle: "उपलब्धि का प्रमाण"},
}

// ResolveHeadline maps a language tag to its headline strings. Unknown or
// empty tags resolve to english.
func ResolveHeadline(lang Language) Headline {
	if h, ok := headlineTable[lang]; ok {
		return h
	}
	return headlineTable[LanguageEnglish]
}

// ResolveLanguage canonicalizes a language tag the same way ResolveHeadline
// does, for callers that record the resolved tag.
func ResolveLanguage(lang Language) Language {
	if _, ok := headlineTable[lang]; ok {
		return lang
	}
	return LanguageEnglish
}

// isLatin reports whether s is drawable with the PDF core fonts. Bengali and
// Devanagari headlines need an embedded UTF-8 font.
func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxLatin1 {
			return false
		}
	}
	return true
}
