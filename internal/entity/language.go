package entity

import "strings"

// Language is one of the target languages of the realizer.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageEnglish     Language = "en"
	LanguageFrench      Language = "fr"
	LanguageDutch       Language = "nl"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = LanguageEnglish

// Languages lists the supported languages in ordinal order.
var Languages = []Language{LanguageEnglish, LanguageFrench, LanguageDutch}

// Code returns the lowercase language code (without defaulting).
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// Ordinal returns the stable index of the language, used to address
// per-language template columns and realised names. Unknown languages
// return -1.
func (l Language) Ordinal() int {
	for i, lang := range Languages {
		if lang == l {
			return i
		}
	}
	return -1
}

// String returns the upper-case tag used in template headers (EN, FR, NL).
func (l Language) String() string {
	return strings.ToUpper(l.Code())
}

// NormalizeLanguage ensures the language falls back to a supported value (defaults to English).
func NormalizeLanguage(lang Language) Language {
	switch lang {
	case LanguageEnglish, LanguageFrench, LanguageDutch:
		return lang
	default:
		return DefaultLanguage
	}
}

// ParseLanguage converts an arbitrary string into a supported Language value.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en", "english":
		return LanguageEnglish
	case "fr", "french":
		return LanguageFrench
	case "nl", "dutch":
		return LanguageDutch
	default:
		return LanguageUnspecified
	}
}
