package surface

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eslsoft/expreal/internal/entity"
)

// agreement is the resolved inflection request for a verb.
type agreement struct {
	Person      string
	Number      string
	Gender      string
	Tense       string
	Form        string
	Progressive bool
}

func (a agreement) index() int {
	i := 2
	switch a.Person {
	case PersonFirst:
		i = 0
	case PersonSecond:
		i = 1
	}
	if a.Number == NumberPlural {
		i += 3
	}
	return i
}

// key returns the form suffix used by the lexicon: 1s, 2s, 3s, 1p, 2p, 3p.
func (a agreement) key() string {
	return personNumberKeys[a.index()]
}

var personNumberKeys = []string{"1s", "2s", "3s", "1p", "2p", "3p"}

func allAgreements() []agreement {
	out := make([]agreement, 0, len(personNumberKeys))
	for _, number := range []string{NumberSingular, NumberPlural} {
		for _, person := range []string{PersonFirst, PersonSecond, PersonThird} {
			out = append(out, agreement{Person: person, Number: number})
		}
	}
	return out
}

// grammar holds the language specific morphology and word order rules.
type grammar interface {
	variants(w *Word) []string
	plural(w *Word) string
	possessive(text string) string
	verbForm(w *Word, agr agreement) string
	verbGroup(verb, reflexive string, agr agreement) string
	joinPreModifiers(mods []string) string
	determiner(det *Word, next, number, gender string) (text string, glued bool)
	preposition(prep, object string) string
}

func newGrammar(lang entity.Language, lex *Lexicon) grammar {
	switch lang {
	case entity.LanguageFrench:
		return french{lex: lex}
	case entity.LanguageDutch:
		return dutch{lex: lex}
	default:
		return english{lex: lex}
	}
}

func formValues(w *Word) []string {
	out := make([]string, 0, len(w.forms))
	for _, v := range w.forms {
		out = append(out, v)
	}
	return out
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.ToLower(r)
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", unicode.ToLower(r))
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// consonantY reports a word ending in a consonant followed by y.
func consonantY(s string) bool {
	if len(s) < 2 || !strings.HasSuffix(s, "y") {
		return false
	}
	return !isVowel(rune(s[len(s)-2]))
}

func firstWord(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
