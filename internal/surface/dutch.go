package surface

import "strings"

type dutch struct {
	lex *Lexicon
}

const nlVoiceless = "tkfschp"

var nlUnstressedPrefixes = []string{"be", "ge", "ver", "her", "ont", "er"}

func (g dutch) variants(w *Word) []string {
	out := formValues(w)
	switch w.Category {
	case CategoryNoun:
		out = append(out, g.plural(w))
	case CategoryVerb:
		for _, agr := range allAgreements() {
			out = append(out, g.present(w, agr))
			agr.Tense = TensePast
			out = append(out, g.past(w, agr))
		}
		out = append(out, nlParticiple(w))
	}
	return out
}

func (dutch) plural(w *Word) string {
	if f := w.Form("plural"); f != "" {
		return f
	}
	s := w.Base
	switch {
	case hasAnySuffix(s, "e", "el", "em", "en", "er", "je"):
		return s + "s"
	case hasAnySuffix(s, "a", "o", "u", "i", "y"):
		return s + "'s"
	default:
		return s + "en"
	}
}

func (dutch) possessive(text string) string {
	if hasAnySuffix(text, "s", "x", "z") {
		return text + "'"
	}
	return text + "'s"
}

func (g dutch) verbForm(w *Word, agr agreement) string {
	switch agr.Form {
	case FormInfinitive:
		return w.Base
	case FormPastParticiple:
		return nlParticiple(w)
	}
	if agr.Tense == TenseConditional {
		if agr.Number == NumberPlural {
			return "zouden " + w.Base
		}
		return "zou " + w.Base
	}
	if agr.Progressive {
		if zijn, ok := g.lex.Lookup("zijn", CategoryVerb); ok {
			aux := agr
			aux.Progressive = false
			return g.simpleForm(zijn, aux) + " aan het " + w.Base
		}
	}
	return g.simpleForm(w, agr)
}

func (g dutch) simpleForm(w *Word, agr agreement) string {
	if agr.Tense == TensePast {
		return g.past(w, agr)
	}
	return g.present(w, agr)
}

func (dutch) present(w *Word, agr agreement) string {
	if f := w.Form("present" + agr.key()); f != "" {
		return f
	}
	if agr.Number == NumberPlural {
		return w.Base
	}
	stem := nlStem(w.Base)
	if agr.Person == PersonFirst || strings.HasSuffix(stem, "t") {
		return stem
	}
	return stem + "t"
}

func (dutch) past(w *Word, agr agreement) string {
	if f := w.Form("past" + agr.key()); f != "" {
		return f
	}
	if agr.Number == NumberPlural {
		if f := w.Form("pastPlural"); f != "" {
			return f
		}
	} else if f := w.Form("past"); f != "" {
		return f
	}
	form := nlStem(w.Base) + nlPastSuffix(w.Base)
	if agr.Number == NumberPlural {
		form += "n"
	}
	return form
}

func (dutch) verbGroup(verb, reflexive string, agr agreement) string {
	if agr.Form == FormInfinitive || reflexive == "" {
		return verb
	}
	if i := strings.IndexByte(verb, ' '); i >= 0 {
		return verb[:i] + " " + reflexive + verb[i:]
	}
	return verb + " " + reflexive
}

func (dutch) joinPreModifiers(mods []string) string {
	return strings.Join(mods, " ")
}

func (dutch) determiner(det *Word, _, number, _ string) (string, bool) {
	if number == NumberPlural {
		if f := det.Form("plural"); f != "" {
			return f, false
		}
	}
	return det.Base, false
}

func (dutch) preposition(prep, object string) string {
	return joinNonEmpty(" ", prep, object)
}

// nlRawStem strips the infinitive ending and collapses a doubled consonant.
func nlRawStem(base string) string {
	stem := base
	switch {
	case strings.HasSuffix(base, "en"):
		stem = strings.TrimSuffix(base, "en")
	case strings.HasSuffix(base, "n"):
		stem = strings.TrimSuffix(base, "n")
	}
	if n := len(stem); n >= 2 && stem[n-1] == stem[n-2] && !isVowel(rune(stem[n-1])) {
		stem = stem[:n-1]
	}
	return stem
}

// nlStem returns the first person singular present form of a regular verb.
func nlStem(base string) string {
	raw := nlRawStem(base)
	stem := raw
	n := len(stem)
	if strings.HasSuffix(base, "en") && n >= 3 && !isVowel(rune(stem[n-1])) && isVowel(rune(stem[n-2])) && !isVowel(rune(stem[n-3])) && base != raw+raw[n-1:]+"en" {
		stem = stem[:n-1] + string(stem[n-2]) + stem[n-1:]
	}
	switch {
	case strings.HasSuffix(stem, "v"):
		stem = strings.TrimSuffix(stem, "v") + "f"
	case strings.HasSuffix(stem, "z"):
		stem = strings.TrimSuffix(stem, "z") + "s"
	}
	return stem
}

// nlPastSuffix applies the 't kofschip rule to the raw stem.
func nlPastSuffix(base string) string {
	raw := nlRawStem(base)
	if raw != "" && strings.ContainsRune(nlVoiceless, lastRune(raw)) {
		return "te"
	}
	return "de"
}

func nlParticiple(w *Word) string {
	if f := w.Form("pastParticiple"); f != "" {
		return f
	}
	stem := nlStem(w.Base)
	suffix := "d"
	if strings.HasSuffix(nlPastSuffix(w.Base), "te") {
		suffix = "t"
	}
	if hasAnySuffix(stem, "t", "d") {
		suffix = ""
	}
	prefix := "ge"
	for _, p := range nlUnstressedPrefixes {
		if strings.HasPrefix(w.Base, p) {
			prefix = ""
			break
		}
	}
	return prefix + stem + suffix
}
