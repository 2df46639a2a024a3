package surface

import "strings"

type english struct {
	lex *Lexicon
}

func (g english) variants(w *Word) []string {
	out := formValues(w)
	switch w.Category {
	case CategoryNoun:
		out = append(out, g.plural(w))
	case CategoryVerb:
		for _, agr := range allAgreements() {
			out = append(out, g.simpleForm(w, agr))
			agr.Tense = TensePast
			out = append(out, g.simpleForm(w, agr))
		}
		out = append(out, enParticiple(w), enPresentParticiple(w))
	}
	return out
}

func (english) plural(w *Word) string {
	if f := w.Form("plural"); f != "" {
		return f
	}
	s := w.Base
	switch {
	case hasAnySuffix(s, "s", "x", "z", "ch", "sh"):
		return s + "es"
	case consonantY(s):
		return strings.TrimSuffix(s, "y") + "ies"
	default:
		return s + "s"
	}
}

func (english) possessive(text string) string {
	if strings.HasSuffix(text, "s") {
		return text + "'"
	}
	return text + "'s"
}

func (g english) verbForm(w *Word, agr agreement) string {
	switch agr.Form {
	case FormInfinitive:
		return w.Base
	case FormPastParticiple:
		return enParticiple(w)
	}
	if agr.Tense == TenseConditional {
		if agr.Progressive {
			return "would be " + enPresentParticiple(w)
		}
		return "would " + w.Base
	}
	if agr.Progressive {
		if be, ok := g.lex.Lookup("be", CategoryVerb); ok && w.Base != "be" {
			aux := agr
			aux.Progressive = false
			return g.simpleForm(be, aux) + " " + enPresentParticiple(w)
		}
	}
	return g.simpleForm(w, agr)
}

func (english) simpleForm(w *Word, agr agreement) string {
	if agr.Tense == TensePast {
		if f := w.Form("past" + agr.key()); f != "" {
			return f
		}
		if f := w.Form("past"); f != "" {
			return f
		}
		return enRegularPast(w.Base)
	}
	if f := w.Form("present" + agr.key()); f != "" {
		return f
	}
	if agr.key() == "3s" {
		return en3s(w.Base)
	}
	return w.Base
}

func (english) verbGroup(verb, reflexive string, agr agreement) string {
	if agr.Form == FormInfinitive {
		verb = "to " + verb
	}
	return joinNonEmpty(" ", verb, reflexive)
}

func (english) joinPreModifiers(mods []string) string {
	return strings.Join(mods, ", ")
}

func (english) determiner(det *Word, next, number, _ string) (string, bool) {
	text := det.Base
	if number == NumberPlural {
		if f := det.Form("plural"); f != "" {
			text = f
		}
	}
	if text == "a" && isVowel(firstRune(next)) {
		text = "an"
	}
	return text, false
}

func (english) preposition(prep, object string) string {
	return joinNonEmpty(" ", prep, object)
}

func en3s(base string) string {
	switch {
	case hasAnySuffix(base, "s", "x", "z", "ch", "sh", "o"):
		return base + "es"
	case consonantY(base):
		return strings.TrimSuffix(base, "y") + "ies"
	default:
		return base + "s"
	}
}

func enRegularPast(base string) string {
	switch {
	case strings.HasSuffix(base, "e"):
		return base + "d"
	case consonantY(base):
		return strings.TrimSuffix(base, "y") + "ied"
	case len(base) == 3 && !isVowel(rune(base[0])) && isVowel(rune(base[1])) && !isVowel(rune(base[2])) && !strings.ContainsRune("wxy", rune(base[2])):
		return base + string(base[2]) + "ed"
	default:
		return base + "ed"
	}
}

func enParticiple(w *Word) string {
	if f := w.Form("pastParticiple"); f != "" {
		return f
	}
	if f := w.Form("past"); f != "" {
		return f
	}
	return enRegularPast(w.Base)
}

func enPresentParticiple(w *Word) string {
	if f := w.Form("presentParticiple"); f != "" {
		return f
	}
	base := w.Base
	switch {
	case strings.HasSuffix(base, "ie"):
		return strings.TrimSuffix(base, "ie") + "ying"
	case strings.HasSuffix(base, "e") && !strings.HasSuffix(base, "ee") && len(base) > 2:
		return strings.TrimSuffix(base, "e") + "ing"
	case len(base) == 3 && !isVowel(rune(base[0])) && isVowel(rune(base[1])) && !isVowel(rune(base[2])) && !strings.ContainsRune("wxy", rune(base[2])):
		return base + string(base[2]) + "ing"
	default:
		return base + "ing"
	}
}
