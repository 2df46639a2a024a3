package surface

import (
	"strings"
)

type french struct {
	lex *Lexicon
}

var (
	frConditionalEndings = []string{"ais", "ais", "ait", "ions", "iez", "aient"}
	frErEndings          = []string{"e", "es", "e", "ons", "ez", "ent"}
	frIrEndings          = []string{"is", "is", "it", "issons", "issez", "issent"}
	frReEndings          = []string{"s", "s", "", "ons", "ez", "ent"}
	frElidable           = map[string]bool{"je": true, "me": true, "te": true, "se": true, "le": true, "la": true, "de": true, "ne": true, "que": true}
)

func (g french) variants(w *Word) []string {
	out := formValues(w)
	switch w.Category {
	case CategoryNoun:
		out = append(out, g.plural(w))
	case CategoryVerb:
		for _, agr := range allAgreements() {
			out = append(out, g.present(w, agr))
		}
		pp := frParticiple(w)
		out = append(out, pp, pp+"e", pp+"s", pp+"es")
	}
	return out
}

func (french) plural(w *Word) string {
	if f := w.Form("plural"); f != "" {
		return f
	}
	s := w.Base
	switch {
	case hasAnySuffix(s, "s", "x", "z"):
		return s
	case hasAnySuffix(s, "eau", "au", "eu"):
		return s + "x"
	case strings.HasSuffix(s, "al"):
		return strings.TrimSuffix(s, "al") + "aux"
	default:
		return s + "s"
	}
}

func (french) possessive(text string) string {
	return text
}

func (g french) verbForm(w *Word, agr agreement) string {
	switch agr.Form {
	case FormInfinitive:
		return w.Base
	case FormPastParticiple:
		return frParticiple(w)
	}
	i := agr.index()
	switch agr.Tense {
	case TenseConditional:
		stem := w.Form("conditionalStem")
		if stem == "" {
			stem = strings.TrimSuffix(w.Base, "e")
			if !strings.HasSuffix(w.Base, "re") {
				stem = w.Base
			}
		}
		return stem + frConditionalEndings[i]
	case TensePast:
		if agr.Progressive {
			return frImperfectStem(w, i) + frConditionalEndings[i]
		}
		aux, ok := g.lex.Lookup("avoir", CategoryVerb)
		if !ok {
			return frParticiple(w)
		}
		present := agr
		present.Tense = TensePresent
		return g.present(aux, present) + " " + frParticiple(w)
	}
	return g.present(w, agr)
}

func (french) present(w *Word, agr agreement) string {
	if f := w.Form("present" + agr.key()); f != "" {
		return f
	}
	i := agr.index()
	base := w.Base
	switch {
	case strings.HasSuffix(base, "er"):
		stem := strings.TrimSuffix(base, "er")
		ending := frErEndings[i]
		if ending == "ons" {
			if strings.HasSuffix(stem, "g") {
				stem += "e"
			} else if strings.HasSuffix(stem, "c") {
				stem = strings.TrimSuffix(stem, "c") + "ç"
			}
		}
		return stem + ending
	case strings.HasSuffix(base, "ir"):
		return strings.TrimSuffix(base, "ir") + frIrEndings[i]
	case strings.HasSuffix(base, "re"):
		return strings.TrimSuffix(base, "re") + frReEndings[i]
	default:
		return base
	}
}

func frImperfectStem(w *Word, i int) string {
	if stem := w.Form("imperfectStem"); stem != "" {
		return stem
	}
	base := w.Base
	switch {
	case strings.HasSuffix(base, "ger"):
		stem := strings.TrimSuffix(base, "r")
		if i == 3 || i == 4 {
			stem = strings.TrimSuffix(stem, "e")
		}
		return stem
	case strings.HasSuffix(base, "er"):
		return strings.TrimSuffix(base, "er")
	case strings.HasSuffix(base, "ir"):
		return strings.TrimSuffix(base, "r") + "ss"
	case strings.HasSuffix(base, "re"):
		return strings.TrimSuffix(base, "re")
	default:
		return base
	}
}

func frParticiple(w *Word) string {
	if f := w.Form("pastParticiple"); f != "" {
		return f
	}
	base := w.Base
	switch {
	case strings.HasSuffix(base, "er"):
		return strings.TrimSuffix(base, "er") + "é"
	case strings.HasSuffix(base, "ir"):
		return strings.TrimSuffix(base, "ir") + "i"
	case strings.HasSuffix(base, "re"):
		return strings.TrimSuffix(base, "re") + "u"
	default:
		return base
	}
}

func (french) verbGroup(verb, reflexive string, _ agreement) string {
	if reflexive == "" {
		return verb
	}
	return frElide(reflexive, verb)
}

func (french) joinPreModifiers(mods []string) string {
	return strings.Join(mods, " ")
}

func (french) determiner(det *Word, next, number, gender string) (string, bool) {
	text := det.Base
	if number == NumberPlural {
		if f := det.Form("plural"); f != "" {
			return f, false
		}
	} else if gender == GenderFeminine {
		if f := det.Form("feminine"); f != "" && !(det.HasFeature(FeaturePossessive) && frStartsWithVowel(next)) {
			text = f
		}
	}
	if (text == "le" || text == "la") && frStartsWithVowel(next) {
		return "l'", true
	}
	return text, false
}

func (french) preposition(prep, object string) string {
	switch prep {
	case "à":
		switch {
		case strings.HasPrefix(object, "le "):
			return "au " + strings.TrimPrefix(object, "le ")
		case strings.HasPrefix(object, "les "):
			return "aux " + strings.TrimPrefix(object, "les ")
		}
	case "de":
		switch {
		case strings.HasPrefix(object, "le "):
			return "du " + strings.TrimPrefix(object, "le ")
		case strings.HasPrefix(object, "les "):
			return "des " + strings.TrimPrefix(object, "les ")
		case frStartsWithVowel(object):
			return "d'" + object
		}
	}
	return joinNonEmpty(" ", prep, object)
}

// frElide joins a clitic to the next word, eliding before a vowel or mute h.
func frElide(clitic, next string) string {
	if frElidable[strings.ToLower(clitic)] && frStartsWithVowel(next) {
		return trimLastRune(clitic) + "'" + next
	}
	return clitic + " " + next
}

func frStartsWithVowel(s string) bool {
	if s == "" {
		return false
	}
	return strings.ContainsRune("aeiouhàâäéèêëîïôöûü", firstRune(s))
}
