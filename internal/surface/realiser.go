package surface

import (
	"strings"

	"github.com/eslsoft/expreal/internal/entity"
)

// Realiser turns phrase specifications into text for one language.
type Realiser struct {
	lexicon *Lexicon
	grammar grammar
}

// NewRealiser creates a realiser over a lexicon.
func NewRealiser(lex *Lexicon) *Realiser {
	return &Realiser{lexicon: lex, grammar: lex.grammar}
}

func (r *Realiser) Lexicon() *Lexicon { return r.lexicon }

func (r *Realiser) Language() entity.Language { return r.lexicon.language }

// Realise renders an element. Realising a clause also propagates subject
// agreement and clause tense to its main verb phrase, so the verb renders
// correctly when realised on its own afterwards.
func (r *Realiser) Realise(e Element) string {
	switch el := e.(type) {
	case nil:
		return ""
	case *Clause:
		return r.clause(el)
	case *NounPhrase:
		return r.nounPhrase(el)
	case *VerbPhrase:
		return r.verbPhrase(el, false)
	case *PrepositionPhrase:
		return r.prepositionPhrase(el)
	case *Word:
		return el.Base
	default:
		return ""
	}
}

func (r *Realiser) clause(c *Clause) string {
	Agree(c)
	parts := []string{r.nounPhrase(c.subject)}
	if c.verb != nil {
		parts = append(parts, r.verbPhrase(c.verb, true))
	}
	parts = append(parts, r.nounPhrase(c.indirectObject), r.nounPhrase(c.object))
	for _, comp := range c.complements {
		parts = append(parts, r.Realise(comp))
	}
	return joinNonEmpty(" ", parts...)
}

// Agree copies the subject's person, number and gender and the clause's
// tense and aspect onto the main verb phrase.
func Agree(c *Clause) {
	if c.verb == nil {
		return
	}
	if s := c.subject; s != nil {
		c.verb.SetFeature(FeaturePerson, orDefault(s.Feature(FeaturePerson), PersonThird))
		c.verb.SetFeature(FeatureNumber, s.FeatureAsString(FeatureNumber))
		c.verb.SetFeature(FeatureGender, s.FeatureAsString(FeatureGender))
	}
	if tense := c.Feature(FeatureTense); tense != "" {
		c.verb.SetFeature(FeatureTense, tense)
	}
	if c.features.Bool(FeatureProgressive) {
		c.verb.SetFeature(FeatureProgressive, True)
	}
}

func (r *Realiser) verbPhrase(vp *VerbPhrase, withComplements bool) string {
	if vp == nil || vp.head == nil {
		return ""
	}
	agr := vp.agreement()
	verb := r.grammar.verbForm(vp.head, agr)
	reflexive := ""
	if vp.object != nil {
		reflexive = r.reflexive(vp.object, agr)
	}
	text := r.grammar.verbGroup(verb, reflexive, agr)
	if withComplements {
		for _, comp := range vp.complements {
			text = joinNonEmpty(" ", text, r.Realise(comp))
		}
	}
	return text
}

// reflexive picks the reflexive pronoun agreeing with the verb.
func (r *Realiser) reflexive(object *Word, agr agreement) string {
	want := Features{
		FeatureReflexive: True,
		FeaturePerson:    agr.Person,
		FeatureNumber:    agr.Number,
	}
	if agr.Person == PersonThird {
		want[FeatureGender] = agr.Gender
	}
	if w, ok := r.lexicon.GetWordByFeatures(CategoryPronoun, want); ok {
		return w.Base
	}
	return object.Base
}

func (r *Realiser) nounPhrase(np *NounPhrase) string {
	if np == nil {
		return ""
	}
	if np.FeatureAsBool(FeaturePronominal) {
		return r.pronoun(np)
	}
	number := np.FeatureAsString(FeatureNumber)
	gender := np.FeatureAsString(FeatureGender)

	head := ""
	if np.head != nil {
		head = np.head.Base
		if number == NumberPlural && !np.head.IsProper() {
			head = r.grammar.plural(np.head)
		}
	}
	body := joinNonEmpty(" ", r.grammar.joinPreModifiers(np.preModifiers), head, strings.Join(np.postModifiers, " "))
	if np.FeatureAsBool(FeaturePossessive) {
		body = r.grammar.possessive(body)
	}

	switch spec := np.specifier.(type) {
	case *Word:
		det, glued := r.grammar.determiner(spec, firstWord(body), number, gender)
		if glued {
			body = det + body
		} else {
			body = joinNonEmpty(" ", det, body)
		}
	case *NounPhrase:
		body = joinNonEmpty(" ", r.nounPhrase(spec), body)
	}

	for _, pp := range np.complements {
		body = joinNonEmpty(" ", body, r.prepositionPhrase(pp))
	}
	return body
}

// pronoun selects the personal pronoun standing in for a noun phrase.
func (r *Realiser) pronoun(np *NounPhrase) string {
	person := orDefault(np.Feature(FeaturePerson), PersonThird)
	want := Features{
		FeaturePerson: person,
		FeatureNumber: np.FeatureAsString(FeatureNumber),
	}
	if person == PersonThird {
		want[FeatureGender] = np.FeatureAsString(FeatureGender)
	}
	possessive := np.FeatureAsBool(FeaturePossessive) || np.Feature(FeatureDiscourseFunction) == DiscourseSpecifier
	switch {
	case possessive:
		want[FeaturePossessive] = True
	case np.FeatureAsBool(FeatureReflexive):
		want[FeatureReflexive] = True
	case np.role == roleSubject:
		want[FeatureCase] = CaseSubjective
	default:
		want[FeatureCase] = CaseObjective
	}
	if w, ok := r.lexicon.GetWordByFeatures(CategoryPronoun, want); ok {
		return w.Base
	}
	if possessive {
		if w, ok := r.lexicon.GetWordByFeatures(CategoryDeterminer, want); ok {
			return w.Base
		}
	}
	if np.head != nil {
		return np.head.Base
	}
	return ""
}

func (r *Realiser) prepositionPhrase(pp *PrepositionPhrase) string {
	if pp == nil {
		return ""
	}
	prep := ""
	if pp.prep != nil {
		prep = pp.prep.Base
	}
	return r.grammar.preposition(prep, r.nounPhrase(pp.object))
}
