package realizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/surface"
)

// interpretSentence ticks the mention distances once and interprets each
// subclause of the sentence.
func (r *realizer) interpretSentence(sentence string, c *entity.Context) string {
	r.mentions.tick()
	var b strings.Builder
	for i, sub := range splitSubclauses(sentence) {
		b.WriteString(r.interpretClause(sub, c, i == 0))
	}
	return b.String()
}

// interpretClause realises the grammatical blocks of a clause and
// substitutes them in the canned text around them. A clause that cannot
// be parsed is returned verbatim. A pronoun opening the sentence is
// capitalised.
func (r *realizer) interpretClause(text string, c *entity.Context, sentenceStart bool) string {
	blocks, err := findBlocks(text)
	if err != nil {
		r.log.WithError(err).Error("clause left as is")
		return text
	}
	if len(blocks) == 0 {
		return text
	}
	if err := checkDuplicates(blocks); err != nil {
		r.log.WithError(err).Error("clause left as is")
		return text
	}

	clause := surface.NewClause()
	for _, b := range blocks {
		r.addBlock(clause, b, c)
	}
	r.surface.Realise(clause)

	opening := sentenceStart && strings.HasPrefix(strings.TrimSpace(text), blocks[0].raw)
	for i, b := range blocks {
		replacement := r.blockText(b)
		if i == 0 && opening && isPronominal(b.element) {
			replacement = capitalise(replacement)
		}
		text = r.substituteBlock(text, b, replacement)
	}
	return text
}

func isPronominal(e surface.Element) bool {
	np, ok := e.(*surface.NounPhrase)
	return ok && np != nil && np.FeatureAsBool(surface.FeaturePronominal)
}

func checkDuplicates(blocks []*inputBlock) error {
	seen := map[string]bool{}
	for _, b := range blocks {
		if b.kind == blockComplement || b.isInfinitive() {
			continue
		}
		if seen[b.kind] {
			return fmt.Errorf("%w: %s", entity.ErrDuplicateBlockType, b.kind)
		}
		seen[b.kind] = true
	}
	return nil
}

func (r *realizer) addBlock(clause *surface.Clause, b *inputBlock, c *entity.Context) {
	switch b.kind {
	case blockVerb:
		vp := r.verbPhrase(b)
		r.copyFeatures(vp, b.mainFeatures, b, clause)
		clause.SetVerbPhrase(vp)
		b.element = vp
	case blockInf, blockInfinitive:
		vp := r.verbPhrase(b)
		r.copyAgreement(vp, clause)
		vp.SetFeature(surface.FeatureForm, surface.FormInfinitive)
		attach(clause, vp)
		b.element = vp
	case blockComplement:
		if r.isParticiple(b) {
			vp := surface.NewVerbPhrase(r.lexicon.GetWord(b.mainNoun, surface.CategoryVerb))
			r.copyAgreement(vp, clause)
			vp.SetFeature(surface.FeatureForm, surface.FormPastParticiple)
			r.copyFeatures(vp, b.mainFeatures, b, clause)
			attach(clause, vp)
			b.feminineParticiple = vp.Feature(surface.FeatureGender) == surface.GenderFeminine
			b.element = vp
			return
		}
		np := r.nounPhrase(b, clause, c)
		clause.AddComplement(np)
		b.element = np
	case blockSubject:
		np := r.nounPhrase(b, clause, c)
		clause.SetSubject(np)
		b.element = np
	case blockObject:
		np := r.nounPhrase(b, clause, c)
		clause.SetObject(np)
		b.element = np
	case blockIndirectObject:
		np := r.nounPhrase(b, clause, c)
		clause.SetIndirectObject(np)
		b.element = np
	default:
		r.log.WithField("block", b.raw).Warnf("unknown block type %q", b.kind)
	}
}

// verbPhrase reads the words of a verb block. A reflexive pronoun becomes
// the object of the verb.
func (r *realizer) verbPhrase(b *inputBlock) *surface.VerbPhrase {
	vp := surface.NewVerbPhrase(nil)
	for _, part := range strings.Fields(b.value) {
		if w, ok := r.lexicon.Lookup(part, surface.CategoryPronoun); ok && w.HasFeature(surface.FeatureReflexive) {
			vp.SetObject(w)
			b.reflexive = true
			continue
		}
		vp.SetHead(r.lexicon.GetWord(part, surface.CategoryVerb))
	}
	return vp
}

// isParticiple reports a single-word complement that is an inflected verb.
func (r *realizer) isParticiple(b *inputBlock) bool {
	if b.premodifiers != "" || b.postmodifiers != "" || b.ownerNoun != "" {
		return false
	}
	return r.lexicon.HasWordFromVariant(b.mainNoun, surface.CategoryVerb)
}

// copyAgreement copies person, number and gender from the subject, or
// from the clause when there is none.
func (r *realizer) copyAgreement(vp *surface.VerbPhrase, clause *surface.Clause) {
	var from surface.Element = clause
	if s := clause.Subject(); s != nil {
		from = s
	}
	for _, name := range []string{surface.FeaturePerson, surface.FeatureNumber, surface.FeatureGender} {
		vp.SetFeature(name, from.Feature(name))
	}
}

// attach adds a dependent verb phrase to the main verb, or to the clause.
func attach(clause *surface.Clause, vp *surface.VerbPhrase) {
	if main := clause.VerbPhrase(); main != nil {
		main.AddComplement(vp)
		return
	}
	clause.AddComplement(vp)
}

// blockText realises one block after the clause has been realised.
func (r *realizer) blockText(b *inputBlock) string {
	text := r.surface.Realise(b.element)
	if r.language == entity.LanguageDutch && b.isInfinitive() && b.reflexive {
		text = strings.TrimSpace(r.dutchReflexive(b.element) + " " + text)
	}
	if r.language == entity.LanguageFrench && b.feminineParticiple {
		text += "e"
	}
	if b.capitalise {
		text = capitalise(text)
	}
	return text
}

// dutchReflexive returns the pronoun put before a reflexive infinitive.
func (r *realizer) dutchReflexive(e surface.Element) string {
	if e == nil {
		return ""
	}
	w, ok := r.lexicon.GetWordByFeatures(surface.CategoryPronoun, surface.Features{
		surface.FeatureNumber:    orDefault(e.Feature(surface.FeatureNumber), surface.NumberSingular),
		surface.FeaturePerson:    orDefault(e.Feature(surface.FeaturePerson), surface.PersonThird),
		surface.FeatureReflexive: surface.True,
	})
	if !ok {
		return ""
	}
	return w.Base
}

// substituteBlock replaces the raw block by its text, contracting French
// prepositions with the article that starts it.
func (r *realizer) substituteBlock(text string, b *inputBlock, replacement string) string {
	if b.ghost {
		return strings.Replace(text, b.raw, "", 1)
	}
	if r.language == entity.LanguageFrench {
		for _, rule := range contractions {
			if rule.skipObject && b.kind == blockObject {
				continue
			}
			target := rule.before + b.raw
			if !strings.Contains(text, target) || !strings.HasPrefix(strings.ToLower(replacement), rule.article) {
				continue
			}
			return strings.Replace(text, target, rule.after+replacement[len(rule.article):], 1)
		}
		if target := " de " + b.raw; strings.Contains(text, target) && elides(replacement) {
			return strings.Replace(text, target, " d'"+replacement, 1)
		}
	}
	return strings.Replace(text, b.raw, replacement, 1)
}

// contractions are the French preposition and article fusions.
var contractions = []struct {
	before, article, after string
	skipObject             bool
}{
	{" à ", "le ", " au ", false},
	{" à ", "les ", " aux ", false},
	{" de ", "le ", " du ", true},
	{" de ", "les ", " des ", true},
}

func capitalise(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
