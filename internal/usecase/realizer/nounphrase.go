package realizer

import (
	"strings"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/surface"
)

// nounPhrase builds the noun phrase of a subject, object or complement
// block and records the mention for later referring expressions.
func (r *realizer) nounPhrase(b *inputBlock, clause *surface.Clause, c *entity.Context) *surface.NounPhrase {
	key := entity.MentionKey(b.mainNoun, b.ownerNoun)
	r.mentions.init(key)

	np := surface.NewNounPhrase(nil)
	name, gender, ok := r.resolveNoun(b.mainNoun, c)
	if !ok {
		r.log.WithField("block", b.raw).Errorf("no person matches %q", b.mainNoun)
		return np
	}
	r.populate(np, name, gender)
	r.copyFeatures(np, b.mainFeatures, b, clause)

	setPronominalFeatures(c, np, b.mainNoun)
	if !np.FeatureAsBool(surface.FeaturePronominal) && r.mentions.has(key) {
		r.mentions.generate(key, np, c)
	}

	var owner *surface.NounPhrase
	if b.ownerNoun != "" {
		owner = r.ownerPhrase(b, key, clause, c)
	}

	r.addPreModifiers(np, b.premodifiers)
	if b.postmodifiers != "" {
		np.AddPostModifier(b.postmodifiers)
	}
	if owner != nil {
		r.addOwner(np, owner)
	}

	m := r.mentions.init(key)
	m.Gender = np.FeatureAsString(surface.FeatureGender)
	m.Number = np.FeatureAsString(surface.FeatureNumber)
	return np
}

// ownerPhrase builds the possessor of a block. The owner falls back on its
// own mention when the owned entity was never mentioned.
func (r *realizer) ownerPhrase(b *inputBlock, key string, clause *surface.Clause, c *entity.Context) *surface.NounPhrase {
	name, gender, ok := r.resolveNoun(b.ownerNoun, c)
	if !ok {
		r.log.WithField("block", b.raw).Errorf("no person matches owner %q", b.ownerNoun)
		return nil
	}
	owner := surface.NewNounPhrase(nil)
	r.populate(owner, name, gender)
	r.copyFeatures(owner, b.ownerFeatures, b, clause)
	owner.SetFeature(surface.FeaturePossessive, surface.True)

	setPronominalFeatures(c, owner, b.ownerNoun)
	if owner.FeatureAsBool(surface.FeaturePronominal) {
		return owner
	}
	ownerKey := entity.MentionKey(variableSigil+strings.TrimPrefix(b.ownerNoun, variableSigil), "")
	switch {
	case r.mentions.has(key):
		r.mentions.generate(key, owner, c)
	case r.mentions.has(ownerKey):
		r.mentions.generate(ownerKey, owner, c)
	}
	return owner
}

// resolveNoun turns a %person reference into its name and gender. A "*"
// in the reference matches any person id. Other nouns are kept as is.
func (r *realizer) resolveNoun(noun string, c *entity.Context) (name, gender string, ok bool) {
	id, isVariable := strings.CutPrefix(noun, variableSigil)
	if !isVariable {
		return noun, "", true
	}
	var p *entity.Person
	if strings.Contains(id, "*") {
		p, ok = c.PersonMatching(id)
	} else {
		p, ok = c.Person(id)
	}
	if !ok {
		return "", "", false
	}
	name = r.selector.Select(p.ID, c)
	if name == "" {
		name = p.ID
	}
	return name, string(p.Gender), true
}

// populate sets the head noun. Its gender is the person's, else the
// lexicon's, else masculine.
func (r *realizer) populate(np *surface.NounPhrase, name, gender string) {
	if name == "" {
		return
	}
	head := r.lexicon.GetWord(name, surface.CategoryNoun)
	if gender == "" {
		gender = head.Feature(surface.FeatureGender)
	}
	if gender == "" {
		gender = surface.GenderMasculine
	}
	head.SetFeature(surface.FeatureGender, gender)
	np.SetHead(head)
}

// copyFeatures applies dotted block features such as "plural.c" or "f".
// Tense features apply to the whole clause.
func (r *realizer) copyFeatures(e surface.Element, features string, b *inputBlock, clause *surface.Clause) {
	for _, token := range strings.Split(features, ".") {
		token = strings.ToLower(strings.TrimSpace(token))
		switch token {
		case "":
		case "poss":
			e.SetFeature(surface.FeaturePossessive, surface.True)
		case "spec":
			e.SetFeature(surface.FeatureDiscourseFunction, surface.DiscourseSpecifier)
		case "singular":
			e.SetFeature(surface.FeatureNumber, surface.NumberSingular)
		case "plural":
			e.SetFeature(surface.FeatureNumber, surface.NumberPlural)
		case "c", "capitalise", "capitalize":
			b.capitalise = true
		case "past":
			clause.SetFeature(surface.FeatureTense, surface.TensePast)
			if r.language == entity.LanguageFrench {
				clause.SetFeature(surface.FeatureProgressive, surface.True)
			}
		case "cond", "conditional":
			clause.SetFeature(surface.FeatureTense, surface.TenseConditional)
		default:
			if g := entity.ParseGender(token); g != entity.GenderUnspecified {
				e.SetFeature(surface.FeatureGender, string(g))
				continue
			}
			r.log.WithField("block", b.raw).Debugf("ignoring feature %q", token)
		}
	}
}

// addPreModifiers turns a known determiner into the specifier and keeps
// every other word as a premodifier.
func (r *realizer) addPreModifiers(np *surface.NounPhrase, premodifiers string) {
	for _, word := range strings.Fields(premodifiers) {
		word = strings.Trim(word, ",")
		if word == "" {
			continue
		}
		if det, ok := r.lexicon.Lookup(word, surface.CategoryDeterminer); ok {
			np.SetSpecifier(det)
			continue
		}
		np.AddPreModifier(word)
	}
}

// addOwner attaches the possessor: a possessive determiner or a "de"
// phrase in French, a genitive specifier or an "of" phrase otherwise.
func (r *realizer) addOwner(np, owner *surface.NounPhrase) {
	if r.language == entity.LanguageFrench {
		if owner.FeatureAsBool(surface.FeaturePronominal) {
			det, ok := r.lexicon.GetWordByFeatures(surface.CategoryDeterminer, surface.Features{
				surface.FeaturePossessive: surface.True,
				surface.FeaturePerson:     owner.Feature(surface.FeaturePerson),
				surface.FeatureNumber:     owner.FeatureAsString(surface.FeatureNumber),
			})
			if ok {
				np.SetSpecifier(det)
				return
			}
		}
		r.addOfPhrase(np, owner)
		return
	}
	if _, ok := np.Specifier().(*surface.Word); ok {
		r.addOfPhrase(np, owner)
		return
	}
	np.SetSpecifier(owner)
}

func (r *realizer) addOfPhrase(np, owner *surface.NounPhrase) {
	prep, ok := r.lexicon.GetWordByID(surface.OfPrepositionID)
	if !ok {
		prep = surface.NewWord("of", surface.CategoryPreposition)
	}
	owner.SetFeature(surface.FeaturePossessive, surface.False)
	np.AddComplement(surface.NewPrepositionPhrase(prep, owner))
}
