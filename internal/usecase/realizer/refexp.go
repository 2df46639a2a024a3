package realizer

import (
	"sort"
	"strings"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/surface"
)

// referringExpressions tracks how many sentences ago each entity was
// mentioned and decides between a name, a definite description and a
// pronoun (McCoy and Strube, 1999).
type referringExpressions struct {
	mentions     map[string]*entity.MentionedEntity
	threadChange bool
}

func newReferringExpressions() *referringExpressions {
	return &referringExpressions{mentions: map[string]*entity.MentionedEntity{}}
}

func (r *referringExpressions) init(key string) *entity.MentionedEntity {
	m, ok := r.mentions[key]
	if !ok {
		m = entity.NewMentionedEntity(key, 0)
		r.mentions[key] = m
	}
	return m
}

// update increments the distance of key, creating it at 1.
func (r *referringExpressions) update(key string) {
	if m, ok := r.mentions[key]; ok {
		m.Distance++
		return
	}
	r.mentions[key] = entity.NewMentionedEntity(key, 1)
}

// tick advances every tracked entity by one sentence.
func (r *referringExpressions) tick() {
	for _, m := range r.mentions {
		m.Distance++
	}
}

func (r *referringExpressions) reset(key string) {
	if m, ok := r.mentions[key]; ok {
		m.Distance = 1
	}
}

// has reports a tracked entity that was mentioned in an earlier sentence.
func (r *referringExpressions) has(key string) bool {
	m, ok := r.mentions[key]
	return ok && m.Distance != 0
}

func (r *referringExpressions) markThreadChange() {
	r.threadChange = true
}

// snapshot returns the tracked entities sorted by key.
func (r *referringExpressions) snapshot() []entity.MentionedEntity {
	out := make([]entity.MentionedEntity, 0, len(r.mentions))
	for _, m := range r.mentions {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// generate applies the referring expression policy to np.
func (r *referringExpressions) generate(key string, np *surface.NounPhrase, c *entity.Context) {
	m, ok := r.mentions[key]
	if !ok {
		return
	}
	ambiguous := r.ambiguous(m, c)

	switch {
	case m.Distance > entity.LongDistance:
		// definite description
	case !ambiguous && m.Key != "" && m.Distance == 1:
		np.SetFeature(surface.FeaturePronominal, surface.True)
	case r.threadChange:
		r.mentions = map[string]*entity.MentionedEntity{}
		r.update(key)
		r.threadChange = false
	case ambiguous:
		// TODO: choose a distinguishing description when several
		// antecedents compete; the noun phrase is kept for now.
	default:
		np.SetFeature(surface.FeaturePronominal, surface.True)
		np.SetFeature(surface.FeaturePerson, surface.PersonThird)
	}
	r.reset(key)
}

// ambiguous reports another entity of the same gender and number
// mentioned in the current or previous sentence.
func (r *referringExpressions) ambiguous(m *entity.MentionedEntity, c *entity.Context) bool {
	if m.Distance >= entity.LongDistance {
		return false
	}
	gender := m.Gender
	if gender == "" {
		if p, ok := c.Person(m.Name); ok {
			gender = string(p.Gender)
		}
	}
	if gender == "" {
		gender = surface.GenderMasculine
	}
	number := m.Number
	if number == "" {
		number = surface.NumberSingular
	}
	for _, other := range r.mentions {
		if other == m || other.Distance >= entity.LongDistance {
			continue
		}
		if other.Gender == gender && other.Number == number {
			return true
		}
	}
	return false
}

// setPronominalFeatures turns a mention of the speaker or listener into a
// first or second person pronoun.
func setPronominalFeatures(c *entity.Context, np *surface.NounPhrase, noun string) {
	noun = strings.TrimPrefix(noun, "%")
	switch {
	case c.Speaker() != nil && c.Speaker().Matches(noun):
		np.SetFeature(surface.FeaturePerson, surface.PersonFirst)
		np.SetFeature(surface.FeaturePronominal, surface.True)
	case c.Listener() != nil && c.Listener().Matches(noun):
		np.SetFeature(surface.FeaturePerson, surface.PersonSecond)
		np.SetFeature(surface.FeaturePronominal, surface.True)
	}
}
