package realizer

import (
	"math/rand"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/expreal/internal/entity"
)

// selector picks the template for a key: verified texts only, user tags
// first, then the most specific, random among equals.
type selector struct {
	store     *TemplateStore
	evaluator *conditionEvaluator
	rng       *rand.Rand
	language  entity.Language
	log       *logrus.Entry
}

func (s *selector) Select(key string, c *entity.Context) string {
	if p, ok := c.Person(key); ok && p.HasRealisedNames() {
		return p.RealisedName(s.language)
	}

	texts, ok := s.store.Lookup(key)
	if !ok {
		s.log.WithError(entity.ErrUnknownAct).Errorf("no text found for %q", key)
		return ""
	}

	candidates := mostSpecific(lo.Filter(texts, func(t ConditionalText, _ int) bool {
		return t.verified(s.evaluator, c)
	}))
	if len(candidates) == 0 {
		s.log.WithError(entity.ErrNoCandidateTemplate).Errorf("no verified text for %q among %d", key, len(texts))
		return ""
	}
	return candidates[s.rng.Intn(len(candidates))].Template
}

func mostSpecific(verified []ConditionalText) []ConditionalText {
	if tagged := lo.Filter(verified, func(t ConditionalText, _ int) bool { return t.UserDefined }); len(tagged) > 0 {
		return tagged
	}
	if len(verified) == 0 {
		return nil
	}
	best := lo.MaxBy(verified, func(a, b ConditionalText) bool { return a.Specificity > b.Specificity })
	return lo.Filter(verified, func(t ConditionalText, _ int) bool { return t.Specificity == best.Specificity })
}
