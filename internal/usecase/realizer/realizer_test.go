package realizer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/surface"
)

func newTestRealizer(t *testing.T, lang entity.Language) (Realizer, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	store, err := LoadTemplateFile(filepath.Join("testdata", "templates.csv"), lang, logger)
	require.NoError(t, err)
	lex, err := surface.LoadLexicon(lang)
	require.NoError(t, err)
	r, err := New(store, lex, logger, WithSeed(42))
	require.NoError(t, err)
	return r, hook
}

// newTestContext registers the cast of the fixtures and sets the speaker
// and listener by id.
func newTestContext(speaker, listener string) *entity.Context {
	c := entity.NewContext()
	for _, p := range []*entity.Person{
		entity.NewPerson("frank", entity.GenderMasculine),
		entity.NewPerson("julia", entity.GenderFeminine),
		entity.NewPerson("paul", entity.GenderMasculine),
		entity.NewPerson("pete", entity.GenderMasculine),
		entity.NewPerson("john", entity.GenderMasculine),
		entity.NewPerson("lili", entity.GenderFeminine),
		entity.NewPerson("olivia", entity.GenderFeminine),
	} {
		c.AddPerson(p)
		if p.ID == speaker {
			c.SetSpeaker(p)
		}
		if p.ID == listener {
			c.SetListener(p)
		}
	}
	return c
}

func inform(testName string, args ...entity.Argument) entity.Predicate {
	return entity.NewPredicate("InformIntention", append([]entity.Argument{entity.NewArgument("test", testName)}, args...)...)
}

func loggedError(hook *test.Hook, target error) bool {
	for _, e := range hook.AllEntries() {
		if err, ok := e.Data[logrus.ErrorKey].(error); ok && errors.Is(err, target) {
			return true
		}
	}
	return false
}

func TestGetTexts(t *testing.T) {
	tests := []struct {
		name     string
		test     string
		speaker  string
		listener string
		args     []entity.Argument
		tags     []string
		want     map[entity.Language]string
	}{
		{
			name: "speaker and listener pronouns", test: "pronoun", speaker: "julia", listener: "frank",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "You are my best friend.",
				entity.LanguageFrench:  "Tu es mon meilleur ami.",
				entity.LanguageDutch:   "Jij bent mijn beste vriend.",
			},
		},
		{
			name: "verb agreement", test: "verbs", speaker: "pete", listener: "frank",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "I run.",
				entity.LanguageFrench:  "Je cours.",
				entity.LanguageDutch:   "Ik ren.",
			},
		},
		{
			name: "reflexive infinitive", test: "verbs-infinitivereflexive", speaker: "pete", listener: "frank",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "I want to amuse myself.",
				entity.LanguageFrench:  "Je veux m'amuser.",
				entity.LanguageDutch:   "Ik wil me amuseren.",
			},
		},
		{
			name: "third person reflexive infinitive", test: "verbs-infinitivereflexive", speaker: "julia", listener: "lili",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Pete wants to amuse himself.",
				entity.LanguageFrench:  "Pierre veut s'amuser.",
				entity.LanguageDutch:   "Pieter wil zich amuseren.",
			},
		},
		{
			name: "person name", test: "nounfeatures1", speaker: "olivia", listener: "lili",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Pete",
				entity.LanguageFrench:  "Pierre",
				entity.LanguageDutch:   "Pieter",
			},
		},
		{
			name: "owner", test: "nounfeatures2", speaker: "olivia", listener: "lili",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Frank's friend",
				entity.LanguageFrench:  "ami de Frank",
				entity.LanguageDutch:   "Frank's vriend",
			},
		},
		{
			name: "owner with determiner", test: "nounfeatures3", speaker: "olivia", listener: "lili",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "the friend of Frank",
				entity.LanguageFrench:  "l'ami de Frank",
				entity.LanguageDutch:   "de vriend van Frank",
			},
		},
		{
			name: "owner with determiner to a bystander", test: "nounfeatures3", speaker: "julia", listener: "olivia",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "the friend of Frank",
				entity.LanguageFrench:  "l'ami de Frank",
				entity.LanguageDutch:   "de vriend van Frank",
			},
		},
		{
			name: "owner with premodifiers", test: "nounfeatures4", speaker: "olivia", listener: "lili",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Frank's big, red jacket",
				entity.LanguageFrench:  "grande veste de Frank",
				entity.LanguageDutch:   "Frank's grote rode jas",
			},
		},
		{
			name: "feminine participle", test: "participle", speaker: "julia", listener: "frank",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "I am tired.",
				entity.LanguageFrench:  "Je suis fatiguée.",
				entity.LanguageDutch:   "Ik ben moe.",
			},
		},
		{
			name: "ghost subject", test: "ghost", speaker: "frank", listener: "pete",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "runs.",
				entity.LanguageFrench:  "court.",
				entity.LanguageDutch:   "rent.",
			},
		},
		{
			name: "one sentence two subjects", test: "splitsentence-subjects", speaker: "pete", listener: "olivia",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Julia runs and Frank walks.",
				entity.LanguageFrench:  "Julia court et Frank marche.",
				entity.LanguageDutch:   "Julia rent en Frank loopt.",
			},
		},
		{
			name: "argument reference", test: "dynamicargument", speaker: "frank", listener: "julia",
			args: []entity.Argument{entity.NewArgument("argument", "Chair")},
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Please, go sit on the chair!",
				entity.LanguageFrench:  "S'il te plaît, va t'asseoir sur la chaise!",
				entity.LanguageDutch:   "Ga alsjeblieft op de stoel zitten!",
			},
		},
		{
			name: "list condition", test: "tags", speaker: "frank", listener: "julia",
			args: []entity.Argument{entity.NewArgument("tags", "[blue, red]")},
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Red-EN",
				entity.LanguageFrench:  "Red-FR",
				entity.LanguageDutch:   "Red-NL",
			},
		},
		{
			name: "negated list condition", test: "tags", speaker: "frank", listener: "julia",
			args: []entity.Argument{entity.NewArgument("tags", "[blue]")},
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Plain-EN",
				entity.LanguageFrench:  "Plain-FR",
				entity.LanguageDutch:   "Plain-NL",
			},
		},
		{
			name: "least specific when nothing else verifies", test: "specificity", speaker: "frank", listener: "julia",
			want: map[entity.Language]string{
				entity.LanguageEnglish: "General-EN",
				entity.LanguageFrench:  "General-FR",
				entity.LanguageDutch:   "General-NL",
			},
		},
		{
			name: "most specific wins", test: "specificity", speaker: "frank", listener: "julia",
			args: []entity.Argument{entity.NewArgument("mood", "happy")},
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Specific-EN",
				entity.LanguageFrench:  "Specific-FR",
				entity.LanguageDutch:   "Specific-NL",
			},
		},
		{
			name: "specific without user tag", test: "dominance", speaker: "frank", listener: "julia",
			args: []entity.Argument{entity.NewArgument("mood", "happy"), entity.NewArgument("weather", "sunny")},
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Specific-EN",
				entity.LanguageFrench:  "Specific-FR",
				entity.LanguageDutch:   "Specific-NL",
			},
		},
		{
			name: "user tag beats specificity", test: "dominance", speaker: "frank", listener: "julia",
			args: []entity.Argument{entity.NewArgument("mood", "happy"), entity.NewArgument("weather", "sunny")},
			tags: []string{"@userChoice"},
			want: map[entity.Language]string{
				entity.LanguageEnglish: "Chosen-EN",
				entity.LanguageFrench:  "Chosen-FR",
				entity.LanguageDutch:   "Chosen-NL",
			},
		},
	}
	for _, lang := range entity.Languages {
		for _, tt := range tests {
			t.Run(lang.String()+"/"+tt.name, func(t *testing.T) {
				r, _ := newTestRealizer(t, lang)
				c := newTestContext(tt.speaker, tt.listener)
				for _, tag := range tt.tags {
					c.AddUserDefinedCondition(tag, "")
				}
				got := r.GetTexts(inform(tt.test, tt.args...), c)
				assert.Equal(t, []string{tt.want[lang]}, got)
			})
		}
	}
}

func TestGetTextsNumericCondition(t *testing.T) {
	want := map[entity.Language][2]string{
		entity.LanguageEnglish: {"John likes it.", "John hates it."},
		entity.LanguageFrench:  {"Jean aime ça.", "Jean déteste ça."},
		entity.LanguageDutch:   {"Jan vindt het leuk.", "Jan haat het."},
	}
	for _, lang := range entity.Languages {
		c := newTestContext("frank", "julia")
		john, _ := c.Person("john")

		john.SetProperty("contentedness", 0.8)
		r, _ := newTestRealizer(t, lang)
		assert.Equal(t, []string{want[lang][0]}, r.GetTexts(inform("nounfeatures10"), c), lang)

		john.UpdateProperty("contentedness", -0.6)
		r, _ = newTestRealizer(t, lang)
		assert.Equal(t, []string{want[lang][1]}, r.GetTexts(inform("nounfeatures10"), c), lang)
	}
}

func TestGetTextsPronounAcrossCalls(t *testing.T) {
	want := map[entity.Language][2]string{
		entity.LanguageEnglish: {"John likes it.", "He hates it."},
		entity.LanguageFrench:  {"Jean aime ça.", "Il déteste ça."},
		entity.LanguageDutch:   {"Jan vindt het leuk.", "Hij haat het."},
	}
	for _, lang := range entity.Languages {
		r, _ := newTestRealizer(t, lang)
		c := newTestContext("frank", "julia")
		john, _ := c.Person("john")

		john.SetProperty("contentedness", 0.8)
		assert.Equal(t, []string{want[lang][0]}, r.GetTexts(inform("nounfeatures10"), c), lang)

		john.UpdateProperty("contentedness", -0.6)
		assert.Equal(t, []string{want[lang][1]}, r.GetTexts(inform("nounfeatures10"), c), lang)
	}
}

func TestGetTextsFrenchContractions(t *testing.T) {
	tests := []struct {
		test string
		args []entity.Argument
		want string
	}{
		{"noun-contraction-ale", []entity.Argument{entity.NewArgument("location", "salon")}, "Aller au salon."},
		{"noun-contraction-dele", nil, "En direction du salon."},
		{"noun-contraction-variable", []entity.Argument{entity.NewArgument("location", "salon")}, "Aller au salon."},
		{"noun-elision", []entity.Argument{entity.NewArgument("task", "goSomewhere")}, "Ca te dirait d'aller?"},
	}
	for _, tt := range tests {
		t.Run(tt.test, func(t *testing.T) {
			r, _ := newTestRealizer(t, entity.LanguageFrench)
			got := r.GetTexts(inform(tt.test, tt.args...), newTestContext("frank", "julia"))
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestGetTextsLongDistance(t *testing.T) {
	r, _ := newTestRealizer(t, entity.LanguageEnglish)

	got := r.GetTexts(inform("refexp-longdistance"), newTestContext("frank", "julia"))
	assert.Equal(t, []string{
		"Paul needs medicine. The medicine is in the drawer. The drawer is closed. Paul opens the drawer. He takes the medicine.",
	}, got)
}

func TestGetTextsDialog(t *testing.T) {
	want := map[entity.Language][]string{
		entity.LanguageEnglish: {"Hi, Julia!", "Hello, Frank!"},
		entity.LanguageFrench:  {"Salut, Julia!", "Bonjour, Frank!"},
		entity.LanguageDutch:   {"Hoi, Julia!", "Hallo, Frank!"},
	}
	for _, lang := range entity.Languages {
		r, _ := newTestRealizer(t, lang)
		c := newTestContext("frank", "julia")

		assert.Equal(t, want[lang], r.GetTexts(inform("switchdialog1"), c), lang)
		assert.Equal(t, "frank", c.Speaker().ID, "the caller's context keeps its roles")
	}
}

func TestGetTextsUserDefinedCondition(t *testing.T) {
	r, _ := newTestRealizer(t, entity.LanguageEnglish)

	c := newTestContext("frank", "julia")
	assert.Equal(t, []string{"Default-EN"}, r.GetTexts(inform("userdefinedconditions1"), c))

	c.AddUserDefinedCondition("@userChoice", "")
	assert.Equal(t, []string{"Button1-EN"}, r.GetTexts(inform("userdefinedconditions1"), c))
}

func TestGetTextsFallbacks(t *testing.T) {
	r, hook := newTestRealizer(t, entity.LanguageEnglish)
	c := newTestContext("frank", "julia")

	got := r.GetTexts(entity.NewPredicate("Unknown", entity.NewArgument("test", "x")), c)
	assert.Equal(t, []string{"Unknown(test:x)"}, got)
	assert.True(t, loggedError(hook, entity.ErrUnknownAct))

	got = r.GetTexts(entity.NewPredicate("Bad"), c)
	assert.Equal(t, []string{"Bad()"}, got)
	assert.True(t, loggedError(hook, entity.ErrNoCandidateTemplate))

	got = r.GetTexts(inform("unbalanced"), c)
	assert.Equal(t, []string{"{subject: Julia {verb: run}."}, got)
	assert.True(t, loggedError(hook, entity.ErrUnbalancedBraces))

	got = r.GetTexts(inform("duplicate"), c)
	assert.Equal(t, []string{"{subject: Julia} {verb: take} {object: the |chair|} {object: the |box|}."}, got)
	assert.True(t, loggedError(hook, entity.ErrDuplicateBlockType))
}

func TestGetTextsInvalidContext(t *testing.T) {
	r, hook := newTestRealizer(t, entity.LanguageEnglish)

	assert.Empty(t, r.GetTexts(inform("verbs"), newTestContext("", "")))
	assert.True(t, loggedError(hook, entity.ErrMissingSpeaker))
	assert.Empty(t, r.GetTexts(inform("verbs"), nil))

	c := newTestContext("pete", "")
	assert.Equal(t, []string{"I run."}, r.GetTexts(inform("verbs"), c))
	assert.True(t, loggedError(hook, entity.ErrMissingListener))
}

func TestInterpretCyclicTemplate(t *testing.T) {
	r, hook := newTestRealizer(t, entity.LanguageEnglish)

	assert.Equal(t, "%loop", r.Interpret("%loop", newTestContext("frank", "julia")))
	assert.True(t, loggedError(hook, entity.ErrCyclicExpansion))
}

func TestInterpretVariables(t *testing.T) {
	r, hook := newTestRealizer(t, entity.LanguageEnglish)
	c := newTestContext("frank", "julia")
	c.AddArgument(entity.NewArgument("who", "pete"))

	assert.Equal(t, "Frank meets Julia.", r.Interpret("%speaker meets %listener.", c))
	assert.Equal(t, "Pete says hi.", r.Interpret("$who says hi.", c))
	assert.Equal(t, "Pete says hi.", r.Interpret("%who says hi.", c))
	assert.Equal(t, "%nobody waits.", r.Interpret("%nobody waits.", c))
	assert.Equal(t, "100% sure", r.Interpret("100% sure", c))
	assert.True(t, loggedError(hook, entity.ErrEmptyVariable))
}

func TestInterpretPrefixedIdentifiers(t *testing.T) {
	r, _ := newTestRealizer(t, entity.LanguageEnglish)
	c := newTestContext("frank", "julia")
	c.AddArgument(entity.NewArgument("a", "pete"))
	c.AddArgument(entity.NewArgument("ab", "john"))

	assert.Equal(t, "Pete and John", r.Interpret("$a and $ab", c))
	assert.Equal(t, "John and Pete", r.Interpret("$ab and $a", c))
	assert.Equal(t, "Pete and John", r.Interpret("%a and %ab", c))
}

func TestInterpretFrenchContractionKeepsPosition(t *testing.T) {
	r, _ := newTestRealizer(t, entity.LanguageFrench)
	c := newTestContext("frank", "julia")
	c.AddArgument(entity.NewArgument("location", "salon"))
	c.AddArgument(entity.NewArgument("task", "goSomewhere"))
	c.AddArgument(entity.NewArgument("who", "john"))

	assert.Equal(t, "Aller au salon, Jean.", r.Interpret("Aller à $location, $who.", c))
	assert.Equal(t, "Envie d'aller, Jean.", r.Interpret("Envie de $task, $who.", c))
}

func TestInterpretPostModifierWithFeatures(t *testing.T) {
	r, _ := newTestRealizer(t, entity.LanguageEnglish)
	c := newTestContext("frank", "julia")

	assert.Equal(t, "the dogs in the house run.", r.Interpret("{subject: the |dog.plural| in the house} {verb: run}.", c))
}

func TestInterpretRealisedNames(t *testing.T) {
	r, _ := newTestRealizer(t, entity.LanguageFrench)
	c := newTestContext("frank", "julia")
	c.AddPerson(entity.NewPerson("bob", entity.GenderMasculine).WithRealisedNames("Bob", "Robert", "Bob"))

	assert.Equal(t, "Robert court.", r.Interpret("{subject: %bob} {verb: courir}.", c))
	assert.Equal(t, "Robert", r.Interpret("%Bob", c))
}

func TestReferringExpressionsAcrossCalls(t *testing.T) {
	const (
		paul  = "{subject: %paul.c} {verb: run}."
		julia = "{subject: %julia.c} {verb: walk}."
	)
	c := newTestContext("frank", "olivia")

	r, _ := newTestRealizer(t, entity.LanguageEnglish)
	assert.Equal(t, "Paul runs.", r.Interpret(paul, c))
	assert.Equal(t, "He runs.", r.Interpret(paul, c))
	assert.Equal(t, "He runs.", r.Interpret(paul, c))
	assert.Equal(t, "Julia walks.", r.Interpret(julia, c))
	assert.Equal(t, "Paul runs.", r.Interpret(paul, c), "long distance")

	r, _ = newTestRealizer(t, entity.LanguageEnglish)
	assert.Equal(t, "Paul runs.", r.Interpret(paul, c))
	assert.Equal(t, "Julia walks.", r.Interpret(julia, c))
	assert.Equal(t, "He runs.", r.Interpret(paul, c))

	r, _ = newTestRealizer(t, entity.LanguageEnglish)
	assert.Equal(t, "Paul runs.", r.Interpret(paul, c))
	assert.Equal(t, "Julia walks.", r.Interpret(julia, c))
	r.MarkThreadChange()
	assert.Equal(t, "Paul runs.", r.Interpret(paul, c))

	mentions := r.Mentions()
	require.Len(t, mentions, 1)
	assert.Equal(t, "%paul<", mentions[0].Key)
	assert.Equal(t, 1, mentions[0].Distance)
}

func TestNewRejectsMismatchedLanguages(t *testing.T) {
	logger, _ := test.NewNullLogger()
	lex, err := surface.LoadLexicon(entity.LanguageFrench)
	require.NoError(t, err)

	_, err = New(NewTemplateStore(entity.LanguageEnglish), lex, logger)
	assert.ErrorIs(t, err, entity.ErrUnsupportedLanguage)
}

func TestNewFromFile(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r, err := NewFromFile(filepath.Join("testdata", "templates.csv"), entity.LanguageDutch, logger, WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, entity.LanguageDutch, r.Language())

	texts := r.GetTexts(inform("verbs"), newTestContext("pete", "frank"))
	assert.Equal(t, []string{"Ik ren."}, texts)

	_, err = NewFromFile(filepath.Join("testdata", "missing.csv"), entity.LanguageDutch, logger)
	assert.Error(t, err)
}
