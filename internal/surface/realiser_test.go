package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/expreal/internal/entity"
)

func newTestRealiser(t *testing.T, lang entity.Language) *Realiser {
	t.Helper()
	lex, err := LoadLexicon(lang)
	require.NoError(t, err)
	return NewRealiser(lex)
}

func properNoun(r *Realiser, name, gender string) *NounPhrase {
	w := r.Lexicon().GetWord(name, CategoryNoun)
	w.SetFeature(FeatureGender, gender)
	return NewNounPhrase(w)
}

func TestVerbAgreement(t *testing.T) {
	cases := []struct {
		lang   entity.Language
		verb   string
		person string
		number string
		tense  string
		want   string
	}{
		{entity.LanguageEnglish, "be", PersonFirst, NumberSingular, "", "am"},
		{entity.LanguageEnglish, "be", PersonSecond, NumberSingular, "", "are"},
		{entity.LanguageEnglish, "need", PersonThird, NumberSingular, "", "needs"},
		{entity.LanguageEnglish, "carry", PersonThird, NumberSingular, "", "carries"},
		{entity.LanguageEnglish, "walk", PersonThird, NumberSingular, TensePast, "walked"},
		{entity.LanguageEnglish, "run", PersonFirst, NumberSingular, TensePast, "ran"},
		{entity.LanguageEnglish, "run", PersonFirst, NumberSingular, TenseConditional, "would run"},
		{entity.LanguageFrench, "être", PersonSecond, NumberSingular, "", "es"},
		{entity.LanguageFrench, "aimer", PersonThird, NumberSingular, "", "aime"},
		{entity.LanguageFrench, "manger", PersonFirst, NumberPlural, "", "mangeons"},
		{entity.LanguageFrench, "finir", PersonThird, NumberPlural, "", "finissent"},
		{entity.LanguageFrench, "aimer", PersonFirst, NumberSingular, TenseConditional, "aimerais"},
		{entity.LanguageFrench, "danser", PersonThird, NumberSingular, TensePast, "a dansé"},
		{entity.LanguageDutch, "zijn", PersonSecond, NumberSingular, "", "bent"},
		{entity.LanguageDutch, "rennen", PersonFirst, NumberSingular, "", "ren"},
		{entity.LanguageDutch, "rennen", PersonThird, NumberSingular, "", "rent"},
		{entity.LanguageDutch, "haten", PersonThird, NumberSingular, "", "haat"},
		{entity.LanguageDutch, "vinden", PersonThird, NumberSingular, "", "vindt"},
		{entity.LanguageDutch, "leven", PersonFirst, NumberSingular, "", "leef"},
		{entity.LanguageDutch, "dansen", PersonThird, NumberPlural, "", "dansen"},
		{entity.LanguageDutch, "dansen", PersonThird, NumberSingular, TensePast, "danste"},
		{entity.LanguageDutch, "amuseren", PersonThird, NumberPlural, TensePast, "amuseerden"},
		{entity.LanguageDutch, "rennen", PersonThird, NumberPlural, TenseConditional, "zouden rennen"},
	}
	for _, tc := range cases {
		t.Run(string(tc.lang)+"/"+tc.verb+"/"+tc.want, func(t *testing.T) {
			r := newTestRealiser(t, tc.lang)
			vp := NewVerbPhrase(r.Lexicon().GetWord(tc.verb, CategoryVerb))
			vp.SetFeature(FeaturePerson, tc.person)
			vp.SetFeature(FeatureNumber, tc.number)
			vp.SetFeature(FeatureTense, tc.tense)
			assert.Equal(t, tc.want, r.Realise(vp))
		})
	}
}

func TestClauseAgreementFromSubject(t *testing.T) {
	r := newTestRealiser(t, entity.LanguageEnglish)
	c := NewClause()
	subject := properNoun(r, "Paul", GenderMasculine)
	c.SetSubject(subject)
	vp := NewVerbPhrase(r.Lexicon().GetWord("need", CategoryVerb))
	c.SetVerbPhrase(vp)
	c.SetObject(NewNounPhrase(r.Lexicon().GetWord("medicine", CategoryNoun)))

	assert.Equal(t, "Paul needs medicine", r.Realise(c))
	assert.Equal(t, "needs", r.Realise(vp))

	subject.SetFeature(FeaturePronominal, True)
	subject.SetFeature(FeaturePerson, PersonFirst)
	c.SetFeature(FeatureTense, TensePast)
	assert.Equal(t, "I needed medicine", r.Realise(c))
}

func TestPronouns(t *testing.T) {
	cases := []struct {
		lang       entity.Language
		person     string
		gender     string
		subject    bool
		possessive bool
		want       string
	}{
		{entity.LanguageEnglish, PersonThird, GenderFeminine, true, false, "she"},
		{entity.LanguageEnglish, PersonThird, GenderMasculine, false, false, "him"},
		{entity.LanguageEnglish, PersonSecond, GenderFeminine, false, true, "your"},
		{entity.LanguageFrench, PersonFirst, GenderMasculine, true, false, "je"},
		{entity.LanguageFrench, PersonThird, GenderFeminine, true, false, "elle"},
		{entity.LanguageFrench, PersonFirst, GenderMasculine, false, true, "mon"},
		{entity.LanguageDutch, PersonSecond, GenderMasculine, true, false, "jij"},
		{entity.LanguageDutch, PersonThird, GenderFeminine, false, true, "haar"},
	}
	for _, tc := range cases {
		t.Run(string(tc.lang)+"/"+tc.want, func(t *testing.T) {
			r := newTestRealiser(t, tc.lang)
			np := properNoun(r, "Julia", tc.gender)
			np.SetFeature(FeaturePronominal, True)
			np.SetFeature(FeaturePerson, tc.person)
			if tc.possessive {
				np.SetFeature(FeaturePossessive, True)
			}
			c := NewClause()
			if tc.subject {
				c.SetSubject(np)
			} else {
				c.SetObject(np)
			}
			assert.Equal(t, tc.want, r.Realise(np))
		})
	}
}

func TestNounPhrases(t *testing.T) {
	t.Run("english premodifiers and possessor", func(t *testing.T) {
		r := newTestRealiser(t, entity.LanguageEnglish)
		np := NewNounPhrase(r.Lexicon().GetWord("jacket", CategoryNoun))
		np.AddPreModifier("big")
		np.AddPreModifier("red")
		owner := properNoun(r, "Frank", GenderMasculine)
		owner.SetFeature(FeaturePossessive, True)
		np.SetSpecifier(owner)
		assert.Equal(t, "Frank's big, red jacket", r.Realise(np))
	})

	t.Run("english article", func(t *testing.T) {
		r := newTestRealiser(t, entity.LanguageEnglish)
		det, ok := r.Lexicon().Lookup("a", CategoryDeterminer)
		require.True(t, ok)
		np := NewNounPhrase(r.Lexicon().GetWord("idea", CategoryNoun))
		np.SetSpecifier(det)
		assert.Equal(t, "an idea", r.Realise(np))

		np = NewNounPhrase(r.Lexicon().GetWord("child", CategoryNoun))
		the, _ := r.Lexicon().Lookup("the", CategoryDeterminer)
		np.SetSpecifier(the)
		np.SetFeature(FeatureNumber, NumberPlural)
		assert.Equal(t, "the children", r.Realise(np))
	})

	t.Run("french elision and of-phrase", func(t *testing.T) {
		r := newTestRealiser(t, entity.LanguageFrench)
		le, ok := r.Lexicon().Lookup("le", CategoryDeterminer)
		require.True(t, ok)
		np := NewNounPhrase(r.Lexicon().GetWord("ami", CategoryNoun))
		np.SetSpecifier(le)
		of, _ := r.Lexicon().GetWordByID(OfPrepositionID)
		np.AddComplement(NewPrepositionPhrase(of, properNoun(r, "Frank", GenderMasculine)))
		assert.Equal(t, "l'ami de Frank", r.Realise(np))
	})

	t.Run("french feminine determiner", func(t *testing.T) {
		r := newTestRealiser(t, entity.LanguageFrench)
		le, _ := r.Lexicon().Lookup("le", CategoryDeterminer)
		np := NewNounPhrase(r.Lexicon().GetWord("veste", CategoryNoun))
		np.SetSpecifier(le)
		assert.Equal(t, "la veste", r.Realise(np))

		mon, _ := r.Lexicon().Lookup("mon", CategoryDeterminer)
		np.SetSpecifier(mon)
		assert.Equal(t, "ma veste", r.Realise(np))
		np.SetFeature(FeatureNumber, NumberPlural)
		assert.Equal(t, "mes vestes", r.Realise(np))
	})

	t.Run("french preposition contraction", func(t *testing.T) {
		r := newTestRealiser(t, entity.LanguageFrench)
		a, _ := r.Lexicon().Lookup("à", CategoryPreposition)
		le, _ := r.Lexicon().Lookup("le", CategoryDeterminer)
		salon := NewNounPhrase(r.Lexicon().GetWord("salon", CategoryNoun))
		salon.SetSpecifier(le)
		assert.Equal(t, "au salon", r.Realise(NewPrepositionPhrase(a, salon)))
	})

	t.Run("dutch possessor", func(t *testing.T) {
		r := newTestRealiser(t, entity.LanguageDutch)
		np := NewNounPhrase(r.Lexicon().GetWord("vriend", CategoryNoun))
		np.AddPreModifier("beste")
		owner := properNoun(r, "Julia", GenderFeminine)
		owner.SetFeature(FeaturePossessive, True)
		np.SetSpecifier(owner)
		assert.Equal(t, "Julia's beste vriend", r.Realise(np))
	})
}

func TestReflexiveVerbs(t *testing.T) {
	cases := []struct {
		lang   entity.Language
		verb   string
		refl   string
		person string
		form   string
		want   string
	}{
		{entity.LanguageEnglish, "amuse", "myself", PersonFirst, "", "amuse myself"},
		{entity.LanguageEnglish, "amuse", "myself", PersonThird, FormInfinitive, "to amuse himself"},
		{entity.LanguageFrench, "amuser", "se", PersonFirst, "", "m'amuse"},
		{entity.LanguageFrench, "amuser", "se", PersonThird, FormInfinitive, "s'amuser"},
		{entity.LanguageDutch, "amuseren", "zich", PersonFirst, "", "amuseer me"},
		{entity.LanguageDutch, "amuseren", "zich", PersonThird, FormInfinitive, "amuseren"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			r := newTestRealiser(t, tc.lang)
			vp := NewVerbPhrase(r.Lexicon().GetWord(tc.verb, CategoryVerb))
			refl, ok := r.Lexicon().Lookup(tc.refl, CategoryPronoun)
			require.True(t, ok)
			require.True(t, refl.HasFeature(FeatureReflexive))
			vp.SetObject(refl)
			vp.SetFeature(FeaturePerson, tc.person)
			vp.SetFeature(FeatureGender, GenderMasculine)
			vp.SetFeature(FeatureForm, tc.form)
			assert.Equal(t, tc.want, r.Realise(vp))
		})
	}
}

func TestParticiples(t *testing.T) {
	fr := newTestRealiser(t, entity.LanguageFrench)
	vp := NewVerbPhrase(fr.Lexicon().GetWord("fatigué", CategoryVerb))
	vp.SetFeature(FeatureForm, FormPastParticiple)
	assert.Equal(t, "fatigué", fr.Realise(vp))

	nl := newTestRealiser(t, entity.LanguageDutch)
	vp = NewVerbPhrase(nl.Lexicon().GetWord("dansen", CategoryVerb))
	vp.SetFeature(FeatureForm, FormPastParticiple)
	assert.Equal(t, "gedanst", nl.Realise(vp))
}
