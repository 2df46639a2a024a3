package surface

// Category is a lexical category.
type Category string

const (
	CategoryAny         Category = ""
	CategoryNoun        Category = "NOUN"
	CategoryVerb        Category = "VERB"
	CategoryPronoun     Category = "PRONOUN"
	CategoryDeterminer  Category = "DETERMINER"
	CategoryAdjective   Category = "ADJECTIVE"
	CategoryPreposition Category = "PREPOSITION"
)

// Feature names understood across the realizer boundary.
const (
	FeatureNumber            = "NUMBER"
	FeatureGender            = "GENDER"
	FeaturePerson            = "PERSON"
	FeatureTense             = "TENSE"
	FeatureForm              = "FORM"
	FeaturePossessive        = "POSSESSIVE"
	FeaturePronominal        = "PRONOMINAL"
	FeatureProgressive       = "PROGRESSIVE"
	FeatureReflexive         = "REFLEXIVE"
	FeatureDiscourseFunction = "DISCOURSE_FUNCTION"
	FeatureCase              = "CASE"
	FeatureProper            = "PROPER"
)

// Feature values.
const (
	NumberSingular = "SINGULAR"
	NumberPlural   = "PLURAL"

	GenderMasculine = "MASCULINE"
	GenderFeminine  = "FEMININE"
	GenderNeuter    = "NEUTER"
	GenderCommon    = "COMMON"

	PersonFirst  = "FIRST"
	PersonSecond = "SECOND"
	PersonThird  = "THIRD"

	TensePresent     = "PRESENT"
	TensePast        = "PAST"
	TenseConditional = "CONDITIONAL"

	FormInfinitive     = "INFINITIVE"
	FormPastParticiple = "PAST_PARTICIPLE"

	DiscourseSpecifier = "SPECIFIER"

	CaseSubjective = "SUBJECTIVE"
	CaseObjective  = "OBJECTIVE"

	True  = "true"
	False = "false"
)

// Features is a bag of feature name/value pairs.
type Features map[string]string

// Get returns the value of a feature or "".
func (f Features) Get(name string) string {
	return f[name]
}

// Bool reports whether a boolean feature is set to true.
func (f Features) Bool(name string) bool {
	return f[name] == True
}

// Set stores a value. An empty value removes the feature.
func (f Features) Set(name, value string) {
	if value == "" {
		delete(f, name)
		return
	}
	f[name] = value
}

func (f Features) clone() Features {
	out := make(Features, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Element is anything the realiser can turn into text.
type Element interface {
	Feature(name string) string
	SetFeature(name, value string)
}

func boolValue(b bool) string {
	if b {
		return True
	}
	return False
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
