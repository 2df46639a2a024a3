package surface

type role int

const (
	roleNone role = iota
	roleSubject
	roleObject
	roleIndirectObject
	roleComplement
)

// NounPhrase is a head noun with its specifier, modifiers and
// prepositional complements.
type NounPhrase struct {
	features      Features
	head          *Word
	specifier     Element
	preModifiers  []string
	postModifiers []string
	complements   []*PrepositionPhrase
	role          role
}

// NewNounPhrase creates a noun phrase around head (which may be nil).
func NewNounPhrase(head *Word) *NounPhrase {
	return &NounPhrase{features: Features{}, head: head}
}

func (np *NounPhrase) Head() *Word { return np.head }

func (np *NounPhrase) SetHead(w *Word) { np.head = w }

// Feature returns the phrase feature. Gender falls back to the head.
func (np *NounPhrase) Feature(name string) string {
	if v := np.features.Get(name); v != "" {
		return v
	}
	if name == FeatureGender && np.head != nil {
		return np.head.Feature(FeatureGender)
	}
	return ""
}

func (np *NounPhrase) SetFeature(name, value string) { np.features.Set(name, value) }

// FeatureAsString is Feature with the grammatical defaults applied: a noun
// phrase without a number is singular.
func (np *NounPhrase) FeatureAsString(name string) string {
	v := np.Feature(name)
	if v == "" && name == FeatureNumber {
		return NumberSingular
	}
	return v
}

func (np *NounPhrase) FeatureAsBool(name string) bool {
	return np.Feature(name) == True
}

// SetSpecifier sets a determiner word or a possessor noun phrase.
func (np *NounPhrase) SetSpecifier(e Element) { np.specifier = e }

func (np *NounPhrase) Specifier() Element { return np.specifier }

func (np *NounPhrase) AddPreModifier(text string) { np.preModifiers = append(np.preModifiers, text) }

func (np *NounPhrase) AddPostModifier(text string) { np.postModifiers = append(np.postModifiers, text) }

func (np *NounPhrase) AddComplement(pp *PrepositionPhrase) { np.complements = append(np.complements, pp) }

func (np *NounPhrase) PreModifiers() []string { return np.preModifiers }

// VerbPhrase is a verb with an optional reflexive object and complements
// (infinitives, participles) attached to it.
type VerbPhrase struct {
	features    Features
	head        *Word
	object      *Word
	complements []Element
}

func NewVerbPhrase(head *Word) *VerbPhrase {
	return &VerbPhrase{features: Features{}, head: head}
}

func (vp *VerbPhrase) Head() *Word { return vp.head }

func (vp *VerbPhrase) SetHead(w *Word) { vp.head = w }

func (vp *VerbPhrase) Feature(name string) string { return vp.features.Get(name) }

func (vp *VerbPhrase) SetFeature(name, value string) { vp.features.Set(name, value) }

// SetObject attaches the reflexive pronoun of a pronominal verb.
func (vp *VerbPhrase) SetObject(w *Word) { vp.object = w }

func (vp *VerbPhrase) Object() *Word { return vp.object }

func (vp *VerbPhrase) AddComplement(e Element) { vp.complements = append(vp.complements, e) }

func (vp *VerbPhrase) Complements() []Element { return vp.complements }

func (vp *VerbPhrase) agreement() agreement {
	return agreement{
		Person:      orDefault(vp.Feature(FeaturePerson), PersonThird),
		Number:      orDefault(vp.Feature(FeatureNumber), NumberSingular),
		Gender:      vp.Feature(FeatureGender),
		Tense:       orDefault(vp.Feature(FeatureTense), TensePresent),
		Form:        vp.Feature(FeatureForm),
		Progressive: vp.features.Bool(FeatureProgressive),
	}
}

// PrepositionPhrase is a preposition governing a noun phrase.
type PrepositionPhrase struct {
	features Features
	prep     *Word
	object   *NounPhrase
}

func NewPrepositionPhrase(prep *Word, object *NounPhrase) *PrepositionPhrase {
	if object != nil {
		object.role = roleComplement
	}
	return &PrepositionPhrase{features: Features{}, prep: prep, object: object}
}

func (pp *PrepositionPhrase) Feature(name string) string { return pp.features.Get(name) }

func (pp *PrepositionPhrase) SetFeature(name, value string) { pp.features.Set(name, value) }

func (pp *PrepositionPhrase) Object() *NounPhrase { return pp.object }

// Clause is a subject, main verb phrase, objects and complements.
type Clause struct {
	features       Features
	subject        *NounPhrase
	verb           *VerbPhrase
	object         *NounPhrase
	indirectObject *NounPhrase
	complements    []Element
}

func NewClause() *Clause {
	return &Clause{features: Features{}}
}

func (c *Clause) Feature(name string) string { return c.features.Get(name) }

func (c *Clause) SetFeature(name, value string) { c.features.Set(name, value) }

func (c *Clause) SetSubject(np *NounPhrase) {
	np.role = roleSubject
	c.subject = np
}

func (c *Clause) Subject() *NounPhrase { return c.subject }

func (c *Clause) SetVerbPhrase(vp *VerbPhrase) { c.verb = vp }

func (c *Clause) VerbPhrase() *VerbPhrase { return c.verb }

func (c *Clause) SetObject(np *NounPhrase) {
	np.role = roleObject
	c.object = np
}

func (c *Clause) Object() *NounPhrase { return c.object }

func (c *Clause) SetIndirectObject(np *NounPhrase) {
	np.role = roleIndirectObject
	c.indirectObject = np
}

func (c *Clause) IndirectObject() *NounPhrase { return c.indirectObject }

func (c *Clause) AddComplement(e Element) {
	if np, ok := e.(*NounPhrase); ok {
		np.role = roleComplement
	}
	c.complements = append(c.complements, e)
}

func (c *Clause) Complements() []Element { return c.complements }
