package entity

import (
	"fmt"
	"strings"
)

// Gender is the grammatical gender of a person or noun.
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMasculine   Gender = "MASCULINE"
	GenderFeminine    Gender = "FEMININE"
	GenderNeuter      Gender = "NEUTER"
	GenderCommon      Gender = "COMMON"
)

// ParseGender accepts full names and the short template forms (m, f, n).
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "masculine", "male":
		return GenderMasculine
	case "f", "feminine", "female":
		return GenderFeminine
	case "n", "neuter":
		return GenderNeuter
	case "common":
		return GenderCommon
	default:
		return GenderUnspecified
	}
}

// Person is a participant of the narrative. Persons are owned by the
// caller; contexts only hold pointers to them.
type Person struct {
	ID     string
	Gender Gender
	// RealisedNames is indexed by Language.Ordinal and bypasses template
	// lookup for the person's name when present.
	RealisedNames []string
	Properties    map[string]float32
}

// NewPerson creates a person without realised names.
func NewPerson(id string, gender Gender) *Person {
	return &Person{ID: id, Gender: gender, Properties: make(map[string]float32)}
}

// WithRealisedNames sets one name per language, in ordinal order.
func (p *Person) WithRealisedNames(names ...string) *Person {
	p.RealisedNames = append([]string(nil), names...)
	return p
}

// HasRealisedNames reports whether the person carries localised names.
func (p *Person) HasRealisedNames() bool {
	return len(p.RealisedNames) > 0
}

// RealisedName returns the name for the language, or "" when absent.
func (p *Person) RealisedName(lang Language) string {
	idx := lang.Ordinal()
	if idx < 0 || idx >= len(p.RealisedNames) {
		return ""
	}
	return p.RealisedNames[idx]
}

// SetProperty stores a numeric fact used by conditions (e.g. john.contentedness).
func (p *Person) SetProperty(name string, value float32) {
	if p.Properties == nil {
		p.Properties = make(map[string]float32)
	}
	p.Properties[name] = value
}

// UpdateProperty adds delta to a property, creating it at delta when absent.
func (p *Person) UpdateProperty(name string, delta float32) {
	if p.Properties == nil {
		p.Properties = make(map[string]float32)
	}
	p.Properties[name] += delta
}

// Property returns a numeric property.
func (p *Person) Property(name string) (float32, bool) {
	v, ok := p.Properties[name]
	return v, ok
}

// Matches reports whether s equals the id or one of the realised names,
// ignoring case.
func (p *Person) Matches(s string) bool {
	if p == nil {
		return false
	}
	if strings.EqualFold(s, p.ID) {
		return true
	}
	for _, name := range p.RealisedNames {
		if name != "" && strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

func (p *Person) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Person{id: %s, gender: %s}", p.ID, p.Gender)
}
