package entity

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrTooFewPersons is reported as a warning by Validate.
var ErrTooFewPersons = errors.New("too few persons in context")

// ValueKind tags the variant held by a ContextValue.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValuePerson
	ValueArgument
	ValueCondition
)

// ContextValue is the result of a context lookup: a person, an argument
// or a user-defined condition.
type ContextValue struct {
	Kind      ValueKind
	Person    *Person
	Argument  *Argument
	Condition *Condition
}

// Found reports whether the lookup resolved to anything.
func (v ContextValue) Found() bool {
	return v.Kind != ValueNone
}

// String returns the comparable form: person id, argument value or the
// condition's second operand.
func (v ContextValue) String() string {
	switch v.Kind {
	case ValuePerson:
		return v.Person.ID
	case ValueArgument:
		return v.Argument.Value
	case ValueCondition:
		return v.Condition.SecondOperand
	default:
		return ""
	}
}

// shared holds the lists a context shares with its clones.
type shared struct {
	persons    []*Person
	conditions []Condition
}

// Context describes who speaks, who listens, the participating persons,
// the current arguments and the user-defined tags.
type Context struct {
	speaker   *Person
	listener  *Person
	shared    *shared
	arguments []Argument
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{shared: &shared{}}
}

// Clone returns a local context sharing persons and user-defined
// conditions but owning its own argument list and speaker/listener slots.
func (c *Context) Clone() *Context {
	return &Context{
		speaker:   c.speaker,
		listener:  c.listener,
		shared:    c.shared,
		arguments: append([]Argument(nil), c.arguments...),
	}
}

func (c *Context) SetSpeaker(p *Person)  { c.speaker = p }
func (c *Context) SetListener(p *Person) { c.listener = p }
func (c *Context) Speaker() *Person      { return c.speaker }
func (c *Context) Listener() *Person     { return c.listener }

// SwapSpeakerListener exchanges the two roles.
func (c *Context) SwapSpeakerListener() {
	c.speaker, c.listener = c.listener, c.speaker
}

// AddPerson registers a participant.
func (c *Context) AddPerson(p *Person) {
	if p == nil {
		return
	}
	c.shared.persons = append(c.shared.persons, p)
}

// Persons returns the registered participants.
func (c *Context) Persons() []*Person {
	return c.shared.persons
}

// Person finds a participant by id.
func (c *Context) Person(id string) (*Person, bool) {
	for _, p := range c.shared.persons {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// PersonMatching finds a participant whose id matches a glob pattern
// such as "play*".
func (c *Context) PersonMatching(pattern string) (*Person, bool) {
	for _, p := range c.shared.persons {
		if ok, _ := path.Match(pattern, p.ID); ok {
			return p, true
		}
	}
	return nil, false
}

// PersonByRealisedName finds a participant having name as one of its
// realised names, ignoring case.
func (c *Context) PersonByRealisedName(name string) (*Person, bool) {
	for _, p := range c.shared.persons {
		for _, n := range p.RealisedNames {
			if n != "" && strings.EqualFold(n, name) {
				return p, true
			}
		}
	}
	return nil, false
}

// AddArgument appends an argument to this context only.
func (c *Context) AddArgument(a Argument) {
	c.arguments = append(c.arguments, a)
}

// Arguments returns the current arguments.
func (c *Context) Arguments() []Argument {
	return c.arguments
}

// Argument finds the first argument with the given name.
func (c *Context) Argument(name string) (Argument, bool) {
	for _, a := range c.arguments {
		if a.Name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// ClearArguments drops all arguments.
func (c *Context) ClearArguments() {
	c.arguments = nil
}

// AddUserDefinedCondition records a tag such as @userChoice=true.
func (c *Context) AddUserDefinedCondition(key, value string) {
	c.shared.conditions = append(c.shared.conditions, NewUserCondition(key, value))
}

// UserDefinedConditions returns the recorded tags.
func (c *Context) UserDefinedConditions() []Condition {
	return c.shared.conditions
}

// Lookup resolves a key: person by id, then argument by name, then
// user-defined condition by first operand.
func (c *Context) Lookup(key string) ContextValue {
	for _, p := range c.shared.persons {
		if p.ID == key {
			return ContextValue{Kind: ValuePerson, Person: p}
		}
	}
	for i := range c.arguments {
		if c.arguments[i].Name == key {
			return ContextValue{Kind: ValueArgument, Argument: &c.arguments[i]}
		}
	}
	for i := range c.shared.conditions {
		if c.shared.conditions[i].FirstOperand == key {
			return ContextValue{Kind: ValueCondition, Condition: &c.shared.conditions[i]}
		}
	}
	return ContextValue{}
}

// Validate checks the context before realization. A missing speaker is
// fatal. A missing listener defaults to the speaker; that and a context
// with fewer than two persons are returned as warnings.
func (c *Context) Validate() (warnings []error, err error) {
	if c.speaker == nil {
		return nil, ErrMissingSpeaker
	}
	if c.listener == nil {
		warnings = append(warnings, fmt.Errorf("%w: using speaker %q as listener", ErrMissingListener, c.speaker.ID))
		c.listener = c.speaker
	}
	if len(c.shared.persons) < 2 {
		warnings = append(warnings, fmt.Errorf("%w: %d registered", ErrTooFewPersons, len(c.shared.persons)))
	}
	return warnings, nil
}

func (c *Context) String() string {
	return fmt.Sprintf("Context{speaker: %s, listener: %s, persons: %d, arguments: %v, conditions: %v}",
		c.speaker, c.listener, len(c.shared.persons), c.arguments, c.shared.conditions)
}
