package entity

import "strings"

// Argument binds a template placeholder to a referent token.
type Argument struct {
	Name       string
	Value      string
	Attributes map[string]string
}

// NewArgument creates an argument without attributes.
func NewArgument(name, value string) Argument {
	return Argument{Name: name, Value: value, Attributes: map[string]string{}}
}

func (a Argument) String() string {
	return a.Name + ":" + a.Value
}

// Predicate is a narrative act plus its named arguments.
type Predicate struct {
	Type      string
	Arguments []Argument
}

// NewPredicate builds a predicate from its act name and arguments.
func NewPredicate(typeName string, args ...Argument) Predicate {
	return Predicate{Type: typeName, Arguments: args}
}

// Argument returns the named argument.
func (p Predicate) Argument(name string) (Argument, bool) {
	for _, arg := range p.Arguments {
		if arg.Name == name {
			return arg, true
		}
	}
	return Argument{}, false
}

// String renders the fallback form Type(name:value, name:value).
func (p Predicate) String() string {
	parts := make([]string, 0, len(p.Arguments))
	for _, arg := range p.Arguments {
		parts = append(parts, arg.String())
	}
	return p.Type + "(" + strings.Join(parts, ", ") + ")"
}
