package entity

// Operator is a condition comparison.
type Operator string

const (
	OpEqual       Operator = "="
	OpNotEqual    Operator = "!="
	OpGreater     Operator = ">"
	OpGreaterEq   Operator = ">="
	OpLess        Operator = "<"
	OpLessEq      Operator = "<="
	OpContains    Operator = "contains"
	OpNotContains Operator = "!contains"
)

// IsNumeric reports whether the operator compares numeric person properties.
func (o Operator) IsNumeric() bool {
	switch o {
	case OpGreater, OpGreaterEq, OpLess, OpLessEq:
		return true
	default:
		return false
	}
}

// Condition guards a template, or records a user-defined tag in a context.
type Condition struct {
	FirstOperand string
	// FirstOperandProperty is the part after "." in the first operand
	// (e.g. contentedness in john.contentedness).
	FirstOperandProperty string
	Operator             Operator
	SecondOperand        string
}

// NewUserCondition builds the equality condition stored by
// Context.AddUserDefinedCondition. An empty value means "true".
func NewUserCondition(key, value string) Condition {
	if value == "" {
		value = "true"
	}
	return Condition{FirstOperand: key, Operator: OpEqual, SecondOperand: value}
}

// IsUserDefinedTag reports whether the condition references an @tag.
func (c Condition) IsUserDefinedTag() bool {
	return len(c.FirstOperand) > 0 && c.FirstOperand[0] == '@'
}

func (c Condition) String() string {
	return c.FirstOperand + " " + string(c.Operator) + " " + c.SecondOperand
}
