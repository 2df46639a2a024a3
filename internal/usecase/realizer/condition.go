package realizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/eslsoft/expreal/internal/entity"
)

// operatorTokens are scanned in this order at every position so that the
// longest operator wins (">=" before ">", " !in " before " in ").
var operatorTokens = []struct {
	token string
	op    entity.Operator
}{
	{" !in ", entity.OpNotContains},
	{" in ", entity.OpContains},
	{"!contains", entity.OpNotContains},
	{"contains", entity.OpContains},
	{">=", entity.OpGreaterEq},
	{"<=", entity.OpLessEq},
	{"!=", entity.OpNotEqual},
	{">", entity.OpGreater},
	{"<", entity.OpLess},
	{"=", entity.OpEqual},
}

// ParseCondition parses a single condition such as "test=pronoun",
// "john.contentedness > 0.5", "$tags contains red" or "@userChoice".
func ParseCondition(s string) (entity.Condition, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") && !containsOperator(s) {
		return entity.NewUserCondition(s, ""), nil
	}

	idx, token, op := -1, "", entity.Operator("")
	for i := 0; i < len(s) && idx < 0; i++ {
		for _, candidate := range operatorTokens {
			if strings.HasPrefix(s[i:], candidate.token) {
				idx, token, op = i, candidate.token, candidate.op
				break
			}
		}
	}
	if idx < 0 {
		return entity.Condition{}, fmt.Errorf("%w: no operator in %q", entity.ErrMalformedCondition, s)
	}
	first := strings.TrimSpace(strings.Replace(s[:idx], "$", "", 1))
	second := strings.TrimSpace(s[idx+len(token):])
	if first == "" || second == "" || containsOperator(second) {
		return entity.Condition{}, fmt.Errorf("%w: expected two operands in %q", entity.ErrMalformedCondition, s)
	}

	cond := entity.Condition{FirstOperand: first, Operator: op, SecondOperand: second}
	if key, property, ok := strings.Cut(first, "."); ok {
		cond.FirstOperand = key
		cond.FirstOperandProperty = property
	}
	return cond, nil
}

func containsOperator(s string) bool {
	for _, candidate := range operatorTokens {
		if strings.Contains(s, candidate.token) {
			return true
		}
	}
	return false
}

// conditionEvaluator evaluates parsed conditions against a context.
// Numeric comparisons run through precompiled expressions.
type conditionEvaluator struct {
	programs map[entity.Operator]*vm.Program
}

func newConditionEvaluator() *conditionEvaluator {
	env := map[string]any{"value": 0.0, "operand": 0.0}
	programs := make(map[entity.Operator]*vm.Program)
	for _, op := range []entity.Operator{entity.OpGreater, entity.OpGreaterEq, entity.OpLess, entity.OpLessEq} {
		program, err := expr.Compile("value "+string(op)+" operand", expr.Env(env), expr.AsBool())
		if err != nil {
			panic(fmt.Sprintf("compile %s comparison: %v", op, err))
		}
		programs[op] = program
	}
	return &conditionEvaluator{programs: programs}
}

// Evaluate reports whether the condition holds in the context.
func (e *conditionEvaluator) Evaluate(cond entity.Condition, c *entity.Context) bool {
	value := c.Lookup(cond.FirstOperand)

	switch {
	case cond.Operator == entity.OpEqual:
		return value.Found() && value.String() == cond.SecondOperand
	case cond.Operator == entity.OpNotEqual:
		return !value.Found() || value.String() != cond.SecondOperand
	case cond.Operator.IsNumeric():
		return e.compare(cond, value)
	case cond.Operator == entity.OpContains:
		return value.Found() && listContains(value.String(), cond.SecondOperand)
	case cond.Operator == entity.OpNotContains:
		if !value.Found() {
			return true
		}
		return !listContains(value.String(), cond.SecondOperand)
	default:
		return false
	}
}

func (e *conditionEvaluator) compare(cond entity.Condition, value entity.ContextValue) bool {
	if value.Kind != entity.ValuePerson || cond.FirstOperandProperty == "" {
		return false
	}
	property, ok := value.Person.Property(cond.FirstOperandProperty)
	if !ok {
		return false
	}
	operand, err := strconv.ParseFloat(cond.SecondOperand, 32)
	if err != nil {
		return false
	}
	out, err := vm.Run(e.programs[cond.Operator], map[string]any{
		"value":   float64(property),
		"operand": float64(float32(operand)),
	})
	if err != nil {
		return false
	}
	result, _ := out.(bool)
	return result
}

// listContains tests membership in a bracketed list such as "[a, b, c]".
func listContains(list, item string) bool {
	list = strings.TrimSpace(list)
	if len(list) < 2 {
		return false
	}
	list = strings.TrimSuffix(strings.TrimPrefix(list, "["), "]")
	if strings.TrimSpace(list) == "" {
		return false
	}
	for _, element := range strings.Split(list, ",") {
		if strings.TrimSpace(element) == item {
			return true
		}
	}
	return false
}
