package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Query wraps list requests that expose filter and order_by raw inputs.
type Query interface {
	GetFilter() string
	GetOrderBy() string
}

// ValueKind describes the kind of value a field holds.
type ValueKind string

const (
	// KindString fields compare against string literals.
	KindString ValueKind = "string"
	// KindMap fields are string maps addressed as field.KEY.
	KindMap ValueKind = "map"
)

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
	OpHas Op = "has"
)

// FilterField maps the operations allowed on a filter field to the params
// struct field receiving the literal.
type FilterField struct {
	Kind ValueKind
	Ops  map[Op]string
}

// OrderField maps an order key to a SQL expression.
type OrderField struct {
	Expr string
}

// OrderSchema describes ordering defaults and whitelisted keys.
type OrderSchema struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Fields             map[string]OrderField
}

// ResourceSchema aggregates filtering and ordering rules for a resource.
type ResourceSchema struct {
	Filter map[string]FilterField
	Order  OrderSchema
}

// Bind parses the query filter and order_by and populates the params struct.
// The params struct receives the SQL order clause in its OrderBy field.
func Bind[Q Query, P any](query Q, binding *P, schema ResourceSchema) error {
	if binding == nil {
		return errors.New("binding must not be nil")
	}

	if err := bindFilterTo(binding, query.GetFilter(), schema.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	terms, err := parseOrderBy(query.GetOrderBy(), schema.Order)
	if err != nil {
		return fmt.Errorf("order_by: %w", err)
	}

	return setOrderClause(binding, orderClause(terms, schema.Order))
}

func bindFilterTo(binding any, filter string, fields map[string]FilterField) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}

	if len(fields) == 0 {
		return errors.New("filter schema has no fields defined")
	}

	env, err := buildEnv(fields)
	if err != nil {
		return err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("invalid filter: %w", issues.Err())
	}

	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return fmt.Errorf("failed to convert AST: %w", err)
	}
	conjuncts, err := extractConjuncts(parsed.GetExpr())
	if err != nil {
		return err
	}

	paramsVal := reflect.ValueOf(binding)
	if paramsVal.Kind() != reflect.Ptr || paramsVal.IsNil() {
		return errors.New("binding must be a non-nil pointer")
	}
	dest := paramsVal.Elem()
	if dest.Kind() != reflect.Struct {
		return errors.New("binding must point to a struct")
	}

	for _, expr := range conjuncts {
		pred, err := parseAtomicPredicate(expr)
		if err != nil {
			return err
		}

		rule, ok := fields[pred.Field]
		if !ok {
			return fmt.Errorf("field %q is not allowed", pred.Field)
		}

		targetName, ok := rule.Ops[pred.Op]
		if !ok {
			return fmt.Errorf("operator %q is not allowed for field %q", string(pred.Op), pred.Field)
		}

		if err := validatePredicate(rule.Kind, pred); err != nil {
			return fmt.Errorf("field %q: %w", pred.Field, err)
		}

		field := dest.FieldByName(targetName)
		if !field.IsValid() {
			return fmt.Errorf("params struct %s has no field named %q", dest.Type(), targetName)
		}
		if !field.CanSet() {
			return fmt.Errorf("cannot set field %q on params struct", targetName)
		}

		if err := assignValue(field, pred); err != nil {
			return fmt.Errorf("failed to assign field %q: %w", targetName, err)
		}
	}

	return nil
}

// atomicPredicate is one comparison of an AND chain. Key is set for map
// fields (features.GENDER).
type atomicPredicate struct {
	Field string
	Key   string
	Op    Op
	Value any
}

func buildEnv(fields map[string]FilterField) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields))
	for name, rule := range fields {
		celType, err := celTypeForKind(rule.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindMap:
		return cel.MapType(cel.StringType, cel.StringType), nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

func extractConjuncts(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}

	call := expr.GetCallExpr()
	if call == nil {
		return []*exprpb.Expr{expr}, nil
	}

	switch call.Function {
	case "_&&_":
		if len(call.Args) < 2 || call.Target != nil {
			return nil, errors.New("logical AND must have at least two operands")
		}
		var result []*exprpb.Expr
		for _, arg := range call.Args {
			conjuncts, err := extractConjuncts(arg)
			if err != nil {
				return nil, err
			}
			result = append(result, conjuncts...)
		}
		return result, nil
	case "_||_", "_?_:_", "!_":
		return nil, fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func parseAtomicPredicate(expr *exprpb.Expr) (atomicPredicate, error) {
	// has(features.KEY) expands to a test-only select.
	if sel := expr.GetSelectExpr(); sel != nil && sel.GetTestOnly() {
		field, err := parseFieldIdent(sel.GetOperand())
		if err != nil {
			return atomicPredicate{}, err
		}
		return atomicPredicate{Field: field, Key: sel.GetField(), Op: OpHas}, nil
	}

	call := expr.GetCallExpr()
	if call == nil {
		return atomicPredicate{}, errors.New("unsupported expression; expected comparison or function call")
	}

	switch call.Function {
	case "_==_":
		return parseEquality(call)
	case "@in":
		return parseInPredicate(call)
	case "startsWith":
		return parseStartsWith(call)
	default:
		return atomicPredicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}
}

func parseEquality(call *exprpb.Expr_Call) (atomicPredicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return atomicPredicate{}, errors.New("operator \"==\" expects two operands")
	}

	field, key, err := parseFieldRef(call.Args[0])
	if err != nil {
		return atomicPredicate{}, err
	}

	value, err := parseLiteral(call.Args[1])
	if err != nil {
		return atomicPredicate{}, err
	}

	return atomicPredicate{Field: field, Key: key, Op: OpEQ, Value: value}, nil
}

func parseInPredicate(call *exprpb.Expr_Call) (atomicPredicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return atomicPredicate{}, errors.New("in operator expects two operands")
	}

	field, key, err := parseFieldRef(call.Args[0])
	if err != nil {
		return atomicPredicate{}, err
	}

	value, err := parseLiteral(call.Args[1])
	if err != nil {
		return atomicPredicate{}, err
	}

	return atomicPredicate{Field: field, Key: key, Op: OpIN, Value: value}, nil
}

func parseStartsWith(call *exprpb.Expr_Call) (atomicPredicate, error) {
	if call.Target == nil || len(call.Args) != 1 {
		return atomicPredicate{}, errors.New("startsWith must be called on a field with one argument")
	}

	field, key, err := parseFieldRef(call.Target)
	if err != nil {
		return atomicPredicate{}, err
	}

	value, err := parseLiteral(call.Args[0])
	if err != nil {
		return atomicPredicate{}, err
	}

	str, ok := value.(string)
	if !ok {
		return atomicPredicate{}, errors.New("startsWith requires a string literal argument")
	}

	return atomicPredicate{Field: field, Key: key, Op: OpSW, Value: str}, nil
}

// parseFieldRef accepts a plain identifier or a map entry written as
// field.KEY.
func parseFieldRef(expr *exprpb.Expr) (string, string, error) {
	if sel := expr.GetSelectExpr(); sel != nil {
		field, err := parseFieldIdent(sel.GetOperand())
		if err != nil {
			return "", "", err
		}
		return field, sel.GetField(), nil
	}
	field, err := parseFieldIdent(expr)
	return field, "", err
}

func parseFieldIdent(expr *exprpb.Expr) (string, error) {
	ident := expr.GetIdentExpr()
	if ident == nil {
		return "", errors.New("left-hand side must be an identifier")
	}
	return ident.GetName(), nil
}

func parseLiteral(expr *exprpb.Expr) (any, error) {
	if constant := expr.GetConstExpr(); constant != nil {
		if _, ok := constant.ConstantKind.(*exprpb.Constant_StringValue); !ok {
			return nil, fmt.Errorf("literal type %T is not supported", constant.ConstantKind)
		}
		return constant.GetStringValue(), nil
	}

	if list := expr.GetListExpr(); list != nil {
		elements := list.GetElements()
		values := make([]string, len(elements))
		for i, elem := range elements {
			val, err := parseLiteral(elem)
			if err != nil {
				return nil, fmt.Errorf("list literal element %d: %w", i, err)
			}
			str, ok := val.(string)
			if !ok {
				return nil, errors.New("list literal elements must be strings")
			}
			values[i] = str
		}
		return values, nil
	}

	return nil, errors.New("right-hand side must be a string or list literal")
}

func validatePredicate(kind ValueKind, pred atomicPredicate) error {
	switch kind {
	case KindString:
		if pred.Key != "" {
			return fmt.Errorf("%s field has no key %q", kind, pred.Key)
		}
	case KindMap:
		if pred.Key == "" {
			return errors.New("map field needs a key, as in field.KEY")
		}
	default:
		return fmt.Errorf("unsupported field kind %s", kind)
	}

	switch pred.Op {
	case OpHas:
		return nil
	case OpIN:
		list, ok := pred.Value.([]string)
		if !ok {
			return errors.New("expected list of string literals")
		}
		if len(list) == 0 {
			return errors.New("list literal must not be empty")
		}
		for _, item := range list {
			if item == "" {
				return errors.New("list literal must not contain empty strings")
			}
		}
	default:
		if _, ok := pred.Value.(string); !ok {
			return errors.New("expected string literal")
		}
	}
	return nil
}

// assignValue stores a predicate in its params field: a string (or
// pointer), a string slice for in and has, or a map entry for map fields.
func assignValue(field reflect.Value, pred atomicPredicate) error {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}

	switch {
	case pred.Op == OpHas:
		return appendStrings(field, []string{pred.Key})
	case pred.Key != "":
		if field.Kind() != reflect.Map || field.Type().Key().Kind() != reflect.String || field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("expected map[string]string destination, got %s", field.Type())
		}
		value, ok := pred.Value.(string)
		if !ok {
			return fmt.Errorf("map entries take string literals, got %T", pred.Value)
		}
		if field.IsNil() {
			field.Set(reflect.MakeMap(field.Type()))
		}
		field.SetMapIndex(reflect.ValueOf(pred.Key), reflect.ValueOf(value))
		return nil
	}

	switch v := pred.Value.(type) {
	case string:
		if field.Kind() != reflect.String {
			return fmt.Errorf("expected string-compatible destination, got %s", field.Kind())
		}
		field.SetString(v)
	case []string:
		return appendStrings(field, v)
	default:
		return fmt.Errorf("unsupported literal type %T", pred.Value)
	}
	return nil
}

func appendStrings(field reflect.Value, values []string) error {
	if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.String {
		return fmt.Errorf("expected slice of strings destination, got %s", field.Type())
	}
	for _, v := range values {
		field.Set(reflect.Append(field, reflect.ValueOf(v).Convert(field.Type().Elem())))
	}
	return nil
}
