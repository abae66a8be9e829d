package runtime

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
)

// expressionPrefix marks a parameter value as an expression, e.g.
// "={{ json.city }}" or "=Prayer times for {{ json.city }}".
const expressionPrefix = "="

var templatePattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// IsExpression reports whether a raw parameter value must be evaluated.
func IsExpression(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, expressionPrefix)
}

// ResolveParameter evaluates a raw parameter value for one record.
// Non-expression values are returned as-is. Inside an expression, every
// {{ ... }} segment is evaluated with the record payload available as `json`
// and its position as `itemIndex`. A value consisting of exactly one
// template yields the evaluated value itself; otherwise segments are rendered
// into a string.
func ResolveParameter(raw any, item Item, itemIndex int) (any, error) {
	if !IsExpression(raw) {
		return raw, nil
	}
	tmpl := strings.TrimPrefix(raw.(string), expressionPrefix)

	env := map[string]any{
		"json":      item.JSON,
		"itemIndex": itemIndex,
	}

	matches := templatePattern.FindAllStringSubmatchIndex(tmpl, -1)
	if len(matches) == 0 {
		return tmpl, nil
	}

	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(tmpl) {
		return Eval(tmpl[matches[0][2]:matches[0][3]], env)
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(tmpl[last:m[0]])
		v, err := Eval(tmpl[m[2]:m[3]], env)
		if err != nil {
			return nil, err
		}
		if v != nil {
			sb.WriteString(fmt.Sprint(v))
		}
		last = m[1]
	}
	sb.WriteString(tmpl[last:])
	return sb.String(), nil
}

// Eval compiles and runs a single expr-lang expression against env.
func Eval(expression string, env map[string]any) (any, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty expression")
	}

	// NOTE: expr.Env MUST come before AllowUndefinedVariables for it to work
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("error compiling expression '%s': %w", expression, err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("error evaluating expression '%s': %w", expression, err)
	}
	return result, nil
}

// ParameterString renders a resolved parameter as the string a node expects.
func ParameterString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
