// Package rules provides reusable cross-field rules for tgskema schemas:
// conditional requirements, cardinality limits over groups of fields and
// checks over lists of nested models.
//
//	tgskema.NewSchema("AnswerCallbackQuery").
//		...
//		Rule(rules.If("show_alert", rules.Eq, true).Then(rules.Required("text"))).
//		MustBuild()
package rules

import (
	"fmt"
	"reflect"
	"strings"

	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/i18n"
)

// Op is the comparison an If condition applies to a field value.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
	// Set holds when the field has a value; want is ignored.
	Set
	// Unset holds when the field has no value; want is ignored.
	Unset
)

// Conditional is a predicate over the top-level fields of a model. Build
// one with If, IfSet, IfAll or IfAny.
type Conditional struct {
	field string
	op    Op
	want  any
	all   []Conditional
	any   []Conditional
}

// If builds a conditional that compares the value of a top-level field with
// want.
func If(field string, op Op, want any) Conditional {
	return Conditional{field: field, op: op, want: want}
}

// IfSet holds when field is set.
func IfSet(field string) Conditional { return If(field, Set, nil) }

// IfAll holds when every cond holds.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny holds when at least one cond holds.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And holds when c and all of others hold.
func (c Conditional) And(others ...Conditional) Conditional {
	conds := append([]Conditional{c}, others...)
	return IfAll(conds...)
}

// Or holds when c or any of others holds.
func (c Conditional) Or(others ...Conditional) Conditional {
	conds := append([]Conditional{c}, others...)
	return IfAny(conds...)
}

func (c Conditional) fields() []string {
	var out []string
	if c.field != "" {
		out = append(out, c.field)
	}
	for _, it := range c.all {
		out = append(out, it.fields()...)
	}
	for _, it := range c.any {
		out = append(out, it.fields()...)
	}
	return out
}

func (c Conditional) String() string {
	switch {
	case len(c.all) > 0:
		return joinConds(c.all, "&&")
	case len(c.any) > 0:
		return joinConds(c.any, "||")
	}
	return fmt.Sprintf("%s %s %v", c.field, c.op, c.want)
}

func joinConds(cs []Conditional, sep string) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.String())
	}
	return "(" + strings.Join(parts, " "+sep+" ") + ")"
}

func (op Op) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Set:
		return "set"
	case Unset:
		return "unset"
	}
	return "?"
}

// Then returns a rule running rules only while the condition holds. The
// first failing rule ends the evaluation.
func (c Conditional) Then(rules ...tgskema.Rule) tgskema.Rule {
	fields := c.fields()
	for _, r := range rules {
		fields = append(fields, r.Fields()...)
	}
	return tgskema.RuleFunc("if "+c.String(), dedupe(fields), func(v tgskema.View) tgskema.Issues {
		if !evalConditional(v, c) {
			return nil
		}
		return firstFailure(v, rules)
	})
}

// Required reports the first of fields that is unset.
func Required(fields ...string) tgskema.Rule {
	fs := append([]string(nil), fields...)
	return tgskema.RuleFunc("required("+strings.Join(fs, ",")+")", fs, func(v tgskema.View) tgskema.Issues {
		for _, f := range fs {
			if !v.Has(f) {
				return tgskema.Issues{requiredIssue(f)}
			}
		}
		return nil
	})
}

// RequiredIf requires fields whenever cond holds.
func RequiredIf(cond Conditional, fields ...string) tgskema.Rule {
	return cond.Then(Required(fields...))
}

// AtMostOne forbids setting more than one of fields.
func AtMostOne(fields ...string) tgskema.Rule {
	fs := append([]string(nil), fields...)
	desc := "at most one of [" + strings.Join(fs, ", ") + "] may be set"
	return tgskema.RuleFunc("at_most_one("+strings.Join(fs, ",")+")", fs, func(v tgskema.View) tgskema.Issues {
		if p := present(v, fs); len(p) > 1 {
			return tgskema.Issues{exclusionIssue(p, desc)}
		}
		return nil
	})
}

// ExactlyOne requires exactly one of fields to be set. With none set the
// first field is reported as required.
func ExactlyOne(fields ...string) tgskema.Rule {
	fs := append([]string(nil), fields...)
	desc := "exactly one of [" + strings.Join(fs, ", ") + "] must be set"
	return tgskema.RuleFunc("exactly_one("+strings.Join(fs, ",")+")", fs, func(v tgskema.View) tgskema.Issues {
		p := present(v, fs)
		switch {
		case len(p) == 0 && len(fs) > 0:
			it := requiredIssue(fs[0])
			it.Hint = desc
			return tgskema.Issues{it}
		case len(p) > 1:
			return tgskema.Issues{exclusionIssue(p, desc)}
		}
		return nil
	})
}

// AtLeastOne ensures the list held by field has at least one element. An
// unset field is left to the required check.
func AtLeastOne(field string) tgskema.Rule {
	return tgskema.RuleFunc("at_least_one("+field+")", []string{field}, func(v tgskema.View) tgskema.Issues {
		val := v.Get(field)
		if val == nil {
			return nil
		}
		rv := reflect.ValueOf(val)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			if rv.Len() == 0 {
				return tgskema.Issues{tgskema.IssueAt(tgskema.Root().Field(field), tgskema.CodeTooShort,
					i18n.T(tgskema.CodeTooShort, map[string]string{"field": field}),
					map[string]any{tgskema.ParamField: field, "minItems": 1})}
			}
		default:
			// Not a collection; the field constraints report it.
		}
		return nil
	})
}

// UniqueBy ensures the nested models of a list field carry distinct values
// for key. Elements without the key are skipped.
// Note: keys are compared by their printed form, so 1 and "1" collide.
func UniqueBy(field, key string) tgskema.Rule {
	return tgskema.RuleFunc("unique_by("+field+","+key+")", []string{field}, func(v tgskema.View) tgskema.Issues {
		elems, ok := v.Get(field).([]tgskema.Model)
		if !ok {
			return nil
		}
		seen := map[string]int{}
		var out tgskema.Issues
		for i, e := range elems {
			if e == nil || !e.Has(key) {
				continue
			}
			k := fmt.Sprint(e.Get(key))
			if first, dup := seen[k]; dup {
				out = append(out, tgskema.Root().Field(field).Index(i).Field(key).Issue(
					tgskema.CodeUniqueness,
					i18n.T(tgskema.CodeUniqueness, map[string]string{"field": key}),
					"first", first, "dup", i, "key", k,
				))
				continue
			}
			seen[k] = i
		}
		return out
	})
}

// And executes rules in order and stops at the first one that fails.
func And(rules ...tgskema.Rule) tgskema.Rule {
	return tgskema.RuleFunc("and", ruleFields(rules), func(v tgskema.View) tgskema.Issues {
		return firstFailure(v, rules)
	})
}

// Or succeeds if any rule returns no Issues. When all fail the branch with
// the fewest issues is reported.
func Or(rules ...tgskema.Rule) tgskema.Rule {
	return tgskema.RuleFunc("or", ruleFields(rules), func(v tgskema.View) tgskema.Issues {
		var best tgskema.Issues
		bestSet := false
		for _, r := range rules {
			iss := r.Check(v)
			if len(iss) == 0 {
				return nil
			}
			if !bestSet || len(iss) < len(best) {
				best = iss
				bestSet = true
			}
		}
		return best
	})
}

func firstFailure(v tgskema.View, rules []tgskema.Rule) tgskema.Issues {
	for _, r := range rules {
		if iss := r.Check(v); len(iss) > 0 {
			return iss
		}
	}
	return nil
}

func ruleFields(rules []tgskema.Rule) []string {
	var out []string
	for _, r := range rules {
		out = append(out, r.Fields()...)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func present(v tgskema.View, names []string) []string {
	var out []string
	for _, n := range names {
		if v.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

func requiredIssue(field string) tgskema.Issue {
	it := tgskema.IssueAt(tgskema.Root().Field(field), tgskema.CodeRequired,
		i18n.T(tgskema.CodeRequired, map[string]string{"field": field}),
		map[string]any{tgskema.ParamField: field})
	it.Hint = "required field " + field + " is not set"
	return it
}

func exclusionIssue(fields []string, desc string) tgskema.Issue {
	it := tgskema.IssueAt(tgskema.Root(), tgskema.CodeMutualExclusion,
		i18n.T(tgskema.CodeMutualExclusion, nil),
		map[string]any{tgskema.ParamFields: fields, tgskema.ParamDescription: desc})
	it.Hint = desc
	return it
}

func evalConditional(v tgskema.View, c Conditional) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !evalConditional(v, it) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if evalConditional(v, it) {
				return true
			}
		}
		return false
	}
	switch c.op {
	case Set:
		return v.Has(c.field)
	case Unset:
		return !v.Has(c.field)
	}
	if !v.Has(c.field) {
		return false
	}
	return compare(v.Get(c.field), c.op, c.want)
}

func compare(cur any, op Op, want any) bool {
	if a, ok := toFloat64(cur); ok {
		if b, ok := toFloat64(want); ok {
			return compareNumbers(a, op, b)
		}
	}
	switch op {
	case Eq:
		return reflect.DeepEqual(cur, want)
	case Ne:
		return !reflect.DeepEqual(cur, want)
	default:
		// ordering is defined for numbers only
		return false
	}
}

func compareNumbers(a float64, op Op, b float64) bool {
	switch op {
	case Eq:
		return a == b
	case Ne:
		return a != b
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

type float64er interface{ Float64() (float64, error) }

// toFloat64 normalizes the numeric representations a model may hold: Go
// integers and floats, and json.Number from decoded payloads.
func toFloat64(x any) (float64, bool) {
	if n, ok := x.(float64er); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
