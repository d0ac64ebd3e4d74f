package tgskema

import (
	"strings"

	"github.com/reoring/tgskema/i18n"
)

// View is the read-only side of a model that cross-field rules see.
type View interface {
	Has(name string) bool
	Get(name string) any
}

// Rule is a cross-field constraint evaluated before the per-field pass.
type Rule struct {
	name   string
	fields []string
	check  func(View) Issues
}

func (r Rule) Name() string { return r.name }

// Fields returns the fields the rule reads.
func (r Rule) Fields() []string { return append([]string(nil), r.fields...) }

// Check evaluates the rule against v. Issues produced by the check are
// tagged with the rule name unless they already carry one.
func (r Rule) Check(v View) Issues { return r.eval(v) }

func (r Rule) eval(v View) Issues {
	if r.check == nil {
		return nil
	}
	iss := r.check(v)
	for i := range iss {
		if iss[i].Rule == "" {
			iss[i].Rule = r.name
		}
	}
	return iss
}

// RuleFunc wraps an arbitrary check. fields lists what fn reads so Build can
// verify they exist.
func RuleFunc(name string, fields []string, fn func(View) Issues) Rule {
	return Rule{name: name, fields: append([]string(nil), fields...), check: fn}
}

// Exclusive forbids fields of group a alongside fields of group b. The
// violation is reported at the model root with the present conflicting
// fields and desc.
func Exclusive(desc string, a, b []string) Rule {
	fields := append(append([]string(nil), a...), b...)
	name := "exclusive(" + strings.Join(a, ",") + "|" + strings.Join(b, ",") + ")"
	return Rule{name: name, fields: fields, check: func(v View) Issues {
		pa, pb := present(v, a), present(v, b)
		if len(pa) == 0 || len(pb) == 0 {
			return nil
		}
		conflict := append(pa, pb...)
		return Issues{{
			Path:    Root().Pointer(),
			Code:    CodeMutualExclusion,
			Message: i18n.T(CodeMutualExclusion, nil),
			Hint:    desc,
			Params:  map[string]any{ParamFields: conflict, ParamDescription: desc},
		}}
	}}
}

// Together requires the listed fields to be set jointly: once any of them is
// set, the first missing one is reported as required.
func Together(fields ...string) Rule {
	fs := append([]string(nil), fields...)
	return Rule{name: "together(" + strings.Join(fs, ",") + ")", fields: fs, check: func(v View) Issues {
		if len(present(v, fs)) == 0 {
			return nil
		}
		for _, f := range fs {
			if !v.Has(f) {
				return Issues{requiredIssue(Root().Field(f), f)}
			}
		}
		return nil
	}}
}

func present(v View, names []string) []string {
	var out []string
	for _, n := range names {
		if v.Has(n) {
			out = append(out, n)
		}
	}
	return out
}
