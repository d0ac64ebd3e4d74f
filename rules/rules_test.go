package rules_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/rules"
)

func newModel(t *testing.T, rs ...tgskema.Rule) *tgskema.Dynamic {
	t.Helper()
	b := tgskema.NewSchema("Poll").
		Field("type").Accepts(tgskema.String()).
		Field("correct_option_id").Accepts(tgskema.Integer()).
		Field("open_period").Accepts(tgskema.Integer()).
		Field("close_date").Accepts(tgskema.Integer()).
		Field("options").Accepts(tgskema.ListOf(tgskema.ObjectOf(newOption)))
	for _, r := range rs {
		b.Rule(r)
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return tgskema.NewDynamic(s)
}

var optionSchema = tgskema.NewSchema("PollOption").
	Field("text").Requires(tgskema.String()).Scalar(tgskema.KindString).
	MustBuild()

func newOption() tgskema.Model { return tgskema.NewDynamic(optionSchema) }

func option(text string) tgskema.Model {
	m := newOption()
	m.Set("text", text)
	return m
}

func TestRequiredIf(t *testing.T) {
	m := newModel(t, rules.RequiredIf(rules.If("type", rules.Eq, "quiz"), "correct_option_id"))
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("condition unset: %v", err)
	}
	m.Set("type", "regular")
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("condition false: %v", err)
	}
	m.Set("type", "quiz")
	it, _ := tgskema.FirstIssue(tgskema.Validate(m))
	if it.Code != tgskema.CodeRequired || it.Field() != "correct_option_id" || it.Path != "/correct_option_id" {
		t.Fatalf("issue = %+v", it)
	}
	m.Set("correct_option_id", 0)
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("requirement met: %v", err)
	}
}

func TestIf_NumericComparisons(t *testing.T) {
	cases := []struct {
		op   rules.Op
		v    any
		want bool
	}{
		{rules.Gt, int64(601), true},
		{rules.Gt, json.Number("600"), false},
		{rules.Ge, 600, true},
		{rules.Lt, 5.5, true},
		{rules.Le, uint8(7), true},
		{rules.Eq, json.Number("600"), true},
		{rules.Ne, int64(600), false},
	}
	for _, tc := range cases {
		m := newModel(t, rules.If("open_period", tc.op, 600).Then(rules.Required("type")))
		m.Set("open_period", tc.v)
		failed := tgskema.IsCode(tgskema.Validate(m), tgskema.CodeRequired)
		if failed != tc.want {
			t.Errorf("open_period %s 600 with %#v: condition = %v, want %v", tc.op, tc.v, failed, tc.want)
		}
	}
}

func TestIf_Composites(t *testing.T) {
	cond := rules.IfSet("open_period").Or(rules.IfSet("close_date")).And(rules.If("type", rules.Ne, "quiz"))
	m := newModel(t, rules.RequiredIf(cond, "options"))
	m.Set("close_date", 1)
	m.Set("type", "quiz")
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("quiz excluded by the condition: %v", err)
	}
	m.Set("type", "regular")
	if !tgskema.IsCode(tgskema.Validate(m), tgskema.CodeRequired) {
		t.Fatalf("expected options to be required")
	}
	m.Unset("close_date")
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("neither period set: %v", err)
	}
}

func TestAtMostOne(t *testing.T) {
	m := newModel(t, rules.AtMostOne("open_period", "close_date"))
	m.Set("open_period", 5)
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("one set: %v", err)
	}
	m.Set("close_date", 10)
	it, _ := tgskema.FirstIssue(tgskema.Validate(m))
	if it.Code != tgskema.CodeMutualExclusion || it.Path != "/" {
		t.Fatalf("issue = %+v", it)
	}
	if diff := cmp.Diff([]string{"open_period", "close_date"}, it.Fields()); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
}

func TestExactlyOne(t *testing.T) {
	m := newModel(t, rules.ExactlyOne("open_period", "close_date"))
	it, _ := tgskema.FirstIssue(tgskema.Validate(m))
	if it.Code != tgskema.CodeRequired || it.Field() != "open_period" {
		t.Fatalf("none set: %+v", it)
	}
	m.Set("close_date", 1)
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("one set: %v", err)
	}
	m.Set("open_period", 1)
	if !tgskema.IsCode(tgskema.Validate(m), tgskema.CodeMutualExclusion) {
		t.Fatalf("both set should conflict")
	}
}

func TestAtLeastOne(t *testing.T) {
	m := newModel(t, rules.AtLeastOne("options"))
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("unset list is left to the required check: %v", err)
	}
	m.Set("options", []tgskema.Model{})
	it, _ := tgskema.FirstIssue(tgskema.Validate(m))
	if it.Code != tgskema.CodeTooShort || it.Path != "/options" {
		t.Fatalf("issue = %+v", it)
	}
	m.Set("options", []tgskema.Model{option("a")})
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("one option: %v", err)
	}
}

func TestUniqueBy(t *testing.T) {
	m := newModel(t, rules.UniqueBy("options", "text"))
	m.Set("options", []tgskema.Model{option("a"), option("b"), option("a")})
	iss, _ := tgskema.AsIssues(tgskema.Validate(m, tgskema.ValidateOpt{CollectAll: true}))
	if len(iss) != 1 {
		t.Fatalf("issues = %v", iss)
	}
	if iss[0].Code != tgskema.CodeUniqueness || iss[0].Path != "/options/2/text" || iss[0].Params["first"] != 0 {
		t.Fatalf("issue = %+v", iss[0])
	}
}

func TestAndOr(t *testing.T) {
	and := rules.And(rules.Required("type"), rules.Required("open_period"))
	m := newModel(t, and)
	it, _ := tgskema.FirstIssue(tgskema.Validate(m, tgskema.ValidateOpt{CollectAll: true}))
	if it.Field() != "type" {
		t.Fatalf("And should stop at the first failing rule: %+v", it)
	}

	or := rules.Or(rules.Required("open_period"), rules.Required("close_date", "type"))
	m = newModel(t, or)
	it, _ = tgskema.FirstIssue(tgskema.Validate(m))
	if it.Field() != "open_period" {
		t.Fatalf("Or should report the first branch with the fewest issues: %+v", it)
	}
	m.Set("close_date", 1)
	m.Set("type", "quiz")
	if err := tgskema.Validate(m); err != nil {
		t.Fatalf("second branch holds: %v", err)
	}
}

func TestRules_UndeclaredFieldsFailBuild(t *testing.T) {
	_, err := tgskema.NewSchema("X").
		Field("a").Accepts(tgskema.String()).
		Rule(rules.RequiredIf(rules.IfSet("a"), "b")).
		Build()
	if !tgskema.IsCode(err, tgskema.CodeSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}
