package tgskema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	tgskema "github.com/reoring/tgskema"
)

func TestSchema_FieldOrderAndLookup(t *testing.T) {
	var names []string
	for _, f := range shapeSchema.Fields() {
		names = append(names, f.Name())
	}
	want := []string{"name", "visible", "origin", "points", "grid", "meta"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order (-want +got):\n%s", diff)
	}
	f, ok := shapeSchema.Field("meta")
	if !ok || f.Encoding() != tgskema.EncodeJSONText {
		t.Fatalf("meta should be declared json text: %+v", f)
	}
	if f.Hydration().Kind != tgskema.HydrateObject {
		t.Fatalf("meta hydration kind = %s", f.Hydration().Kind)
	}
	if _, ok := shapeSchema.Field("missing"); ok {
		t.Fatalf("unexpected field")
	}
}

func TestSchema_RequiredIfAnyAlternativeRequires(t *testing.T) {
	s := tgskema.NewSchema("Target").
		Field("chat_id").Accepts(tgskema.Integer()).Requires(tgskema.String()).
		Field("note").Accepts(tgskema.String()).
		MustBuild()
	f, _ := s.Field("chat_id")
	if !f.Required() {
		t.Fatalf("chat_id should be required when one alternative requires it")
	}
	if len(f.Configs()) != 2 {
		t.Fatalf("expected two alternatives, got %d", len(f.Configs()))
	}
	n, _ := s.Field("note")
	if n.Required() {
		t.Fatalf("note should be optional")
	}
}

func TestSchema_BuildErrors(t *testing.T) {
	cases := []struct {
		name string
		b    func() (*tgskema.Schema, error)
		path string
	}{
		{"duplicate", func() (*tgskema.Schema, error) {
			return tgskema.NewSchema("D").Field("a").Accepts(tgskema.String()).Field("a").Accepts(tgskema.Integer()).Build()
		}, "/a"},
		{"empty definition", func() (*tgskema.Schema, error) {
			return tgskema.NewSchema("E").Field("a").Build()
		}, "/a"},
		{"object without target", func() (*tgskema.Schema, error) {
			return tgskema.NewSchema("O").Field("o").Object(nil).Build()
		}, "/o"},
		{"rule on undeclared field", func() (*tgskema.Schema, error) {
			return tgskema.NewSchema("R").Field("a").Accepts(tgskema.String()).Rule(tgskema.Together("a", "b")).Build()
		}, "/b"},
		{"empty name", func() (*tgskema.Schema, error) {
			return tgskema.NewSchema("N").Field("").Accepts(tgskema.String()).Build()
		}, "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := tc.b()
			if err == nil || s != nil {
				t.Fatalf("expected build error, got schema %v", s)
			}
			iss, ok := tgskema.AsIssues(err)
			if !ok || iss[0].Code != tgskema.CodeSchema || iss[0].Path != tc.path {
				t.Fatalf("unexpected issues: %v", err)
			}
		})
	}
}

func TestSchema_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	tgskema.NewSchema("P").Field("a").MustBuild()
}

func TestSchema_JSONSchema(t *testing.T) {
	js := pointSchema.JSONSchema()
	if js.Type != "object" || js.Title != "Point" {
		t.Fatalf("unexpected root: %+v", js)
	}
	if diff := cmp.Diff([]string{"x"}, js.Required); diff != "" {
		t.Fatalf("required (-want +got):\n%s", diff)
	}
	if js.Properties["x"].Type != "integer" {
		t.Fatalf("x: %+v", js.Properties["x"])
	}
	label := js.Properties["label"]
	if len(label.OneOf) != 2 || label.OneOf[0].Type != "string" || label.OneOf[1].Type != "integer" {
		t.Fatalf("label should be a oneOf string|integer: %+v", label)
	}

	sh := shapeSchema.JSONSchema()
	if g := sh.Properties["grid"]; g.Type != "array" || g.Items.Type != "array" || g.Items.Items.Title != "Point" {
		t.Fatalf("grid: %+v", g)
	}
	if m := sh.Properties["meta"]; m.Format != "json-text" {
		t.Fatalf("meta format = %q", m.Format)
	}
}
