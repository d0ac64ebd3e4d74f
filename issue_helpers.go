package tgskema

import (
	"strings"

	"github.com/reoring/tgskema/i18n"
)

// IssueAt creates an Issue at the given path with provided code, message and params map.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params}
}

func requiredIssue(p PathRef, field string) Issue {
	return Issue{
		Path:    p.Pointer(),
		Code:    CodeRequired,
		Message: i18n.T(CodeRequired, map[string]string{"field": field}),
		Hint:    "required field " + field + " is not set",
		Params:  map[string]any{ParamField: field},
	}
}

func typeIssue(p PathRef, field string, got Kind, expected []Kind) Issue {
	return Issue{
		Path:    p.Pointer(),
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"field": field}),
		Hint:    "expected " + joinKinds(expected) + ", got " + got.String(),
		Params:  map[string]any{ParamField: field, ParamGot: got, ParamExpected: expected},
	}
}

func hydrationIssue(p PathRef, field string, got, expected Kind) Issue {
	return Issue{
		Path:    p.Pointer(),
		Code:    CodeHydration,
		Message: i18n.T(CodeHydration, map[string]string{"field": field}),
		Hint:    "expected " + expected.String() + ", got " + got.String(),
		Params:  map[string]any{ParamField: field, ParamGot: got, ParamExpected: []Kind{expected}},
	}
}

func schemaIssue(path, hint string) Issue {
	return Issue{Path: path, Code: CodeSchema, Message: i18n.T(CodeSchema, nil), Hint: hint}
}

func joinKinds(ks []Kind) string {
	parts := make([]string, 0, len(ks))
	for _, k := range ks {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, " | ")
}

// rebase prefixes every issue path with base so nested failures keep their
// position in the enclosing object.
func rebase(iss Issues, base PathRef) Issues {
	prefix := base.Pointer()
	if prefix == "/" {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		switch {
		case it.Path == "" || it.Path == "/":
			it.Path = prefix
		default:
			it.Path = prefix + it.Path
		}
		out = append(out, it)
	}
	return out
}
