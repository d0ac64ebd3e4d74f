package tgskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeInvalidType     = "invalid_type"     // a present value fails every alternative
	CodeRequired        = "required"         // a required field is unset
	CodeMutualExclusion = "mutual_exclusion" // a cross-field rule was violated
	CodeHydration       = "hydration_error"  // payload shape mismatch during hydration
	CodeTooShort        = "too_short"        // a list holds fewer elements than a rule asks for
	CodeUniqueness      = "uniqueness"       // list elements repeat a key that must be unique
	CodeUnknownKey      = "unknown_key"
	CodeSchema          = "schema_error"
	CodeParseError      = "parse_error"
)

// Param keys carried in Issue.Params.
const (
	ParamField       = "field"
	ParamFields      = "fields"
	ParamGot         = "got"
	ParamExpected    = "expected"
	ParamDescription = "description"
)

// Issue represents a single validation or hydration failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /reply_markup/inline_keyboard/0/1/text).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: human-readable detail such as the expected kinds.
	Cause   error  // Optional: underlying error.
	// Params carries structured data (field, got, expected, fields,
	// description) so callers can assert on it without parsing messages.
	Params map[string]any
	// Rule records the cross-field rule that produced this issue, if any.
	Rule string
}

// Field returns the field named by the issue, or "" when it has none.
func (it Issue) Field() string {
	s, _ := it.Params[ParamField].(string)
	return s
}

// Fields returns the conflicting field set of a mutual exclusion issue.
func (it Issue) Fields() []string {
	fs, _ := it.Params[ParamFields].([]string)
	return append([]string(nil), fs...)
}

// Got returns the observed kind for type and hydration issues.
func (it Issue) Got() Kind {
	k, ok := it.Params[ParamGot].(Kind)
	if !ok {
		return KindUnknown
	}
	return k
}

// Expected returns the accepted kinds for type and hydration issues.
func (it Issue) Expected() []Kind {
	ks, _ := it.Params[ParamExpected].([]Kind)
	return append([]Kind(nil), ks...)
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// FirstIssue returns the first issue carried by err.
func FirstIssue(err error) (Issue, bool) {
	iss, ok := AsIssues(err)
	if !ok || len(iss) == 0 {
		return Issue{}, false
	}
	return iss[0], true
}

// IsCode reports whether err carries at least one issue with the given code.
func IsCode(err error, code string) bool {
	iss, _ := AsIssues(err)
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
