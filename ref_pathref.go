package tgskema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/tgskema/i18n"
)

// PathRef is an immutable JSON Pointer under construction. Issues created
// through it point at the field or element that failed, for example
// /reply_markup/inline_keyboard/0/1/text.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	// Segments returns the unescaped reference tokens.
	Segments() []string
	Pointer() string
	// Issue creates an Issue at this path with kv as Params pairs. The
	// field param defaults to the last field segment and an empty msg is
	// taken from the translator.
	Issue(code, msg string, kv ...any) Issue
}

// segment is one reference token; index is -1 for object members.
type segment struct {
	name  string
	index int
}

type pathRef struct {
	segs []segment
}

var rootRef = &pathRef{}

// Root returns the PathRef of the model itself ("/").
func Root() PathRef { return rootRef }

// At parses a JSON Pointer. Tokens are unescaped per RFC 6901 and canonical
// non-negative integers become array indexes.
func At(ptr string) PathRef {
	p := &pathRef{}
	for _, tok := range strings.Split(ptr, "/") {
		if tok == "" {
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil && n >= 0 && strconv.Itoa(n) == tok {
			p.segs = append(p.segs, segment{index: n})
			continue
		}
		p.segs = append(p.segs, segment{name: unescapeToken(tok), index: -1})
	}
	return p
}

func (p *pathRef) push(s segment) PathRef {
	segs := make([]segment, len(p.segs), len(p.segs)+1)
	copy(segs, p.segs)
	return &pathRef{segs: append(segs, s)}
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return p.push(segment{name: name, index: -1})
}

func (p *pathRef) Index(i int) PathRef { return p.push(segment{index: i}) }

func (p *pathRef) Segments() []string {
	out := make([]string, len(p.segs))
	for i, s := range p.segs {
		out[i] = s.token()
	}
	return out
}

func (p *pathRef) Pointer() string {
	if len(p.segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p.segs {
		b.WriteByte('/')
		if s.index >= 0 {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		b.WriteString(escapeToken(s.name))
	}
	return b.String()
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	params := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		params[fmt.Sprint(kv[i])] = kv[i+1]
	}
	field, ok := params[ParamField].(string)
	if !ok {
		if field = p.lastField(); field != "" {
			params[ParamField] = field
		}
	}
	if msg == "" {
		msg = i18n.T(code, map[string]string{"field": field})
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params}
}

func (p *pathRef) lastField() string {
	for i := len(p.segs) - 1; i >= 0; i-- {
		if p.segs[i].index < 0 {
			return p.segs[i].name
		}
	}
	return ""
}

func (s segment) token() string {
	if s.index >= 0 {
		return strconv.Itoa(s.index)
	}
	return s.name
}

var (
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

func escapeToken(s string) string   { return tokenEscaper.Replace(s) }
func unescapeToken(s string) string { return tokenUnescaper.Replace(s) }
