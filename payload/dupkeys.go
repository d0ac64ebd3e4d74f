package payload

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// DuplicateKeyError lists the JSON pointers of keys repeated within one object.
type DuplicateKeyError struct {
	Paths []string
}

func (e *DuplicateKeyError) Error() string {
	return "payload: duplicate keys at " + strings.Join(e.Paths, ", ")
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	key          string // current member name (objects)
	index        int    // next element index (arrays)
}

// DuplicateKeys scans data and returns the pointer of every repeated key, in
// document order. The scan is token based and does not build values.
func DuplicateKeys(data []byte) ([]string, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		out   []string
		stack []dupFrame
	)
	// valueDone advances the enclosing container after a complete value.
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject {
			top.expectingKey = true
		} else {
			top.index++
		}
	}
	pointer := func(leaf string) string {
		var b strings.Builder
		for i, f := range stack {
			if f.kind == kindObject {
				if i < len(stack)-1 {
					b.WriteString("/" + escape(f.key))
				}
				continue
			}
			b.WriteString("/" + strconv.Itoa(f.index))
		}
		b.WriteString("/" + escape(leaf))
		return b.String()
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("payload: scan: %w", err)
		}
		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						out = append(out, pointer(v))
					}
					top.keys[v] = struct{}{}
					top.key = v
					top.expectingKey = false
					continue
				}
			}
			valueDone()
		default:
			valueDone()
		}
	}
	return out, nil
}

func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
