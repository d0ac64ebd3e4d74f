package tgskema

// ValidateOpt controls validation. The zero value fails fast on the first
// issue; CollectAll gathers every issue instead.
type ValidateOpt struct {
	CollectAll bool
}

// Validate checks m against its schema and returns nil or Issues.
//
// Cross-field rules run first and look only at presence. Fields are then
// checked in declaration order: an unset field fails when any alternative
// requires it, and a set field passes when at least one alternative accepts
// it. Nested models are validated in turn, with paths under their field.
func Validate(m Model, opts ...ValidateOpt) error {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	if isNilModel(m) || m.Schema() == nil {
		return Issues{schemaIssue("/", "model without schema")}
	}
	if iss := validateModel(m, Root(), opt.CollectAll); len(iss) > 0 {
		return iss
	}
	return nil
}

// Match reports the index of the first alternative accepting the current
// value of field. It returns false when the field is unknown, unset or
// rejected by every alternative.
func Match(m Model, field string) (int, bool) {
	f, ok := m.Schema().Field(field)
	if !ok {
		return -1, false
	}
	v := m.Get(field)
	if v == nil {
		return -1, false
	}
	i := f.match(v)
	return i, i >= 0
}

func (f FieldDef) match(v any) int {
	for i, c := range f.configs {
		if c.accepts(v) {
			return i
		}
	}
	return -1
}

func (f FieldDef) expectedKinds() []Kind {
	var out []Kind
	seen := map[Kind]bool{}
	for _, c := range f.configs {
		for _, cs := range c.Constraints {
			if k := cs.Expected(); !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

func validateModel(m Model, at PathRef, collect bool) Issues {
	s := m.Schema()
	var out Issues
	for _, r := range s.rules {
		iss := r.eval(m)
		if len(iss) == 0 {
			continue
		}
		out = append(out, rebase(iss, at)...)
		if !collect {
			return out
		}
	}
	for _, f := range s.fields {
		if len(f.configs) == 0 {
			continue
		}
		p := at.Field(f.name)
		v := m.Get(f.name)
		if v == nil {
			if f.Required() {
				out = append(out, rebase(Issues{requiredIssue(Root().Field(f.name), f.name)}, at)...)
				if !collect {
					return out
				}
			}
			continue
		}
		if f.match(v) < 0 {
			out = append(out, rebase(Issues{typeIssue(Root().Field(f.name), f.name, KindOf(v), f.expectedKinds())}, at)...)
			if !collect {
				return out
			}
			continue
		}
		if iss := validateNested(v, p, collect); len(iss) > 0 {
			out = append(out, iss...)
			if !collect {
				return out
			}
		}
	}
	return out
}

func validateNested(v any, at PathRef, collect bool) Issues {
	var out Issues
	switch t := v.(type) {
	case Model:
		if t.Schema() != nil {
			return validateModel(t, at, collect)
		}
	case []Model:
		for i, e := range t {
			if isNilModel(e) || e.Schema() == nil {
				continue
			}
			out = append(out, validateModel(e, at.Index(i), collect)...)
			if len(out) > 0 && !collect {
				return out
			}
		}
	case [][]Model:
		for i, row := range t {
			out = append(out, validateNested(row, at.Index(i), collect)...)
			if len(out) > 0 && !collect {
				return out
			}
		}
	}
	return out
}
