package schemafile

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/reoring/tgskema/codec"
)

// DecodeTOMLParams reads a TOML parameter file into the same value shapes
// DecodeParams produces. Datetimes become unix timestamps, the Bot API's
// representation of dates.
func DecodeTOMLParams(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("schemafile: parsing TOML: %w", err)
	}
	if m == nil {
		return map[string]any{}, nil
	}
	return normalizeTOML(m).(map[string]any), nil
}

// DecodeParamsFile picks the parameter decoder from the file extension:
// .toml files are TOML, everything else (YAML and JSON) goes through
// DecodeParams.
func DecodeParamsFile(path string, data []byte) (map[string]any, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return DecodeTOMLParams(data)
	}
	return DecodeParams(data)
}

func normalizeTOML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeTOML(e)
		}
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeTOML(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalizeTOML(e)
		}
		return t
	case time.Time:
		return codec.EncodeUnix(t)
	}
	return v
}
