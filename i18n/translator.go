package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	field := data["field"]
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return withField("型が不正です", field)
		case "required":
			return withField("必須フィールドが設定されていません", field)
		case "mutual_exclusion":
			return "同時に指定できないフィールドが設定されています"
		case "hydration_error":
			return withField("ペイロードの形式が不正です", field)
		case "too_short":
			return withField("要素数が不足しています", field)
		case "uniqueness":
			return withField("値が重複しています", field)
		case "unknown_key":
			return withField("未知のキーです", field)
		case "schema_error":
			return "スキーマ定義が不正です"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return withField("invalid type", field)
		case "required":
			return withField("required field missing", field)
		case "mutual_exclusion":
			return "mutually exclusive fields are set"
		case "hydration_error":
			return withField("payload shape mismatch", field)
		case "too_short":
			return withField("too few elements", field)
		case "uniqueness":
			return withField("duplicate value", field)
		case "unknown_key":
			return withField("unknown key", field)
		case "schema_error":
			return "invalid schema definition"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

func withField(msg, field string) string {
	if field == "" {
		return msg
	}
	return msg + ": " + field
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
