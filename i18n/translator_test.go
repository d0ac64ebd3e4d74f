package i18n

import (
	"strings"
	"testing"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_EmbedsField(t *testing.T) {
	msg := T("required", map[string]string{"field": "chat_id"})
	if !strings.HasSuffix(msg, ": chat_id") {
		t.Fatalf("expected field suffix, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return strings.ToUpper(code) }

func TestTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("mutual_exclusion", nil); msg != "MUTUAL_EXCLUSION" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("mutual_exclusion", nil); msg != "mutually exclusive fields are set" {
		t.Fatalf("expected built-in en message after reset, got %q", msg)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}
