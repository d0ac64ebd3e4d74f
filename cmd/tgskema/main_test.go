package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// run executes the CLI with a compact-output config file.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfg := writeFile(t, t.TempDir(), "tgskema.yaml", "indent: 0\nlanguage: en\n")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTypes(t *testing.T) {
	out, _, err := run(t, "types")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	names := strings.Fields(out)
	for _, want := range []string{"EditMessageText", "InlineKeyboardMarkup", "Update"} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("types output lacks %s", want)
		}
	}
}

func TestTypes_SchemaFile(t *testing.T) {
	sf := writeFile(t, t.TempDir(), "extra.yaml", "schemas:\n  - name: Dice\n    fields:\n      - name: value\n        accepts: [integer]\n")
	out, _, err := run(t, "--schema-file", sf, "types")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	if !strings.Contains(out, "Dice\n") {
		t.Fatalf("schema file type missing:\n%s", out)
	}
}

func TestSchema(t *testing.T) {
	out, _, err := run(t, "schema", "editMessageText")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc map[string]any
	if err := j.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	props, _ := doc["properties"].(map[string]any)
	if _, ok := props["reply_markup"]; !ok {
		t.Fatalf("reply_markup missing from properties: %v", doc)
	}
}

const editParams = `
chat_id: 5
message_id: 7
text: hi
reply_markup:
  inline_keyboard:
    - - text: A
        callback_data: a
`

func TestBuild_JSON(t *testing.T) {
	in := writeFile(t, t.TempDir(), "req.yaml", editParams)
	out, stderr, err := run(t, "build", "editMessageText", in)
	if err != nil {
		t.Fatalf("build: %v\n%s", err, stderr)
	}
	var got map[string]any
	if err := j.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	want := map[string]any{
		"chat_id":      float64(5),
		"message_id":   float64(7),
		"text":         "hi",
		"reply_markup": `{"inline_keyboard":[[{"text":"A","callback_data":"a"}]]}`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("wire map (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr, "request built") {
		t.Errorf("expected build log line, got %q", stderr)
	}
}

func TestBuild_Form(t *testing.T) {
	in := writeFile(t, t.TempDir(), "req.yaml", editParams)
	out, _, err := run(t, "build", "--form", "editMessageText", in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "chat_id=5\nmessage_id=7\ntext=hi\n" +
		`reply_markup={"inline_keyboard":[[{"text":"A","callback_data":"a"}]]}` + "\n"
	if out != want {
		t.Fatalf("form output:\n%s\nwant:\n%s", out, want)
	}
}

func TestBuild_TOML(t *testing.T) {
	in := writeFile(t, t.TempDir(), "req.toml", `chat_id = 5
message_id = 7
text = "hi"

[reply_markup]
inline_keyboard = [[{ text = "A", callback_data = "a" }]]
`)
	out, stderr, err := run(t, "build", "--form", "editMessageText", in)
	if err != nil {
		t.Fatalf("build: %v\n%s", err, stderr)
	}
	want := "chat_id=5\nmessage_id=7\ntext=hi\n" +
		`reply_markup={"inline_keyboard":[[{"text":"A","callback_data":"a"}]]}` + "\n"
	if out != want {
		t.Fatalf("form output:\n%s\nwant:\n%s", out, want)
	}
}

func TestBuild_ReportsIssues(t *testing.T) {
	in := writeFile(t, t.TempDir(), "req.yaml", "chat_id: 5\nmessage_id: 7\ninline_message_id: abc\ntext: hi\n")
	out, stderr, err := run(t, "build", "editMessageText", in)
	if err == nil {
		t.Fatalf("expected error, got output %q", out)
	}
	if !strings.Contains(stderr, "mutual_exclusion") {
		t.Fatalf("issue code not logged: %q", stderr)
	}
}

func TestBuild_UnknownKey(t *testing.T) {
	in := writeFile(t, t.TempDir(), "req.yaml", "chat_id: 5\nmessage_id: 7\ntext: hi\ncolour: red\n")
	_, stderr, err := run(t, "build", "editMessageText", in)
	if err == nil || !strings.Contains(stderr, "unknown_key") {
		t.Fatalf("expected unknown_key issue, err=%v stderr=%q", err, stderr)
	}
}

func TestHydrate_Envelope(t *testing.T) {
	update, err := os.ReadFile("../../telegram/testdata/callback_update.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	in := writeFile(t, t.TempDir(), "updates.json", `{"ok":true,"result":[`+string(update)+`]}`)
	out, stderr, err := run(t, "hydrate", "--envelope", "--validate", "Update", in)
	if err != nil {
		t.Fatalf("hydrate: %v\n%s", err, stderr)
	}
	var got []map[string]any
	if err := j.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a JSON list: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0]["update_id"] != float64(10000) {
		t.Fatalf("unexpected output: %v", got)
	}
	cq, _ := got[0]["callback_query"].(map[string]any)
	if cq["data"] != "vote:yes" {
		t.Fatalf("callback data = %v", cq["data"])
	}
}

func TestHydrate_FailedEnvelope(t *testing.T) {
	in := writeFile(t, t.TempDir(), "resp.json", `{"ok":false,"error_code":400,"description":"Bad Request: message is not modified"}`)
	_, _, err := run(t, "hydrate", "--envelope", "Message", in)
	if err == nil || !strings.Contains(err.Error(), "message is not modified") {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestUnknownType(t *testing.T) {
	_, _, err := run(t, "schema", "Sticker")
	if err == nil || !strings.Contains(err.Error(), "unknown type") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}
