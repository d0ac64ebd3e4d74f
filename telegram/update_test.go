package telegram_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/payload"
	"github.com/reoring/tgskema/telegram"
)

func loadUpdate(t *testing.T) *telegram.Update {
	t.Helper()
	data, err := os.ReadFile("testdata/callback_update.json")
	if err != nil {
		t.Fatal(err)
	}
	upd, err := tgskema.HydrateJSON[telegram.Update](data)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	return upd
}

func TestUpdate_HydrateCallbackQuery(t *testing.T) {
	upd := loadUpdate(t)
	if upd.UpdateID() != 10000 || upd.Message() != nil {
		t.Fatalf("update = %#v", upd)
	}
	cq := upd.CallbackQuery()
	if cq == nil {
		t.Fatalf("callback query missing")
	}
	if cq.ID() != "4382bfdwdsb323b2d9" || cq.Data() != "vote:yes" || cq.InlineMessageID() != "" {
		t.Fatalf("callback query = %#v", cq)
	}
	if from := cq.From(); from.ID() != 1111111 || from.Username() != "tester" || from.IsBot() {
		t.Fatalf("from = %#v", from)
	}
	msg := cq.Message()
	if msg.Chat().ID() != -1001234567890 || msg.Chat().Type() != "supergroup" {
		t.Fatalf("chat = %#v", msg.Chat())
	}
	if ents := msg.Entities(); ents == nil || len(ents) != 0 {
		t.Fatalf("empty entities should hydrate to an empty list, got %#v", ents)
	}
	if msg.ReplyToMessage() != nil || msg.Has("reply_to_message") {
		t.Fatalf("absent reply_to_message should be unset")
	}
	var labels []string
	for _, row := range msg.ReplyMarkup().Rows() {
		for _, b := range row {
			labels = append(labels, b.Text()+"="+b.CallbackData())
		}
	}
	if diff := cmp.Diff([]string{"Yes=vote:yes", "No=vote:no"}, labels); diff != "" {
		t.Fatalf("buttons (-want +got):\n%s", diff)
	}
	if err := tgskema.Validate(upd); err != nil {
		t.Fatalf("hydrated update should validate: %v", err)
	}
}

func TestCallbackQuery_EditTextAndAnswer(t *testing.T) {
	cq := loadUpdate(t).CallbackQuery()

	edit := cq.EditText("Thanks!")
	w, err := tgskema.ValidateAndSerialize(edit)
	if err != nil {
		t.Fatalf("edit request: %v", err)
	}
	want := map[string]any{"chat_id": int64(-1001234567890), "message_id": int64(1365), "text": "Thanks!"}
	if diff := cmp.Diff(want, w.ToMap()); diff != "" {
		t.Fatalf("edit wire map (-want +got):\n%s", diff)
	}

	ans := cq.Answer().SetText("recorded")
	if ans.CallbackQueryID() != cq.ID() {
		t.Fatalf("answer id = %s", ans.CallbackQueryID())
	}

	inline := new(telegram.CallbackQuery)
	inline.Set("id", "x")
	inline.Set("inline_message_id", "im-1")
	w, err = tgskema.ValidateAndSerialize(inline.EditText("t"))
	if err != nil {
		t.Fatalf("inline edit: %v", err)
	}
	if diff := cmp.Diff([]string{"inline_message_id", "text"}, w.Keys()); diff != "" {
		t.Fatalf("inline edit keys (-want +got):\n%s", diff)
	}
}

func TestMessage_HydrationErrorPath(t *testing.T) {
	raw := map[string]any{
		"update_id": 1,
		"message": map[string]any{
			"message_id": 1,
			"from":       map[string]any{"id": "not-a-number"},
		},
	}
	_, err := tgskema.Hydrate[telegram.Update](raw)
	it, ok := tgskema.FirstIssue(err)
	if !ok || it.Code != tgskema.CodeHydration || it.Path != "/message/from/id" {
		t.Fatalf("issue = %+v (err=%v)", it, err)
	}
}

func TestMessage_RoundTrip(t *testing.T) {
	orig := new(telegram.Message).
		SetMessageID(5).
		SetDate(1700000000).
		SetChat(new(telegram.Chat).SetID(9).SetType("private")).
		SetFrom(new(telegram.User).SetID(3).SetFirstName("Ann")).
		SetText("hello @bob").
		SetEntities(new(telegram.MessageEntity).SetType("mention").SetOffset(6).SetLength(4)).
		SetReplyToMessage(new(telegram.Message).SetMessageID(4).SetDate(1).SetChat(new(telegram.Chat).SetID(9).SetType("private")))
	if err := tgskema.Validate(orig); err != nil {
		t.Fatalf("validate: %v", err)
	}
	w, err := tgskema.Serialize(orig)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	back, err := tgskema.Hydrate[telegram.Message](w)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	w2, err := tgskema.Serialize(back)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff(w.ToMap(), w2.ToMap()); diff != "" {
		t.Fatalf("round trip (-orig +back):\n%s", diff)
	}
	if back.ReplyToMessage().MessageID() != 4 || back.Entities()[0].Length() != 4 {
		t.Fatalf("nested values lost")
	}
}

func TestHydrateUpdates_FromEnvelope(t *testing.T) {
	body := []byte(`{"ok":true,"result":[{"update_id":1,"message":{"message_id":1,"date":2,"chat":{"id":3,"type":"private"},"text":"hi"}},{"update_id":2}]}`)
	res, err := payload.Unwrap(body)
	if err != nil {
		t.Fatalf("unwrap: %v", err)
	}
	ups, err := telegram.HydrateUpdates(res.Value)
	if err != nil {
		t.Fatalf("hydrate updates: %v", err)
	}
	if len(ups) != 2 || ups[0].Message().Text() != "hi" || ups[1].UpdateID() != 2 {
		t.Fatalf("updates = %#v", ups)
	}

	_, err = telegram.HydrateUpdates([]any{map[string]any{"update_id": 1}, map[string]any{"update_id": "x"}})
	it, _ := tgskema.FirstIssue(err)
	if it.Path != "/1/update_id" {
		t.Fatalf("issue path = %q", it.Path)
	}
	if _, err := telegram.HydrateUpdates(map[string]any{}); err == nil {
		t.Fatalf("non-array result should fail")
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"EditMessageText", "editMessageText", "Update", "InlineKeyboardMarkup"} {
		f, ok := telegram.Lookup(name)
		if !ok || f().Schema() == nil {
			t.Fatalf("lookup %s failed", name)
		}
	}
	f, _ := telegram.Lookup("sendMessage")
	if req, ok := f().(telegram.Request); !ok || req.Method() != "sendMessage" {
		t.Fatalf("sendMessage should resolve to a request")
	}
	if _, ok := telegram.Lookup("nope"); ok {
		t.Fatalf("unexpected type")
	}
	names := telegram.Names()
	if len(names) == 0 || names[0] != "AnswerCallbackQuery" {
		t.Fatalf("names = %v", names)
	}
}
