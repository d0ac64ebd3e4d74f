package webhook_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/telegram"
	"github.com/reoring/tgskema/webhook"
)

func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../telegram/testdata/callback_update.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func post(h http.Handler, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body))
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_RepliesWithMethodCall(t *testing.T) {
	var seen int64
	h := webhook.New(func(ctx context.Context, upd *telegram.Update) (telegram.Request, error) {
		fromCtx, ok := webhook.UpdateFromContext(ctx)
		if !ok || fromCtx != upd {
			t.Errorf("update not attached to context")
		}
		seen = upd.UpdateID()
		return upd.CallbackQuery().EditText("thanks"), nil
	})
	rec := post(h, fixture(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if seen != 10000 {
		t.Fatalf("handler saw update %d", seen)
	}
	var got map[string]any
	if err := j.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("reply is not JSON: %v", err)
	}
	want := map[string]any{
		"method":     "editMessageText",
		"chat_id":    float64(-1001234567890),
		"message_id": float64(1365),
		"text":       "thanks",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reply (-want +got):\n%s", diff)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestHandler_NoReply(t *testing.T) {
	h := webhook.New(func(context.Context, *telegram.Update) (telegram.Request, error) { return nil, nil })
	rec := post(h, fixture(t), nil)
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("status = %d body=%q", rec.Code, rec.Body)
	}
}

func TestHandler_InvalidReplyStillConsumesUpdate(t *testing.T) {
	h := webhook.New(func(context.Context, *telegram.Update) (telegram.Request, error) {
		return new(telegram.EditMessageText).SetChatID(1), nil
	})
	rec := post(h, fixture(t), nil)
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("status = %d body=%q", rec.Code, rec.Body)
	}
}

func TestHandler_Rejections(t *testing.T) {
	ok := func(context.Context, *telegram.Update) (telegram.Request, error) { return nil, nil }
	cases := []struct {
		name   string
		h      http.Handler
		body   string
		hdr    map[string]string
		status int
		code   string
	}{
		{"secret mismatch", webhook.New(ok, webhook.WithSecretToken("s3cret")), fixture(t), map[string]string{webhook.SecretHeader: "nope"}, http.StatusForbidden, ""},
		{"secret prefix", webhook.New(ok, webhook.WithSecretToken("s3cret")), fixture(t), map[string]string{webhook.SecretHeader: "s3c"}, http.StatusForbidden, ""},
		{"secret same length", webhook.New(ok, webhook.WithSecretToken("s3cret")), fixture(t), map[string]string{webhook.SecretHeader: "s3creT"}, http.StatusForbidden, ""},
		{"secret missing", webhook.New(ok, webhook.WithSecretToken("s3cret")), fixture(t), nil, http.StatusForbidden, ""},
		{"bad json", webhook.New(ok), `{"update_id":`, nil, http.StatusBadRequest, tgskema.CodeParseError},
		{"duplicate keys", webhook.New(ok), `{"update_id":1,"update_id":2}`, nil, http.StatusBadRequest, tgskema.CodeParseError},
		{"wrong shape", webhook.New(ok), `{"update_id":"x"}`, nil, http.StatusBadRequest, tgskema.CodeHydration},
		{"missing update id", webhook.New(ok), `{"message":null}`, nil, http.StatusBadRequest, tgskema.CodeRequired},
		{"too large", webhook.New(ok, webhook.WithMaxBody(8)), fixture(t), nil, http.StatusRequestEntityTooLarge, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(tc.h, tc.body, tc.hdr)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (body=%s)", rec.Code, tc.status, rec.Body)
			}
			if tc.code == "" {
				return
			}
			var body struct {
				Issues []webhook.IssueBody `json:"issues"`
			}
			if err := j.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if len(body.Issues) == 0 || body.Issues[0].Code != tc.code {
				t.Fatalf("issues = %+v, want code %s", body.Issues, tc.code)
			}
		})
	}
}

func TestHandler_SecretAccepted(t *testing.T) {
	h := webhook.New(func(context.Context, *telegram.Update) (telegram.Request, error) { return nil, nil },
		webhook.WithSecretToken("s3cret"))
	rec := post(h, fixture(t), map[string]string{webhook.SecretHeader: "s3cret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandler_MethodAndHandlerError(t *testing.T) {
	h := webhook.New(func(context.Context, *telegram.Update) (telegram.Request, error) {
		return nil, errors.New("boom")
	})
	req := httptest.NewRequest(http.MethodGet, "/hook", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("GET: status = %d", rec.Code)
	}
	rec = post(h, fixture(t), nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("handler error: status = %d", rec.Code)
	}
}

func TestReplyBody(t *testing.T) {
	req := new(telegram.AnswerCallbackQuery).SetCallbackQueryID("q").SetText("ok")
	b, err := webhook.ReplyBody(req, tgskema.ValidateOpt{})
	if err != nil {
		t.Fatalf("reply body: %v", err)
	}
	var got map[string]any
	if err := j.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["method"] != "answerCallbackQuery" || got["callback_query_id"] != "q" {
		t.Fatalf("body = %v", got)
	}
	if _, err := webhook.ReplyBody(new(telegram.AnswerCallbackQuery), tgskema.ValidateOpt{}); !tgskema.IsCode(err, tgskema.CodeRequired) {
		t.Fatalf("expected required issue, got %v", err)
	}
}
