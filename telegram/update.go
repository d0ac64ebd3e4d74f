package telegram

import tgskema "github.com/reoring/tgskema"

// CallbackQuery is an incoming press of an inline keyboard button.
type CallbackQuery struct{ tgskema.Object }

func newCallbackQuery() tgskema.Model { return new(CallbackQuery) }

var callbackQuerySchema = tgskema.NewSchema("CallbackQuery").
	Field("id").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("from").Requires(tgskema.ObjectOf(newUser)).Object(newUser).
	Field("message").Accepts(tgskema.ObjectOf(newMessage)).Object(newMessage).
	Field("inline_message_id").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("chat_instance").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("data").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	MustBuild()

func (*CallbackQuery) Schema() *tgskema.Schema { return callbackQuerySchema }

func (q *CallbackQuery) ID() string              { return str(q, "id") }
func (q *CallbackQuery) From() *User             { return tgskema.Nested[*User](q, "from") }
func (q *CallbackQuery) Message() *Message       { return tgskema.Nested[*Message](q, "message") }
func (q *CallbackQuery) InlineMessageID() string { return str(q, "inline_message_id") }
func (q *CallbackQuery) ChatInstance() string    { return str(q, "chat_instance") }
func (q *CallbackQuery) Data() string            { return str(q, "data") }

// Answer starts an AnswerCallbackQuery request for q.
func (q *CallbackQuery) Answer() *AnswerCallbackQuery {
	return new(AnswerCallbackQuery).SetCallbackQueryID(q.ID())
}

// EditText starts an EditMessageText request targeting the message the
// pressed keyboard belongs to.
func (q *CallbackQuery) EditText(text string) *EditMessageText {
	req := new(EditMessageText).SetText(text)
	if id := q.InlineMessageID(); id != "" {
		return req.SetInlineMessageID(id)
	}
	if msg := q.Message(); msg != nil {
		if chat := msg.Chat(); chat != nil {
			req.SetChatID(chat.ID())
		}
		req.SetMessageID(msg.MessageID())
	}
	return req
}

// Update is one incoming event as delivered by getUpdates or a webhook.
type Update struct{ tgskema.Object }

func newUpdate() tgskema.Model { return new(Update) }

var updateSchema = tgskema.NewSchema("Update").
	Field("update_id").Requires(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("message").Accepts(tgskema.ObjectOf(newMessage)).Object(newMessage).
	Field("edited_message").Accepts(tgskema.ObjectOf(newMessage)).Object(newMessage).
	Field("callback_query").Accepts(tgskema.ObjectOf(newCallbackQuery)).Object(newCallbackQuery).
	MustBuild()

func (*Update) Schema() *tgskema.Schema { return updateSchema }

func (u *Update) UpdateID() int64         { return num(u, "update_id") }
func (u *Update) Message() *Message       { return tgskema.Nested[*Message](u, "message") }
func (u *Update) EditedMessage() *Message { return tgskema.Nested[*Message](u, "edited_message") }

func (u *Update) CallbackQuery() *CallbackQuery {
	return tgskema.Nested[*CallbackQuery](u, "callback_query")
}

// HydrateUpdates builds the result of getUpdates, an array of updates.
func HydrateUpdates(raw any) ([]*Update, error) {
	elems, ok := raw.([]any)
	if !ok {
		return nil, tgskema.Issues{tgskema.IssueAt(tgskema.Root(), tgskema.CodeHydration,
			"expected an array of updates", map[string]any{tgskema.ParamGot: tgskema.KindOf(raw)})}
	}
	out := make([]*Update, 0, len(elems))
	for i, e := range elems {
		u, err := tgskema.Hydrate[Update](e)
		if err != nil {
			iss, ok := tgskema.AsIssues(err)
			if !ok {
				return nil, err
			}
			for j := range iss {
				iss[j].Path = tgskema.Root().Index(i).Pointer() + trimRoot(iss[j].Path)
			}
			return nil, iss
		}
		out = append(out, u)
	}
	return out, nil
}

func trimRoot(p string) string {
	if p == "/" {
		return ""
	}
	return p
}
