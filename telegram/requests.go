package telegram

import (
	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/rules"
)

// Request is an outbound Bot API call.
type Request interface {
	tgskema.Model
	// Method is the Bot API method name the wire map is sent to.
	Method() string
}

const exclusiveEditTarget = "You must specify one of these sets of fields: [inline_message_id] or [message_id AND chat_id]"

// EditMessageText edits the text of a sent message. The target is either an
// inline message or a chat and message id pair.
type EditMessageText struct{ tgskema.Object }

var editMessageTextSchema = tgskema.NewSchema("EditMessageText").
	Field("chat_id").Accepts(tgskema.Integer()).Accepts(tgskema.LenientString()).Passthrough().
	Field("message_id").Accepts(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("inline_message_id").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("text").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("parse_mode").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("disable_web_page_preview").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("reply_markup").Accepts(tgskema.ObjectOf(newInlineKeyboardMarkup)).Object(newInlineKeyboardMarkup).JSONText().
	Rule(tgskema.Exclusive(exclusiveEditTarget, []string{"inline_message_id"}, []string{"chat_id", "message_id"})).
	Rule(tgskema.Together("chat_id", "message_id")).
	MustBuild()

func (*EditMessageText) Schema() *tgskema.Schema { return editMessageTextSchema }
func (*EditMessageText) Method() string          { return "editMessageText" }

// ChatID returns the chat identifier as set: an int64 id or a string handle.
func (r *EditMessageText) ChatID() any             { return r.Get("chat_id") }
func (r *EditMessageText) MessageID() int64        { return num(r, "message_id") }
func (r *EditMessageText) InlineMessageID() string { return str(r, "inline_message_id") }
func (r *EditMessageText) Text() string            { return str(r, "text") }
func (r *EditMessageText) ParseMode() string       { return str(r, "parse_mode") }
func (r *EditMessageText) DisableWebPagePreview() bool {
	return flag(r, "disable_web_page_preview")
}

func (r *EditMessageText) ReplyMarkup() *InlineKeyboardMarkup {
	return tgskema.Nested[*InlineKeyboardMarkup](r, "reply_markup")
}

func (r *EditMessageText) SetChatID(id int64) *EditMessageText { r.Set("chat_id", id); return r }

// SetChatUsername targets a channel by its @username.
func (r *EditMessageText) SetChatUsername(name string) *EditMessageText {
	r.Set("chat_id", name)
	return r
}

func (r *EditMessageText) SetMessageID(id int64) *EditMessageText { r.Set("message_id", id); return r }

func (r *EditMessageText) SetInlineMessageID(id string) *EditMessageText {
	r.Set("inline_message_id", id)
	return r
}

func (r *EditMessageText) SetText(v string) *EditMessageText      { r.Set("text", v); return r }
func (r *EditMessageText) SetParseMode(v string) *EditMessageText { r.Set("parse_mode", v); return r }

func (r *EditMessageText) SetDisableWebPagePreview(v bool) *EditMessageText {
	r.Set("disable_web_page_preview", v)
	return r
}

func (r *EditMessageText) SetReplyMarkup(k *InlineKeyboardMarkup) *EditMessageText {
	r.Set("reply_markup", k)
	return r
}

// SendMessage sends a text message. reply_markup takes any keyboard type.
type SendMessage struct{ tgskema.Object }

var sendMessageSchema = tgskema.NewSchema("SendMessage").
	Field("chat_id").Requires(tgskema.Integer()).Requires(tgskema.LenientString()).Passthrough().
	Field("text").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("parse_mode").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("disable_web_page_preview").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("disable_notification").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("reply_to_message_id").Accepts(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("reply_markup").
	Accepts(tgskema.ObjectOf(newInlineKeyboardMarkup)).
	Accepts(tgskema.ObjectOf(newReplyKeyboardMarkup)).
	Accepts(tgskema.ObjectOf(newReplyKeyboardRemove)).
	Accepts(tgskema.ObjectOf(newForceReply)).
	ObjectBy(pickReplyMarkup).
	JSONText().
	MustBuild()

func (*SendMessage) Schema() *tgskema.Schema { return sendMessageSchema }
func (*SendMessage) Method() string          { return "sendMessage" }

func (r *SendMessage) ChatID() any             { return r.Get("chat_id") }
func (r *SendMessage) Text() string            { return str(r, "text") }
func (r *SendMessage) ParseMode() string       { return str(r, "parse_mode") }
func (r *SendMessage) ReplyToMessageID() int64 { return num(r, "reply_to_message_id") }

func (r *SendMessage) ReplyMarkup() tgskema.Model {
	return tgskema.Nested[tgskema.Model](r, "reply_markup")
}

func (r *SendMessage) SetChatID(id int64) *SendMessage          { r.Set("chat_id", id); return r }
func (r *SendMessage) SetChatUsername(name string) *SendMessage { r.Set("chat_id", name); return r }
func (r *SendMessage) SetText(v string) *SendMessage            { r.Set("text", v); return r }
func (r *SendMessage) SetParseMode(v string) *SendMessage       { r.Set("parse_mode", v); return r }

func (r *SendMessage) SetDisableWebPagePreview(v bool) *SendMessage {
	r.Set("disable_web_page_preview", v)
	return r
}

func (r *SendMessage) SetDisableNotification(v bool) *SendMessage {
	r.Set("disable_notification", v)
	return r
}

func (r *SendMessage) SetReplyToMessageID(id int64) *SendMessage {
	r.Set("reply_to_message_id", id)
	return r
}

// Keyboard is implemented by the reply_markup types SendMessage accepts.
type Keyboard interface {
	tgskema.Model
	keyboard()
}

func (*InlineKeyboardMarkup) keyboard() {}
func (*ReplyKeyboardMarkup) keyboard()  {}
func (*ReplyKeyboardRemove) keyboard()  {}
func (*ForceReply) keyboard()           {}

func (r *SendMessage) SetReplyMarkup(k Keyboard) *SendMessage {
	r.Set("reply_markup", k)
	return r
}

// AnswerCallbackQuery acknowledges a callback query, optionally with a
// notification or alert. An alert needs a text to show.
type AnswerCallbackQuery struct{ tgskema.Object }

var answerCallbackQuerySchema = tgskema.NewSchema("AnswerCallbackQuery").
	Field("callback_query_id").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("text").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("show_alert").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("url").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("cache_time").Accepts(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Rule(rules.RequiredIf(rules.If("show_alert", rules.Eq, true), "text")).
	MustBuild()

func (*AnswerCallbackQuery) Schema() *tgskema.Schema { return answerCallbackQuerySchema }
func (*AnswerCallbackQuery) Method() string          { return "answerCallbackQuery" }

func (r *AnswerCallbackQuery) CallbackQueryID() string { return str(r, "callback_query_id") }
func (r *AnswerCallbackQuery) Text() string            { return str(r, "text") }
func (r *AnswerCallbackQuery) ShowAlert() bool         { return flag(r, "show_alert") }
func (r *AnswerCallbackQuery) CacheTime() int64        { return num(r, "cache_time") }

func (r *AnswerCallbackQuery) SetCallbackQueryID(id string) *AnswerCallbackQuery {
	r.Set("callback_query_id", id)
	return r
}

func (r *AnswerCallbackQuery) SetText(v string) *AnswerCallbackQuery { r.Set("text", v); return r }
func (r *AnswerCallbackQuery) SetURL(v string) *AnswerCallbackQuery  { r.Set("url", v); return r }

func (r *AnswerCallbackQuery) SetShowAlert(v bool) *AnswerCallbackQuery {
	r.Set("show_alert", v)
	return r
}

func (r *AnswerCallbackQuery) SetCacheTime(seconds int64) *AnswerCallbackQuery {
	r.Set("cache_time", seconds)
	return r
}
