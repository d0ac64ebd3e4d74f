package telegram

import (
	"time"

	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/codec"
)

// MessageEntity marks a special span of message text (mention, link, ...).
type MessageEntity struct{ tgskema.Object }

func newMessageEntity() tgskema.Model { return new(MessageEntity) }

var messageEntitySchema = tgskema.NewSchema("MessageEntity").
	Field("type").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("offset").Requires(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("length").Requires(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("url").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("user").Accepts(tgskema.ObjectOf(newUser)).Object(newUser).
	MustBuild()

func (*MessageEntity) Schema() *tgskema.Schema { return messageEntitySchema }

func (e *MessageEntity) Type() string  { return str(e, "type") }
func (e *MessageEntity) Offset() int64 { return num(e, "offset") }
func (e *MessageEntity) Length() int64 { return num(e, "length") }
func (e *MessageEntity) URL() string   { return str(e, "url") }
func (e *MessageEntity) User() *User   { return tgskema.Nested[*User](e, "user") }

func (e *MessageEntity) SetType(v string) *MessageEntity  { e.Set("type", v); return e }
func (e *MessageEntity) SetOffset(v int64) *MessageEntity { e.Set("offset", v); return e }
func (e *MessageEntity) SetLength(v int64) *MessageEntity { e.Set("length", v); return e }
func (e *MessageEntity) SetURL(v string) *MessageEntity   { e.Set("url", v); return e }

// Message is a chat message. Only the members this library works with are
// declared; others in the payload are ignored.
type Message struct{ tgskema.Object }

func newMessage() tgskema.Model { return new(Message) }

var messageSchema = tgskema.NewSchema("Message").
	Field("message_id").Requires(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("from").Accepts(tgskema.ObjectOf(newUser)).Object(newUser).
	Field("date").Requires(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("chat").Requires(tgskema.ObjectOf(newChat)).Object(newChat).
	Field("reply_to_message").Accepts(tgskema.ObjectOf(newMessage)).Object(newMessage).
	Field("edit_date").Accepts(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("text").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("entities").Accepts(tgskema.ListOf(tgskema.ObjectOf(newMessageEntity))).Objects(newMessageEntity).
	Field("location").Accepts(tgskema.ObjectOf(newLocation)).Object(newLocation).
	Field("reply_markup").Accepts(tgskema.ObjectOf(newInlineKeyboardMarkup)).Object(newInlineKeyboardMarkup).
	MustBuild()

func (*Message) Schema() *tgskema.Schema { return messageSchema }

func (m *Message) MessageID() int64 { return num(m, "message_id") }
func (m *Message) From() *User      { return tgskema.Nested[*User](m, "from") }
func (m *Message) Date() int64      { return num(m, "date") }
func (m *Message) Chat() *Chat      { return tgskema.Nested[*Chat](m, "chat") }
func (m *Message) EditDate() int64  { return num(m, "edit_date") }
func (m *Message) Text() string     { return str(m, "text") }
func (m *Message) Location() *Location {
	return tgskema.Nested[*Location](m, "location")
}

// Time returns the send date; EditTime the last edit date, zero if never edited.
func (m *Message) Time() time.Time     { return codec.DecodeUnix(m.Date()) }
func (m *Message) EditTime() time.Time { return codec.DecodeUnix(m.EditDate()) }

func (m *Message) ReplyToMessage() *Message {
	return tgskema.Nested[*Message](m, "reply_to_message")
}

// Entities returns the text entities. It is nil when the payload had none
// and empty when it carried an empty list.
func (m *Message) Entities() []*MessageEntity {
	if !m.Has("entities") {
		return nil
	}
	return tgskema.List[*MessageEntity](m, "entities")
}

func (m *Message) ReplyMarkup() *InlineKeyboardMarkup {
	return tgskema.Nested[*InlineKeyboardMarkup](m, "reply_markup")
}

func (m *Message) SetMessageID(v int64) *Message { m.Set("message_id", v); return m }
func (m *Message) SetFrom(u *User) *Message      { m.Set("from", u); return m }
func (m *Message) SetDate(v int64) *Message      { m.Set("date", v); return m }
func (m *Message) SetChat(c *Chat) *Message      { m.Set("chat", c); return m }
func (m *Message) SetText(v string) *Message     { m.Set("text", v); return m }

func (m *Message) SetTime(t time.Time) *Message { return m.SetDate(codec.EncodeUnix(t)) }

func (m *Message) SetReplyToMessage(r *Message) *Message {
	m.Set("reply_to_message", r)
	return m
}

func (m *Message) SetEntities(es ...*MessageEntity) *Message {
	m.Set("entities", tgskema.AsModels(es))
	return m
}

func (m *Message) SetReplyMarkup(k *InlineKeyboardMarkup) *Message {
	m.Set("reply_markup", k)
	return m
}
