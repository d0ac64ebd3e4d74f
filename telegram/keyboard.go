package telegram

import (
	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/rules"
)

// InlineKeyboardButton is one button of an inline keyboard. At most one
// action member may be set. Buttons with members this package does not
// declare (login_url, pay, ...) arrive with none of them.
type InlineKeyboardButton struct{ tgskema.Object }

func newInlineKeyboardButton() tgskema.Model { return new(InlineKeyboardButton) }

var inlineKeyboardButtonSchema = tgskema.NewSchema("InlineKeyboardButton").
	Field("text").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("url").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("callback_data").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("switch_inline_query").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("switch_inline_query_current_chat").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Rule(rules.AtMostOne("url", "callback_data", "switch_inline_query", "switch_inline_query_current_chat")).
	MustBuild()

func (*InlineKeyboardButton) Schema() *tgskema.Schema { return inlineKeyboardButtonSchema }

// NewInlineButton returns a button carrying callback data.
func NewInlineButton(text, data string) *InlineKeyboardButton {
	return new(InlineKeyboardButton).SetText(text).SetCallbackData(data)
}

func (b *InlineKeyboardButton) Text() string         { return str(b, "text") }
func (b *InlineKeyboardButton) URL() string          { return str(b, "url") }
func (b *InlineKeyboardButton) CallbackData() string { return str(b, "callback_data") }

func (b *InlineKeyboardButton) SetText(v string) *InlineKeyboardButton { b.Set("text", v); return b }
func (b *InlineKeyboardButton) SetURL(v string) *InlineKeyboardButton  { b.Set("url", v); return b }

func (b *InlineKeyboardButton) SetCallbackData(v string) *InlineKeyboardButton {
	b.Set("callback_data", v)
	return b
}

func (b *InlineKeyboardButton) SetSwitchInlineQuery(v string) *InlineKeyboardButton {
	b.Set("switch_inline_query", v)
	return b
}

// InlineKeyboardMarkup is a keyboard attached to a message.
type InlineKeyboardMarkup struct{ tgskema.Object }

func newInlineKeyboardMarkup() tgskema.Model { return new(InlineKeyboardMarkup) }

var inlineKeyboardMarkupSchema = tgskema.NewSchema("InlineKeyboardMarkup").
	Field("inline_keyboard").
	Requires(tgskema.ListOf(tgskema.ListOf(tgskema.ObjectOf(newInlineKeyboardButton)))).
	Grid(newInlineKeyboardButton).
	MustBuild()

func (*InlineKeyboardMarkup) Schema() *tgskema.Schema { return inlineKeyboardMarkupSchema }

// NewInlineKeyboard builds a markup from button rows.
func NewInlineKeyboard(rows ...[]*InlineKeyboardButton) *InlineKeyboardMarkup {
	k := new(InlineKeyboardMarkup)
	k.Set("inline_keyboard", tgskema.AsGrid(rows))
	return k
}

func (k *InlineKeyboardMarkup) Rows() [][]*InlineKeyboardButton {
	return tgskema.Grid[*InlineKeyboardButton](k, "inline_keyboard")
}

// AddRow appends a row of buttons.
func (k *InlineKeyboardMarkup) AddRow(buttons ...*InlineKeyboardButton) *InlineKeyboardMarkup {
	rows, _ := k.Get("inline_keyboard").([][]tgskema.Model)
	row := tgskema.AsModels(buttons)
	if row == nil {
		row = []tgskema.Model{}
	}
	k.Set("inline_keyboard", append(rows, row))
	return k
}

// KeyboardButton is one button of a custom reply keyboard.
type KeyboardButton struct{ tgskema.Object }

func newKeyboardButton() tgskema.Model { return new(KeyboardButton) }

var keyboardButtonSchema = tgskema.NewSchema("KeyboardButton").
	Field("text").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("request_contact").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("request_location").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	MustBuild()

func (*KeyboardButton) Schema() *tgskema.Schema { return keyboardButtonSchema }

func (b *KeyboardButton) Text() string { return str(b, "text") }

func (b *KeyboardButton) SetText(v string) *KeyboardButton { b.Set("text", v); return b }

func (b *KeyboardButton) SetRequestContact(v bool) *KeyboardButton {
	b.Set("request_contact", v)
	return b
}

func (b *KeyboardButton) SetRequestLocation(v bool) *KeyboardButton {
	b.Set("request_location", v)
	return b
}

// ReplyKeyboardMarkup replaces the user's keyboard with custom buttons.
type ReplyKeyboardMarkup struct{ tgskema.Object }

func newReplyKeyboardMarkup() tgskema.Model { return new(ReplyKeyboardMarkup) }

var replyKeyboardMarkupSchema = tgskema.NewSchema("ReplyKeyboardMarkup").
	Field("keyboard").Requires(tgskema.ListOf(tgskema.ListOf(tgskema.ObjectOf(newKeyboardButton)))).Grid(newKeyboardButton).
	Field("resize_keyboard").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("one_time_keyboard").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("selective").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	MustBuild()

func (*ReplyKeyboardMarkup) Schema() *tgskema.Schema { return replyKeyboardMarkupSchema }

func NewReplyKeyboard(rows ...[]*KeyboardButton) *ReplyKeyboardMarkup {
	k := new(ReplyKeyboardMarkup)
	k.Set("keyboard", tgskema.AsGrid(rows))
	return k
}

func (k *ReplyKeyboardMarkup) Rows() [][]*KeyboardButton {
	return tgskema.Grid[*KeyboardButton](k, "keyboard")
}

func (k *ReplyKeyboardMarkup) SetResizeKeyboard(v bool) *ReplyKeyboardMarkup {
	k.Set("resize_keyboard", v)
	return k
}

func (k *ReplyKeyboardMarkup) SetOneTimeKeyboard(v bool) *ReplyKeyboardMarkup {
	k.Set("one_time_keyboard", v)
	return k
}

func (k *ReplyKeyboardMarkup) SetSelective(v bool) *ReplyKeyboardMarkup {
	k.Set("selective", v)
	return k
}

// ReplyKeyboardRemove asks clients to hide the custom keyboard.
type ReplyKeyboardRemove struct{ tgskema.Object }

func newReplyKeyboardRemove() tgskema.Model { return new(ReplyKeyboardRemove) }

var replyKeyboardRemoveSchema = tgskema.NewSchema("ReplyKeyboardRemove").
	Field("remove_keyboard").Requires(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("selective").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	MustBuild()

func (*ReplyKeyboardRemove) Schema() *tgskema.Schema { return replyKeyboardRemoveSchema }

// NewReplyKeyboardRemove returns a removal request with remove_keyboard set.
func NewReplyKeyboardRemove() *ReplyKeyboardRemove {
	r := new(ReplyKeyboardRemove)
	r.Set("remove_keyboard", true)
	return r
}

func (r *ReplyKeyboardRemove) SetSelective(v bool) *ReplyKeyboardRemove {
	r.Set("selective", v)
	return r
}

// ForceReply makes clients display a reply interface.
type ForceReply struct{ tgskema.Object }

func newForceReply() tgskema.Model { return new(ForceReply) }

var forceReplySchema = tgskema.NewSchema("ForceReply").
	Field("force_reply").Requires(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("selective").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	MustBuild()

func (*ForceReply) Schema() *tgskema.Schema { return forceReplySchema }

func NewForceReply() *ForceReply {
	f := new(ForceReply)
	f.Set("force_reply", true)
	return f
}

func (f *ForceReply) SetSelective(v bool) *ForceReply { f.Set("selective", v); return f }

// pickReplyMarkup selects the keyboard type of a raw reply_markup object by
// its distinguishing member.
func pickReplyMarkup(raw map[string]any) tgskema.Factory {
	switch {
	case raw["inline_keyboard"] != nil:
		return newInlineKeyboardMarkup
	case raw["keyboard"] != nil:
		return newReplyKeyboardMarkup
	case raw["remove_keyboard"] != nil:
		return newReplyKeyboardRemove
	case raw["force_reply"] != nil:
		return newForceReply
	}
	return nil
}
