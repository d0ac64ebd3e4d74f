package telegram

import (
	"sort"

	tgskema "github.com/reoring/tgskema"
)

var registry = map[string]tgskema.Factory{
	"User":                 newUser,
	"Chat":                 newChat,
	"Location":             newLocation,
	"MessageEntity":        newMessageEntity,
	"Message":              newMessage,
	"CallbackQuery":        newCallbackQuery,
	"Update":               newUpdate,
	"InlineKeyboardButton": newInlineKeyboardButton,
	"InlineKeyboardMarkup": newInlineKeyboardMarkup,
	"KeyboardButton":       newKeyboardButton,
	"ReplyKeyboardMarkup":  newReplyKeyboardMarkup,
	"ReplyKeyboardRemove":  newReplyKeyboardRemove,
	"ForceReply":           newForceReply,
	"EditMessageText":      func() tgskema.Model { return new(EditMessageText) },
	"SendMessage":          func() tgskema.Model { return new(SendMessage) },
	"AnswerCallbackQuery":  func() tgskema.Model { return new(AnswerCallbackQuery) },
}

// methods maps Bot API method names to request type names.
var methods = map[string]string{
	"editMessageText":     "EditMessageText",
	"sendMessage":         "SendMessage",
	"answerCallbackQuery": "AnswerCallbackQuery",
}

// Lookup returns the factory for a type name ("EditMessageText") or a Bot
// API method name ("editMessageText").
func Lookup(name string) (tgskema.Factory, bool) {
	if t, ok := methods[name]; ok {
		name = t
	}
	f, ok := registry[name]
	return f, ok
}

// Names lists the registered type names in lexical order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
