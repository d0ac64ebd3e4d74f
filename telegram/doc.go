// Package telegram declares Bot API types on top of the tgskema engine.
//
// Inbound types (Update, Message, CallbackQuery and the values they carry)
// are built with tgskema.Hydrate from decoded payloads:
//
//	upd, err := tgskema.HydrateJSON[telegram.Update](body)
//	if err != nil { ... }
//	if cq := upd.CallbackQuery(); cq != nil {
//		fmt.Println(cq.Data())
//	}
//
// Outbound requests are built with fluent setters and turned into wire maps:
//
//	req := new(telegram.EditMessageText).
//		SetChatID(42).
//		SetMessageID(7).
//		SetText("updated")
//	wire, err := tgskema.ValidateAndSerialize(req)
//
// Keyboard types are shared by both directions.
package telegram
