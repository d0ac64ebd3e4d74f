// Package tgskema is a typed modelling layer for the Telegram Bot API.
//
// It covers both directions of the wire:
//
//   - Hydration: a decoded JSON payload (maps, slices, scalars) becomes a typed,
//     read-only object graph driven by each model's Hydration Descriptor Table.
//   - Construction: a model built with fluent setters is validated against its
//     Field Descriptor Table and cross-field rules, then serialized into a flat,
//     null-free WireMap for the transport.
//
// Design policy:
//
//   - Schemas are declarative values built once with NewSchema(...).MustBuild()
//     and shared read-only by every instance of a model type.
//   - Failures are reported as Issues (JSON Pointer path, code, params); no
//     partial model or wire map is returned alongside an error.
//   - The package performs no I/O. Transports live elsewhere; see payload/ for
//     decoding API responses and cmd/tgskema for the CLI.
//
// Typical usage:
//
//	req := new(telegram.EditMessageText).
//		SetInlineMessageID("abc").
//		SetText("updated")
//	wire, err := tgskema.ValidateAndSerialize(req)
//
//	cq, err := tgskema.HydrateJSON[telegram.CallbackQuery](body)
package tgskema
