// Package webhook serves Telegram webhook deliveries. Each POST body is
// decoded, hydrated into a telegram.Update and validated before the handler
// sees it; the handler may answer with a request that Telegram executes on
// the bot's behalf.
package webhook

import (
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	j "github.com/goccy/go-json"

	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/payload"
	"github.com/reoring/tgskema/telegram"
)

// SecretHeader carries the secret_token given to setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// DefaultMaxBody bounds the accepted request body.
const DefaultMaxBody = 1 << 20

// HandlerFunc processes one update. A non-nil Request is written back as the
// webhook response.
type HandlerFunc func(ctx context.Context, upd *telegram.Update) (telegram.Request, error)

type ctxKeyUpdate struct{}

// ContextWithUpdate attaches upd to ctx.
func ContextWithUpdate(ctx context.Context, upd *telegram.Update) context.Context {
	return context.WithValue(ctx, ctxKeyUpdate{}, upd)
}

// UpdateFromContext returns the update attached by the handler.
func UpdateFromContext(ctx context.Context) (*telegram.Update, bool) {
	u, ok := ctx.Value(ctxKeyUpdate{}).(*telegram.Update)
	return u, ok && u != nil
}

// Option configures a Handler.
type Option func(*Handler)

// WithSecretToken rejects deliveries whose SecretHeader differs from token.
func WithSecretToken(token string) Option { return func(h *Handler) { h.secret = token } }

// WithLogger sets the logger used for rejected deliveries and handler errors.
func WithLogger(l *log.Logger) Option { return func(h *Handler) { h.logger = l } }

// WithMaxBody overrides DefaultMaxBody.
func WithMaxBody(n int64) Option { return func(h *Handler) { h.maxBody = n } }

// WithValidateOpt sets the options used to validate updates and replies.
func WithValidateOpt(opt tgskema.ValidateOpt) Option {
	return func(h *Handler) { h.validate = opt }
}

// Handler is an http.Handler for webhook deliveries.
type Handler struct {
	fn       HandlerFunc
	secret   string
	maxBody  int64
	validate tgskema.ValidateOpt
	logger   *log.Logger
}

// New returns a Handler calling fn for every valid update.
func New(fn HandlerFunc, opts ...Option) *Handler {
	h := &Handler{fn: fn, maxBody: DefaultMaxBody, logger: log.New(io.Discard)}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) secretMatches(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) == 1
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.secret != "" && !h.secretMatches(r.Header.Get(SecretHeader)) {
		h.logger.Warn("rejected delivery", "reason", "secret token mismatch", "remote", r.RemoteAddr)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	upd, err := h.decode(body)
	if err != nil {
		h.reject(w, err)
		return
	}

	ctx := ContextWithUpdate(r.Context(), upd)
	reply, err := h.fn(ctx, upd)
	if err != nil {
		h.logger.Error("handler failed", "update_id", upd.UpdateID(), "err", err)
		http.Error(w, "handler error", http.StatusInternalServerError)
		return
	}
	if reply == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	out, err := ReplyBody(reply, h.validate)
	if err != nil {
		// Telegram would drop an invalid method call; the update is still consumed.
		h.logger.Error("invalid reply", "update_id", upd.UpdateID(), "method", reply.Method(), "err", err)
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h *Handler) decode(body []byte) (*telegram.Update, error) {
	raw, err := payload.DecodeStrict(body)
	if err != nil {
		return nil, err
	}
	upd, err := tgskema.Hydrate[telegram.Update](raw)
	if err != nil {
		return nil, err
	}
	if err := tgskema.Validate(upd, h.validate); err != nil {
		return nil, err
	}
	return upd, nil
}

func (h *Handler) reject(w http.ResponseWriter, err error) {
	h.logger.Warn("rejected delivery", "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	b, merr := j.Marshal(ErrorPayload(err))
	if merr != nil {
		return
	}
	_, _ = w.Write(b)
}

// ReplyBody renders req as a webhook response: its wire map plus a "method"
// member naming the Bot API method.
func ReplyBody(req telegram.Request, opt tgskema.ValidateOpt) ([]byte, error) {
	wm, err := tgskema.ValidateAndSerialize(req, opt)
	if err != nil {
		return nil, err
	}
	body := wm.ToMap()
	body["method"] = req.Method()
	return j.Marshal(body)
}

// IssueBody is the JSON shape of one issue in an error response.
type IssueBody struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorPayload shapes err for JSON responses. Issues are listed one by one;
// other errors become a single parse_error entry.
func ErrorPayload(err error) map[string]any {
	iss, ok := tgskema.AsIssues(err)
	if !ok {
		iss = tgskema.Issues{{Path: "/", Code: tgskema.CodeParseError, Message: err.Error()}}
	}
	out := make([]IssueBody, 0, len(iss))
	for _, it := range iss {
		out = append(out, IssueBody{Path: it.Path, Code: it.Code, Message: it.Message})
	}
	return map[string]any{"issues": out}
}
