package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reoring/tgskema/telegram"
	"github.com/reoring/tgskema/webhook"
)

const shutdownTimeout = 5 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var (
		addr, secret, path string
		answer             bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive webhook deliveries and log the validated updates",
		Long: `Serve listens for Telegram webhook deliveries on PATH. Every body is
hydrated into an Update and validated; rejected deliveries are answered with
the issue list. With --answer-callbacks each callback query is acknowledged
in the webhook response.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.ListenAddr
			}
			if secret == "" {
				secret = a.cfg.WebhookSecret
			}
			mux := http.NewServeMux()
			mux.Handle(path, a.webhookHandler(secret, answer))
			srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			a.logger.Info("listening", "addr", addr, "path", path, "secret", secret != "")

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}
			a.logger.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&secret, "secret", "", "expected secret token header")
	cmd.Flags().StringVar(&path, "path", "/", "URL path of the webhook")
	cmd.Flags().BoolVar(&answer, "answer-callbacks", false, "acknowledge callback queries in the response")
	return cmd
}

func (a *app) webhookHandler(secret string, answer bool) http.Handler {
	return webhook.New(func(_ context.Context, upd *telegram.Update) (telegram.Request, error) {
		kv := []any{"update_id", upd.UpdateID(), "kind", updateKind(upd)}
		if q := upd.CallbackQuery(); q != nil {
			kv = append(kv, "data", q.Data())
			if answer {
				a.logger.Info("update", kv...)
				return q.Answer(), nil
			}
		}
		a.logger.Info("update", kv...)
		return nil, nil
	},
		webhook.WithSecretToken(secret),
		webhook.WithLogger(a.logger),
		webhook.WithValidateOpt(a.validateOpt()),
	)
}

func updateKind(upd *telegram.Update) string {
	switch {
	case upd.Message() != nil:
		return "message"
	case upd.EditedMessage() != nil:
		return "edited_message"
	case upd.CallbackQuery() != nil:
		return "callback_query"
	}
	return "unknown"
}
