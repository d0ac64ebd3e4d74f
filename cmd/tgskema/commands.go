package main

import (
	"fmt"
	"io"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/payload"
	"github.com/reoring/tgskema/schemafile"
)

func (a *app) hydrateCmd() *cobra.Command {
	var envelope, validate bool
	cmd := &cobra.Command{
		Use:   "hydrate TYPE FILE",
		Short: "Hydrate a JSON payload into a model and print it",
		Long: `Hydrate decodes FILE ("-" for stdin) and builds a TYPE model from it.

With --envelope the file is a Bot API response ({"ok":...,"result":...});
a failed response is reported as an error. A result array hydrates every
element.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newFn, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			raw, err := a.decode(data)
			if err != nil {
				return err
			}
			if envelope {
				res, err := payload.UnwrapValue(raw)
				if err != nil {
					return err
				}
				if res.Description != "" {
					a.logger.Info("server description", "description", res.Description)
				}
				raw = res.Value
			}
			var out any
			if elems, ok := raw.([]any); ok {
				list := make([]any, 0, len(elems))
				for i, e := range elems {
					w, err := a.hydrateOne(newFn, e, validate)
					if err != nil {
						a.logger.Error("element failed", "index", i)
						return a.reportIssues(err)
					}
					list = append(list, w)
				}
				out = list
				a.logger.Debug("hydrated list", "type", args[0], "count", len(list))
			} else {
				w, err := a.hydrateOne(newFn, raw, validate)
				if err != nil {
					return a.reportIssues(err)
				}
				out = w
				a.logger.Debug("hydrated", "type", args[0], "fields", w.Len())
			}
			return a.writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&envelope, "envelope", false, "input is a Bot API response envelope")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the hydrated model")
	return cmd
}

func (a *app) hydrateOne(newFn tgskema.Factory, raw any, validate bool) (tgskema.WireMap, error) {
	m := newFn()
	if err := tgskema.HydrateInto(raw, m); err != nil {
		return tgskema.WireMap{}, err
	}
	if validate {
		if err := tgskema.Validate(m, a.validateOpt()); err != nil {
			return tgskema.WireMap{}, err
		}
	}
	return tgskema.Serialize(m)
}

func (a *app) buildCmd() *cobra.Command {
	var form bool
	cmd := &cobra.Command{
		Use:   "build METHOD FILE",
		Short: "Build a request from a YAML, JSON or TOML parameter file",
		Long: `Build assigns the parameters in FILE ("-" for stdin) to a METHOD request,
validates it and prints the wire map. Nested values such as reply_markup
are written as plain mappings. Files ending in .toml are read as TOML;
TOML datetimes become unix timestamps.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newFn, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			params, err := schemafile.DecodeParamsFile(args[1], data)
			if err != nil {
				return err
			}
			m := newFn()
			if err := tgskema.Assign(m, params); err != nil {
				return a.reportIssues(err)
			}
			w, err := tgskema.ValidateAndSerialize(m, a.validateOpt())
			if err != nil {
				return a.reportIssues(err)
			}
			a.logger.Info("request built", "type", m.Schema().Name(), "fields", w.Len())
			if form {
				return writeForm(cmd.OutOrStdout(), w)
			}
			return a.writeJSON(cmd.OutOrStdout(), w)
		},
	}
	cmd.Flags().BoolVar(&form, "form", false, "print form-encoded key=value lines")
	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema TYPE",
		Short: "Print the JSON Schema of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newFn, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			return a.writeJSON(cmd.OutOrStdout(), newFn().Schema().JSONSchema())
		},
	}
}

func (a *app) typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List known types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, n := range a.typeNames() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func (a *app) validateOpt() tgskema.ValidateOpt {
	return tgskema.ValidateOpt{CollectAll: a.cfg.CollectAll}
}

func (a *app) decode(data []byte) (any, error) {
	if a.cfg.StrictJSON {
		return payload.DecodeStrict(data)
	}
	return payload.Decode(data)
}

func (a *app) writeJSON(w io.Writer, v any) error {
	var (
		b   []byte
		err error
	)
	if a.cfg.Indent > 0 {
		b, err = j.MarshalIndent(v, "", strings.Repeat(" ", a.cfg.Indent))
	} else {
		b, err = j.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeForm(w io.Writer, wm tgskema.WireMap) error {
	vals, err := wm.Form()
	if err != nil {
		return err
	}
	for _, k := range wm.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, vals[k]); err != nil {
			return err
		}
	}
	return nil
}
