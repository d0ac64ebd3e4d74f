package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reoring/tgskema/internal/config"
)

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tgskema.yaml")
	body := "language: ja\nindent: 4\ncollect_all: true\nschema_file: extra.yaml\nwebhook_secret: s3cret\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := config.Config{
		Language: "ja", Indent: 4, CollectAll: true, SchemaFile: "extra.yaml",
		ListenAddr: ":8080", WebhookSecret: "s3cret",
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TGSKEMA_STRICT_JSON", "true")
	t.Setenv("TGSKEMA_LANGUAGE", "fr")
	t.Setenv("TGSKEMA_LISTEN_ADDR", "127.0.0.1:9000")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.StrictJSON {
		t.Fatalf("env override not applied")
	}
	if cfg.Language != "en" {
		t.Fatalf("unsupported language should fall back to en, got %q", cfg.Language)
	}
	if cfg.Indent != 2 {
		t.Fatalf("default indent = %d", cfg.Indent)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
}
