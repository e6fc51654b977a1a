package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/classy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "views.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
currency = "EUR"

[[view]]
rule = "account_name_pattern"
pattern = "Assets:Broker"

[[view]]
rule = "account_open_metadata_pattern"
metadata-key = "portfolio"
pattern = "retirement"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", cfg.Currency)
	}
	if len(cfg.Views) != 2 {
		t.Fatalf("len(Views) = %d, want 2", len(cfg.Views))
	}

	rules, err := cfg.Rules()
	if err != nil {
		t.Fatal(err)
	}
	if rules[0].Kind != classy.AccountNamePattern || rules[0].Pattern != "Assets:Broker" {
		t.Errorf("rules[0] = %+v", rules[0])
	}
	if rules[1].Kind != classy.AccountOpenMetadataPattern || rules[1].MetadataKey != "portfolio" {
		t.Errorf("rules[1] = %+v", rules[1])
	}
}

func TestLoadConfigUnknownRule(t *testing.T) {
	path := writeConfig(t, `
[[view]]
rule = "by_color"
pattern = "blue"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Rules(); err == nil {
		t.Error("expected error for unknown rule kind")
	}
}

func TestLoadConfigMissingMetadataKey(t *testing.T) {
	path := writeConfig(t, `
[[view]]
rule = "account_open_metadata_pattern"
pattern = "retirement"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Rules(); err == nil {
		t.Error("expected error for missing metadata-key")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
