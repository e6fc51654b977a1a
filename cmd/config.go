package cmd

import (
	"fmt"
	"os"

	"github.com/etnz/classy"
	"github.com/pelletier/go-toml/v2"
)

// Config is the portfolio views configuration file.
type Config struct {
	// Currency is the operating currency reports are expressed in. It can be
	// overridden per invocation with the -c flag.
	Currency string `toml:"currency"`
	// Views are rendered in file order, one report each.
	Views []ViewConfig `toml:"view"`
}

// ViewConfig is one configured portfolio view.
type ViewConfig struct {
	Rule        string `toml:"rule"`
	Pattern     string `toml:"pattern"`
	MetadataKey string `toml:"metadata-key"`
}

// LoadConfig reads and parses the views configuration file.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return &cfg, nil
}

// Rules converts the configured views into engine selection rules.
func (c *Config) Rules() ([]classy.Rule, error) {
	rules := make([]classy.Rule, 0, len(c.Views))
	for i, v := range c.Views {
		kind, err := classy.ParseRuleKind(v.Rule)
		if err != nil {
			return nil, fmt.Errorf("view %d: %w", i+1, err)
		}
		if kind == classy.AccountOpenMetadataPattern && v.MetadataKey == "" {
			return nil, fmt.Errorf("view %d: rule %q requires metadata-key", i+1, v.Rule)
		}
		rules = append(rules, classy.Rule{
			Kind:        kind,
			Pattern:     v.Pattern,
			MetadataKey: v.MetadataKey,
		})
	}
	return rules, nil
}
