package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/classy"
	"github.com/etnz/classy/renderer"
	"github.com/google/subcommands"
)

// breakdownCmd holds the flags for the 'breakdown' subcommand.
type breakdownCmd struct {
	date     string
	currency string
	format   string
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "display portfolio breakdowns by asset class" }
func (*breakdownCmd) Usage() string {
	return `cpf breakdown [-d <date>] [-c <currency>] [-format <md|html|json>]

  Renders one breakdown report per configured portfolio view: market value,
  gains, and allocation percentages grouped by asset class and subclass.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", classy.Today().String(), "Date for the breakdown report")
	f.StringVar(&c.currency, "c", "", "Operating currency, overrides the configured one")
	f.StringVar(&c.format, "format", "md", "Output format: md, html or json")
}

func (c *breakdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := classy.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		logger.Error().Err(err).Msg("portfolio breakdown failed")
		return subcommands.ExitFailure
	}
	currency := c.currency
	if currency == "" {
		currency = cfg.Currency
	}
	if currency == "" {
		logger.Error().Str("config", *configFile).Msg("no operating currency configured, use -c or set currency in the config")
		return subcommands.ExitFailure
	}

	rules, err := cfg.Rules()
	if err != nil {
		logger.Error().Err(err).Msg("portfolio breakdown failed")
		return subcommands.ExitFailure
	}

	snapshot, err := DecodeSnapshotFile(on)
	if err != nil {
		logger.Error().Err(err).Msg("portfolio breakdown failed")
		return subcommands.ExitFailure
	}

	reports, err := classy.BreakdownReports(snapshot.Accounts(), snapshot.Commodities(), snapshot, rules, currency, on)
	if err != nil {
		logger.Error().Err(err).Msg("portfolio breakdown failed")
		return subcommands.ExitFailure
	}

	switch c.format {
	case "json":
		out, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			logger.Error().Err(err).Msg("encoding reports")
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
	case "html":
		for _, report := range reports {
			fmt.Println(renderer.RenderBreakdownHTML(renderer.NewBreakdown(report)))
		}
	case "md":
		for _, report := range reports {
			printMarkdown(renderer.RenderBreakdown(renderer.NewBreakdown(report)))
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
