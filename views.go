package classy

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/etnz/classy/rowspan"
)

// RuleKind identifies how a portfolio view selects its accounts.
type RuleKind string

const (
	// AccountNamePattern selects accounts whose name matches a regex pattern.
	AccountNamePattern RuleKind = "account_name_pattern"
	// AccountOpenMetadataPattern selects accounts carrying an open-metadata
	// value matching a regex pattern under a given key.
	AccountOpenMetadataPattern RuleKind = "account_open_metadata_pattern"
)

// ParseRuleKind parses a string into a RuleKind. An unknown kind is a
// configuration error, fatal to the request using it.
func ParseRuleKind(s string) (RuleKind, error) {
	switch RuleKind(s) {
	case AccountNamePattern:
		return AccountNamePattern, nil
	case AccountOpenMetadataPattern:
		return AccountOpenMetadataPattern, nil
	default:
		return "", fmt.Errorf("unknown portfolio view rule %q", s)
	}
}

// Rule is one configured portfolio view selection.
type Rule struct {
	Kind    RuleKind
	Pattern string
	// MetadataKey is only used by AccountOpenMetadataPattern.
	MetadataKey string
}

// Report is the result of one portfolio view: a flattened, rowspan-annotated
// breakdown table plus the per-account warnings collected while building it.
type Report struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Table    rowspan.Row `json:"table"`
	Errors   []string    `json:"errors,omitempty"`
}

// BreakdownReports builds one report per rule, preserving rule order. Views
// are independent: a per-account warning stays inside its view's Errors.
//
// A configuration error (unknown rule kind, invalid pattern, schema mismatch)
// is fatal to the whole request: it returns (nil, error) and the caller is
// expected to log the diagnostic and render nothing.
func BreakdownReports(accounts []AccountNode, meta CommodityMeta, resolver ValueResolver, rules []Rule, currency string, on Date) ([]Report, error) {
	reports := make([]Report, 0, len(rules))
	for _, rule := range rules {
		report, err := breakdownReport(accounts, meta, resolver, rule, currency, on)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func breakdownReport(accounts []AccountNode, meta CommodityMeta, resolver ValueResolver, rule Rule, currency string, on Date) (Report, error) {
	var selected []AccountNode
	var subtitle string

	switch rule.Kind {
	case AccountNamePattern:
		re, err := compilePattern(rule.Pattern)
		if err != nil {
			return Report{}, fmt.Errorf("invalid account name pattern %q: %w", rule.Pattern, err)
		}
		subtitle = "Account names matching: '" + rule.Pattern + "'"
		selected = selectByName(accounts, re)
	case AccountOpenMetadataPattern:
		re, err := compilePattern(rule.Pattern)
		if err != nil {
			return Report{}, fmt.Errorf("invalid account metadata pattern %q: %w", rule.Pattern, err)
		}
		subtitle = "Accounts with '" + rule.MetadataKey + "' metadata matching: '" + rule.Pattern + "'"
		selected = selectByMetadata(accounts, rule.MetadataKey, re)
	default:
		return Report{}, fmt.Errorf("unknown portfolio view rule %q", rule.Kind)
	}

	tree, warnings := NewPortfolioTree(selected, meta, resolver, currency, on)
	tree.Allocate()
	table, err := tree.FlattenTable()
	if err != nil {
		return Report{}, err
	}
	return Report{
		Title:    capitalize(rule.Pattern),
		Subtitle: subtitle,
		Table:    table,
		Errors:   warnings,
	}, nil
}

// compilePattern compiles a selection pattern, anchored at the start of the
// matched value.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + pattern + ")")
}

func selectByName(accounts []AccountNode, re *regexp.Regexp) []AccountNode {
	var selected []AccountNode
	seen := make(map[string]struct{})
	for _, a := range accounts {
		if !re.MatchString(a.Name) {
			continue
		}
		if _, dup := seen[a.Name]; dup {
			continue
		}
		seen[a.Name] = struct{}{}
		selected = append(selected, a)
	}
	return selected
}

func selectByMetadata(accounts []AccountNode, key string, re *regexp.Regexp) []AccountNode {
	var selected []AccountNode
	for _, a := range accounts {
		value, ok := a.OpenMeta[key]
		if ok && re.MatchString(value) {
			selected = append(selected, a)
		}
	}
	return selected
}

// capitalize upper-cases the first rune and lower-cases the rest, the way
// view titles are derived from their pattern.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	return strings.ToUpper(string(r)) + lower[size:]
}
