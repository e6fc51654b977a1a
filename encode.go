package classy

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Line kinds of the snapshot JSONL format.
const (
	kindAccount   = "account"
	kindCommodity = "commodity"
	kindPrice     = "price"
)

// positionLine is a specialized struct for decoding one balance position.
type positionLine struct {
	Units    decimal.Decimal `json:"units"`
	Currency string          `json:"currency"`
	Cost     *costLine       `json:"cost,omitempty"`
}

type costLine struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (p positionLine) Position() Position {
	pos := Position{Units: p.Units, Currency: p.Currency}
	if p.Cost != nil {
		pos.Cost = &Cost{Amount: p.Cost.Amount, Currency: p.Cost.Currency}
	}
	return pos
}

// DecodeSnapshot decodes a snapshot from a stream of JSONL data: one JSON
// object per line, discriminated by its "kind" field (account, commodity, or
// price). The returned snapshot is dated on.
func DecodeSnapshot(r io.Reader, on Date) (*Snapshot, error) {
	snapshot := NewSnapshot(on)
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify kind: %w", line, err)
		}

		switch identifier.Kind {
		case kindAccount:
			var temp struct {
				Name    string            `json:"name"`
				Meta    map[string]string `json:"meta,omitempty"`
				Balance []positionLine    `json:"balance"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("line %d: invalid account: %w", line, err)
			}
			account := AccountNode{Name: temp.Name, OpenMeta: temp.Meta}
			for _, p := range temp.Balance {
				account.Balance = append(account.Balance, p.Position())
			}
			snapshot.AddAccount(account)

		case kindCommodity:
			var temp struct {
				Symbol        string `json:"symbol"`
				AssetClass    string `json:"asset-class,omitempty"`
				AssetSubclass string `json:"asset-subclass,omitempty"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("line %d: invalid commodity: %w", line, err)
			}
			snapshot.DeclareCommodity(temp.Symbol, Classification{
				AssetClass:    temp.AssetClass,
				AssetSubclass: temp.AssetSubclass,
			})

		case kindPrice:
			var temp struct {
				Commodity string          `json:"commodity"`
				Date      Date            `json:"date"`
				Amount    decimal.Decimal `json:"amount"`
				Currency  string          `json:"currency"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
			}
			snapshot.AddPrice(temp.Commodity, temp.Date, M(temp.Amount, temp.Currency))

		default:
			return nil, fmt.Errorf("line %d: unknown kind %q", line, identifier.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return snapshot, nil
}
