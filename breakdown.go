package classy

import (
	"fmt"
)

// AccountValueRecord holds the values computed for a single account of the
// breakdown.
type AccountValueRecord struct {
	Name        string
	MarketValue Money

	// GainLoss follows the ledger convention that negative values denote
	// income. It is nil when no price is known for the account's commodity:
	// an unknown gain, distinct from a gain of zero.
	GainLoss *Money

	// GainLossPct is nil when undefined: either no price is known, or the
	// cost basis is zero.
	GainLossPct *Percent

	// LatestPriceDate is nil when no price is known.
	LatestPriceDate *Date

	PortfolioAllocation Percent
	ClassAllocation     Percent
	SubclassAllocation  Percent
}

// AssetSubclassNode groups the accounts of one asset subclass.
type AssetSubclassNode struct {
	Tag      string
	Total    Money
	Accounts []*AccountValueRecord

	PortfolioAllocation Percent
	ClassAllocation     Percent
}

// AssetClassNode groups the subclasses of one asset class.
type AssetClassNode struct {
	Tag        string
	Total      Money
	Subclasses []*AssetSubclassNode

	PortfolioAllocation Percent

	cur string
}

// PortfolioTree is the root of the breakdown. Classes, subclasses and
// accounts are kept in first-encounter order, which is the display order.
type PortfolioTree struct {
	Currency string
	Total    Money
	Classes  []*AssetClassNode
}

// Class returns the asset class node with the given tag, or nil.
func (t *PortfolioTree) Class(tag string) *AssetClassNode {
	for _, c := range t.Classes {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Subclass returns the subclass node with the given tag, or nil.
func (c *AssetClassNode) Subclass(tag string) *AssetSubclassNode {
	for _, s := range c.Subclasses {
		if s.Tag == tag {
			return s
		}
	}
	return nil
}

// Account returns the record for the given account name, or nil.
func (s *AssetSubclassNode) Account(name string) *AccountValueRecord {
	for _, a := range s.Accounts {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// class returns the node for a class tag, creating it on first encounter.
func (t *PortfolioTree) class(tag string) *AssetClassNode {
	if c := t.Class(tag); c != nil {
		return c
	}
	c := &AssetClassNode{Tag: tag, Total: M(0, t.Currency), cur: t.Currency}
	t.Classes = append(t.Classes, c)
	return c
}

// subclass returns the node for a subclass tag, creating it on first encounter.
func (c *AssetClassNode) subclass(tag string) *AssetSubclassNode {
	if s := c.Subclass(tag); s != nil {
		return s
	}
	s := &AssetSubclassNode{Tag: tag, Total: M(0, c.cur)}
	c.Subclasses = append(c.Subclasses, s)
	return s
}

// NewPortfolioTree groups valued accounts into a three-level classification
// tree with running totals at every level.
//
// Accounts with an empty balance are skipped. An account whose cost basis
// cannot be expressed in the operating currency is excluded from every total
// and reported in the returned warnings; the rest of the computation
// proceeds. An account with no price known for its commodity is valued at
// cost, with an unknown (nil) gain/loss.
//
// The returned tree carries no allocations yet; see Allocate.
func NewPortfolioTree(accounts []AccountNode, meta CommodityMeta, resolver ValueResolver, currency string, on Date) (*PortfolioTree, []string) {
	tree := &PortfolioTree{Currency: currency, Total: M(0, currency)}
	var warnings []string

	for _, account := range accounts {
		if account.Balance.IsEmpty() {
			continue
		}
		commodity := account.Commodity()
		class, subclass := meta.Classify(commodity)
		cl := tree.class(class)
		sub := cl.subclass(subclass)

		cost, ok := resolver.Cost(account, currency, on)
		if ok && cost.Currency() != currency {
			if !cost.IsZero() {
				warnings = append(warnings, fmt.Sprintf("account %s has balances not in operating currency %s", account.Name, currency))
				continue
			}
			// A zero cost in a foreign currency values nothing: treat the
			// account as empty.
			ok = false
		}
		if !ok {
			zero := M(0, currency)
			pct := Percent{}
			sub.Accounts = append(sub.Accounts, &AccountValueRecord{
				Name:        account.Name,
				MarketValue: zero,
				GainLoss:    &zero,
				GainLossPct: &pct,
			})
			continue
		}

		rec := &AccountValueRecord{Name: account.Name}
		if priceDate, _, known := resolver.LatestPrice(commodity, currency); !known {
			// Without a price, assume the market value equals the cost basis.
			// The gain/loss is unknown rather than zero.
			rec.MarketValue = cost
		} else {
			market := resolver.MarketValue(account, currency, on)
			gain := cost.Sub(market)
			rec.MarketValue = market
			rec.GainLoss = &gain
			if !cost.IsZero() {
				pct := PercentOf(gain.Neg(), cost)
				rec.GainLossPct = &pct
			}
			rec.LatestPriceDate = &priceDate
		}
		sub.Accounts = append(sub.Accounts, rec)

		// Accumulate running totals in a single pass.
		sub.Total = sub.Total.Add(rec.MarketValue)
		cl.Total = cl.Total.Add(rec.MarketValue)
		tree.Total = tree.Total.Add(rec.MarketValue)
	}

	return tree, warnings
}
