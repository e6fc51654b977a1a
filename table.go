package classy

import (
	"github.com/etnz/classy/rowspan"
)

// Column names of the breakdown table.
const (
	ColPortfolioTotal          = "portfolio_total"
	ColAssetClasses            = "asset_classes"
	ColPortfolioAllocation     = "portfolio_allocation"
	ColAssetClassTotal         = "asset_class_total"
	ColAssetSubclasses         = "asset_subclasses"
	ColAssetClassAllocation    = "asset_class_allocation"
	ColAssetSubclassTotal      = "asset_subclass_total"
	ColAccounts                = "accounts"
	ColAssetSubclassAllocation = "asset_subclass_allocation"
	ColBalanceMarketValue      = "balance_market_value"
	ColIncomeGainLoss          = "income_gain_loss"
	ColGainLossPercentage      = "gain_loss_percentage"
	ColLatestPriceDate         = "latest_price_date"
)

// BreakdownSchema returns the ordered column schema of the breakdown table:
// the portfolio total, then one group column per classification level, each
// followed by that level's scalar columns.
func BreakdownSchema() rowspan.Schema {
	return rowspan.Schema{
		{Name: ColPortfolioTotal, Kind: rowspan.Scalar},
		{Name: ColAssetClasses, Kind: rowspan.Group},
		{Name: ColPortfolioAllocation, Kind: rowspan.Scalar},
		{Name: ColAssetClassTotal, Kind: rowspan.Scalar},
		{Name: ColAssetSubclasses, Kind: rowspan.Group},
		{Name: ColAssetClassAllocation, Kind: rowspan.Scalar},
		{Name: ColAssetSubclassTotal, Kind: rowspan.Scalar},
		{Name: ColAccounts, Kind: rowspan.Group},
		{Name: ColAssetSubclassAllocation, Kind: rowspan.Scalar},
		{Name: ColBalanceMarketValue, Kind: rowspan.Scalar},
		{Name: ColIncomeGainLoss, Kind: rowspan.Scalar},
		{Name: ColGainLossPercentage, Kind: rowspan.Scalar},
		{Name: ColLatestPriceDate, Kind: rowspan.Scalar},
	}
}

// TableNode converts the tree into the generic nested mapping consumed by
// rowspan.Flatten, exposing exactly the columns named by BreakdownSchema.
func (t *PortfolioTree) TableNode() rowspan.Node {
	classes := rowspan.NewMapping()
	for _, class := range t.Classes {
		subclasses := rowspan.NewMapping()
		for _, sub := range class.Subclasses {
			accounts := rowspan.NewMapping()
			for _, account := range sub.Accounts {
				accounts.Set(account.Name, rowspan.Node{
					ColAssetSubclassAllocation: account.SubclassAllocation,
					ColBalanceMarketValue:      account.MarketValue,
					ColIncomeGainLoss:          opt(account.GainLoss),
					ColGainLossPercentage:      opt(account.GainLossPct),
					ColLatestPriceDate:         opt(account.LatestPriceDate),
				})
			}
			subclasses.Set(sub.Tag, rowspan.Node{
				ColAssetClassAllocation: sub.ClassAllocation,
				ColAssetSubclassTotal:   sub.Total,
				ColAccounts:             accounts,
			})
		}
		classes.Set(class.Tag, rowspan.Node{
			ColPortfolioAllocation: class.PortfolioAllocation,
			ColAssetClassTotal:     class.Total,
			ColAssetSubclasses:     subclasses,
		})
	}
	return rowspan.Node{
		ColPortfolioTotal: t.Total,
		ColAssetClasses:   classes,
	}
}

// FlattenTable flattens the tree into the rowspan-annotated breakdown table.
func (t *PortfolioTree) FlattenTable() (rowspan.Row, error) {
	return rowspan.Flatten(BreakdownSchema(), t.TableNode())
}

// opt unwraps an optional value; a nil pointer renders as an absent value.
func opt[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
