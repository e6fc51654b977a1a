package classy

// Allocate annotates the tree in place with allocation percentages at every
// level: each class against the portfolio total, each subclass against the
// portfolio and class totals, and each account against the portfolio, class,
// and subclass totals.
//
// Every percentage is guarded independently: it is zero exactly when the
// corresponding ancestor total is zero. After this pass the tree is complete
// and must not be mutated further.
func (t *PortfolioTree) Allocate() {
	for _, class := range t.Classes {
		class.PortfolioAllocation = AllocationOf(class.Total, t.Total)
		for _, sub := range class.Subclasses {
			sub.PortfolioAllocation = AllocationOf(sub.Total, t.Total)
			sub.ClassAllocation = AllocationOf(sub.Total, class.Total)
			for _, account := range sub.Accounts {
				account.PortfolioAllocation = AllocationOf(account.MarketValue, t.Total)
				account.ClassAllocation = AllocationOf(account.MarketValue, class.Total)
				account.SubclassAllocation = AllocationOf(account.MarketValue, sub.Total)
			}
		}
	}
}
