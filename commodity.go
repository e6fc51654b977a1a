package classy

// Sentinel classification tags, used when a commodity declares no metadata.
const (
	NoClass    = "noclass"
	NoSubclass = "nosubclass"
)

// CommodityMeta resolves a commodity symbol into its asset classification.
type CommodityMeta interface {
	// Classify returns the asset class and subclass tags for a commodity,
	// falling back to the NoClass and NoSubclass sentinels independently when
	// a tag is absent.
	Classify(commodity string) (assetClass, assetSubclass string)
}

// Classification is the metadata attached to a declared commodity.
type Classification struct {
	AssetClass    string
	AssetSubclass string
}

// CommoditySet is a CommodityMeta backed by a plain map of declared
// commodities.
type CommoditySet map[string]Classification

// Classify implements CommodityMeta. A commodity may declare only one of the
// two tags; each falls back to its sentinel on its own.
func (s CommoditySet) Classify(commodity string) (string, string) {
	c := s[commodity]
	class, subclass := c.AssetClass, c.AssetSubclass
	if class == "" {
		class = NoClass
	}
	if subclass == "" {
		subclass = NoSubclass
	}
	return class, subclass
}
