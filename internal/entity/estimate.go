package entity

// EstimateItem is one line of a bill of quantities.
type EstimateItem struct {
	Material     string
	Unit         string
	VariantKey   string
	VariantLabel string
	Quantity     float64
	PricePerUnit float64
	Cost         float64
}

type Estimate struct {
	Area           float64
	Floors         int
	FinishingLevel string
	Items          []EstimateItem
	TotalCost      float64
	Currency       string
}
