// internal/card/metrics.go
package card

// TradeInput holds the raw trade parameters for one card render.
// The caller validates the contract (ticker 1-10 chars, investment > 0,
// final amount >= 0, price > 0) before the core sees it.
type TradeInput struct {
	Ticker            string
	InitialInvestment float64
	FinalAmount       float64
	Chain             Chain
	Price             float64
}

// DerivedMetrics holds the financial quantities displayed on the card.
type DerivedMetrics struct {
	ProfitQuantity float64 // FinalAmount - InitialInvestment, in tokens
	ProfitUSD      float64 // FinalUSD - InitialUSD
	ROI            float64 // FinalAmount / InitialInvestment
	InitialUSD     float64 // InitialInvestment x price
	FinalUSD       float64 // FinalAmount x price
	IsProfitable   bool    // ProfitQuantity >= 0
}

// ComputeMetrics derives the displayed quantities from a trade. Pure and
// total: no I/O, no failure mode. ProfitUSD is the difference of the two
// USD values, never re-derived independently.
func ComputeMetrics(in TradeInput) DerivedMetrics {
	initialUSD := in.InitialInvestment * in.Price
	finalUSD := in.FinalAmount * in.Price
	profitQty := in.FinalAmount - in.InitialInvestment

	return DerivedMetrics{
		ProfitQuantity: profitQty,
		ProfitUSD:      finalUSD - initialUSD,
		ROI:            in.FinalAmount / in.InitialInvestment,
		InitialUSD:     initialUSD,
		FinalUSD:       finalUSD,
		IsProfitable:   profitQty >= 0,
	}
}
