package risk

import (
	"math/big"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
)

// Project applies one or two signed deltas to a snapshot and returns the full
// before/after/delta risk record. The second delta may be nil (single-leg
// trades).
//
// Fails soft: a nil snapshot, no deltas, or deltas whose assets are all
// absent from the snapshot yield an all-zero impact, never an error. A delta
// amount is in the asset's native units; it is normalized, priced, and
// weighted with exactly the parameters Aggregate recorded for that asset, so
// projection is identical across protocol families.
func Project(s *RiskSnapshot, d0, d1 *AssetDelta) TradeImpact {
	if s == nil {
		return zeroImpact()
	}

	effCollateral := new(big.Int) // threshold-weighted USD
	rawCollateral := new(big.Int) // unweighted USD
	effBorrow := new(big.Int)     // USD

	applied := false
	for _, d := range []*AssetDelta{d0, d1} {
		if d == nil || d.Amount == nil {
			continue
		}
		ar, ok := s.Assets[d.Asset]
		if !ok {
			continue
		}
		applied = true

		usd := fixedpoint.MulDiv(fixedpoint.Normalize(d.Amount, ar.Decimals), ar.Price, ar.PriceScale)
		switch d.Side {
		case SideCollateral:
			rawCollateral.Add(rawCollateral, usd)
			effCollateral.Add(effCollateral, fixedpoint.MulDiv(usd, ar.Threshold, ar.ThresholdScale))
		case SideBorrow:
			effBorrow.Add(effBorrow, usd)
		}
	}
	if !applied {
		return zeroImpact()
	}

	before := s.Metrics()
	newCollateral := new(big.Int).Add(s.WeightedCollateral, effCollateral)
	newDebt := new(big.Int).Add(s.Debt, effBorrow)
	after := ComputeMetrics(newCollateral, newDebt)

	return TradeImpact{
		Ltv:               before.Ltv,
		LtvNew:            after.Ltv,
		LtvDelta:          new(big.Int).Sub(after.Ltv, before.Ltv),
		HealthFactor:      before.HealthFactor,
		HealthFactorNew:   after.HealthFactor,
		HealthFactorDelta: new(big.Int).Sub(after.HealthFactor, before.HealthFactor),
		MarginImpact:      new(big.Int).Add(effBorrow, effCollateral),
		DeltaCollateral:   rawCollateral,
		DeltaBorrow:       effBorrow,
	}
}
