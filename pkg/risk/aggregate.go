package risk

import (
	"math/big"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
	"github.com/GoMargin/margin-go-sdk/pkg/markets"
)

// Aggregate walks every asset the adapter knows and folds the positions into
// a RiskSnapshot. A nil adapter means no account is connected and yields nil;
// a connected account with zero positions yields a valid all-zero snapshot.
//
// Pure: no I/O, deterministic for a given adapter state.
func Aggregate(adapter markets.Adapter) *RiskSnapshot {
	if adapter == nil {
		return nil
	}

	snap := &RiskSnapshot{
		Assets:             make(map[string]AssetRisk),
		Collateral:         new(big.Int),
		WeightedCollateral: new(big.Int),
		Debt:               new(big.Int),
	}

	for _, sym := range adapter.ListAssets() {
		pos, ok := markets.PositionOf(adapter, sym)
		if !ok {
			continue
		}
		priceScale := fixedpoint.Scale(pos.PriceDecimals)

		collateralUsd := fixedpoint.MulDiv(fixedpoint.Normalize(pos.Collateral, pos.Decimals), pos.Price, priceScale)
		debtUsd := fixedpoint.MulDiv(fixedpoint.Normalize(pos.Debt, pos.Decimals), pos.Price, priceScale)

		snap.Collateral.Add(snap.Collateral, collateralUsd)
		snap.WeightedCollateral.Add(snap.WeightedCollateral,
			fixedpoint.MulDiv(collateralUsd, pos.Threshold, pos.ThresholdScale))
		snap.Debt.Add(snap.Debt, debtUsd)

		snap.Assets[sym] = AssetRisk{
			CollateralUsd:  collateralUsd,
			DebtUsd:        debtUsd,
			Decimals:       pos.Decimals,
			Price:          pos.Price,
			PriceScale:     priceScale,
			Threshold:      pos.Threshold,
			ThresholdScale: pos.ThresholdScale,
		}
	}
	return snap
}
