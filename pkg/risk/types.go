// Package risk aggregates per-asset lending positions into protocol-wide
// risk metrics and projects how a candidate trade changes them.
//
// One Aggregate, one Metrics, one Project serve all three protocol families:
// precision differences are normalized away by the adapters and
// pkg/fixedpoint before any number reaches this package.
package risk

import (
	"math/big"
)

// Side tags which side of the balance sheet a delta moves.
type Side string

const (
	SideCollateral Side = "COLLATERAL"
	SideBorrow     Side = "BORROW"
)

// AssetRisk is the per-asset slice of a snapshot: USD values at 18 decimals
// plus the raw parameters needed to price a later delta against the same
// asset the same way.
type AssetRisk struct {
	CollateralUsd  *big.Int // 1e18
	DebtUsd        *big.Int // 1e18
	Decimals       uint8
	Price          *big.Int
	PriceScale     *big.Int
	Threshold      *big.Int
	ThresholdScale *big.Int
}

// RiskSnapshot is the aggregate view of one account on one protocol.
// It is produced, consumed, and discarded within a single recompute cycle;
// nothing mutates it after Aggregate returns.
type RiskSnapshot struct {
	Assets map[string]AssetRisk

	Collateral         *big.Int // unweighted USD, 1e18
	WeightedCollateral *big.Int // threshold-weighted USD, 1e18
	Debt               *big.Int // USD, 1e18
}

// AssetDelta is a signed position change in the asset's native units.
type AssetDelta struct {
	Asset  string
	Amount *big.Int
	Side   Side
}

// TradeImpact is the before/after/delta risk record for one candidate trade.
// All values are 1e18 fixed-point.
type TradeImpact struct {
	Ltv               *big.Int
	LtvNew            *big.Int
	LtvDelta          *big.Int
	HealthFactor      *big.Int
	HealthFactorNew   *big.Int
	HealthFactorDelta *big.Int

	// MarginImpact is the sum of the effective (threshold-weighted collateral
	// plus USD borrow) deltas.
	MarginImpact *big.Int
	// DeltaCollateral is the raw, unweighted USD collateral delta.
	DeltaCollateral *big.Int
	DeltaBorrow     *big.Int
}

func zeroImpact() TradeImpact {
	return TradeImpact{
		Ltv:               new(big.Int),
		LtvNew:            new(big.Int),
		LtvDelta:          new(big.Int),
		HealthFactor:      new(big.Int),
		HealthFactorNew:   new(big.Int),
		HealthFactorDelta: new(big.Int),
		MarginImpact:      new(big.Int),
		DeltaCollateral:   new(big.Int),
		DeltaBorrow:       new(big.Int),
	}
}
