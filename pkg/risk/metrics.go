package risk

import (
	"math/big"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
)

// Metrics are the two headline risk numbers at 1e18 precision.
type Metrics struct {
	Ltv          *big.Int
	HealthFactor *big.Int
}

// ComputeMetrics maps aggregate totals to current LTV and health factor.
//
//	ltv = debt * 1e18 / weightedCollateral   (0 when weightedCollateral == 0)
//	hf  = weightedCollateral * 1e18 / debt   (MaxUint256 when debt == 0 and
//	                                          collateral > 0, 0 when both zero)
//
// Division truncates, so any rounding drift reports risk as higher, never
// lower.
func ComputeMetrics(weightedCollateral, debt *big.Int) Metrics {
	if weightedCollateral == nil {
		weightedCollateral = new(big.Int)
	}
	if debt == nil {
		debt = new(big.Int)
	}

	m := Metrics{Ltv: new(big.Int), HealthFactor: new(big.Int)}
	if weightedCollateral.Sign() > 0 {
		m.Ltv = fixedpoint.MulDiv(debt, fixedpoint.Wad, weightedCollateral)
	}
	switch {
	case debt.Sign() > 0:
		m.HealthFactor = fixedpoint.MulDiv(weightedCollateral, fixedpoint.Wad, debt)
	case weightedCollateral.Sign() > 0:
		m.HealthFactor = new(big.Int).Set(fixedpoint.MaxUint256)
	}
	return m
}

// Metrics computes current LTV and health factor for the snapshot.
// A nil snapshot (no account connected) yields zero metrics.
func (s *RiskSnapshot) Metrics() Metrics {
	if s == nil {
		return ComputeMetrics(nil, nil)
	}
	return ComputeMetrics(s.WeightedCollateral, s.Debt)
}

// Level grades a health factor for display.
type Level string

const (
	LevelHealthy      Level = "healthy"
	LevelWarning      Level = "warning"
	LevelLiquidatable Level = "liquidatable"
)

var (
	// hf < 1.0 means liquidation-eligible, hf < 1.25 is the warning band.
	liquidatableBelow = big.NewInt(1_000_000_000_000_000_000)
	warningBelow      = big.NewInt(1_250_000_000_000_000_000)
)

// LevelFor grades a 1e18-scale health factor. A zero health factor means no
// position at all and grades healthy.
func LevelFor(healthFactor *big.Int) Level {
	if healthFactor == nil || healthFactor.Sign() == 0 {
		return LevelHealthy
	}
	if healthFactor.Cmp(liquidatableBelow) < 0 {
		return LevelLiquidatable
	}
	if healthFactor.Cmp(warningBelow) < 0 {
		return LevelWarning
	}
	return LevelHealthy
}
