package risk

import (
	"math/big"
	"testing"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
	"github.com/GoMargin/margin-go-sdk/pkg/markets"
)

// liquidatableMarket is the reference scenario: $1000 of 6-decimal collateral
// at an 80% threshold plus $1000 of 18-decimal debt, i.e. weighted collateral
// $800 against $1000 owed.
func liquidatableMarket(t *testing.T) markets.Adapter {
	t.Helper()
	registry := markets.MustRegistry(
		markets.Asset{Symbol: "USDC", Decimals: 6},
		markets.Asset{Symbol: "DAI", Decimals: 18},
	)
	return markets.NewPoolMarket(registry, map[string]markets.PoolReserve{
		"USDC": {
			ATokenBalance:           big.NewInt(1_000_000_000), // 1000 tokens
			LiquidationThresholdBps: 8000,
			Price:                   big.NewInt(100_000_000),
		},
		"DAI": {
			VariableDebt:            mustBig(t, "500000000000000000000"), // 500 tokens
			LiquidationThresholdBps: 8000,
			Price:                   big.NewInt(200_000_000), // $2.00 at 1e8
		},
	})
}

func TestAggregateReferenceScenario(t *testing.T) {
	snap := Aggregate(liquidatableMarket(t))
	if snap == nil {
		t.Fatal("connected account must yield a snapshot")
	}

	wantCollateral := mustBig(t, "1000000000000000000000") // $1000
	wantWeighted := mustBig(t, "800000000000000000000")    // $800
	wantDebt := mustBig(t, "1000000000000000000000")       // $1000

	if snap.Collateral.Cmp(wantCollateral) != 0 {
		t.Errorf("collateral = %s, want %s", snap.Collateral, wantCollateral)
	}
	if snap.WeightedCollateral.Cmp(wantWeighted) != 0 {
		t.Errorf("weighted collateral = %s, want %s", snap.WeightedCollateral, wantWeighted)
	}
	if snap.Debt.Cmp(wantDebt) != 0 {
		t.Errorf("debt = %s, want %s", snap.Debt, wantDebt)
	}

	m := snap.Metrics()
	wantLtv := mustBig(t, "1250000000000000000") // 1.25
	wantHf := mustBig(t, "800000000000000000")   // 0.80, liquidatable, not clamped
	if m.Ltv.Cmp(wantLtv) != 0 {
		t.Errorf("ltv = %s, want %s", m.Ltv, wantLtv)
	}
	if m.HealthFactor.Cmp(wantHf) != 0 {
		t.Errorf("health factor = %s, want %s", m.HealthFactor, wantHf)
	}
	if LevelFor(m.HealthFactor) != LevelLiquidatable {
		t.Errorf("expected liquidatable level for hf %s", m.HealthFactor)
	}
}

func TestMetricsEdgeCases(t *testing.T) {
	tests := []struct {
		name       string
		collateral *big.Int
		debt       *big.Int
		wantLtv    *big.Int
		wantHf     *big.Int
	}{
		{"both zero", big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0)},
		{"collateral only", big.NewInt(5), big.NewInt(0), big.NewInt(0), fixedpoint.MaxUint256},
		{"debt only", big.NewInt(0), big.NewInt(5), big.NewInt(0), big.NewInt(0)},
		{"nil totals", nil, nil, big.NewInt(0), big.NewInt(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(tt.collateral, tt.debt)
			if m.Ltv.Cmp(tt.wantLtv) != 0 {
				t.Errorf("ltv = %s, want %s", m.Ltv, tt.wantLtv)
			}
			if m.HealthFactor.Cmp(tt.wantHf) != 0 {
				t.Errorf("hf = %s, want %s", m.HealthFactor, tt.wantHf)
			}
		})
	}
}

func TestMetricsTruncate(t *testing.T) {
	// 1/3 at 1e18 must truncate, never round up: overstating the health
	// factor would understate risk.
	m := ComputeMetrics(big.NewInt(1), big.NewInt(3))
	want := mustBig(t, "333333333333333333")
	if m.HealthFactor.Cmp(want) != 0 {
		t.Fatalf("hf = %s, want %s", m.HealthFactor, want)
	}
}

func TestAggregateZeroPositions(t *testing.T) {
	registry := markets.MustRegistry(markets.Asset{Symbol: "USDC", Decimals: 6})
	snap := Aggregate(markets.NewPoolMarket(registry, nil))
	if snap == nil {
		t.Fatal("zero positions is still a connected account")
	}
	if snap.Collateral.Sign() != 0 || snap.WeightedCollateral.Sign() != 0 || snap.Debt.Sign() != 0 {
		t.Fatalf("expected all-zero snapshot, got %+v", snap)
	}
	m := snap.Metrics()
	if m.Ltv.Sign() != 0 || m.HealthFactor.Sign() != 0 {
		t.Fatalf("expected zero metrics, got ltv=%s hf=%s", m.Ltv, m.HealthFactor)
	}
}

func TestAggregateNilAdapter(t *testing.T) {
	if snap := Aggregate(nil); snap != nil {
		t.Fatal("nil adapter means no account; expected nil snapshot")
	}
}

func TestProjectZeroDelta(t *testing.T) {
	snap := Aggregate(liquidatableMarket(t))
	impact := Project(snap, &AssetDelta{Asset: "USDC", Amount: big.NewInt(0), Side: SideCollateral}, nil)

	if impact.LtvNew.Cmp(impact.Ltv) != 0 {
		t.Errorf("zero delta changed ltv: %s -> %s", impact.Ltv, impact.LtvNew)
	}
	if impact.HealthFactorNew.Cmp(impact.HealthFactor) != 0 {
		t.Errorf("zero delta changed hf: %s -> %s", impact.HealthFactor, impact.HealthFactorNew)
	}
	for name, v := range map[string]*big.Int{
		"ltvDelta":          impact.LtvDelta,
		"healthFactorDelta": impact.HealthFactorDelta,
		"marginImpact":      impact.MarginImpact,
		"deltaCollateral":   impact.DeltaCollateral,
		"deltaBorrow":       impact.DeltaBorrow,
	} {
		if v.Sign() != 0 {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}

	// Idempotence: projecting a zero delta must agree with re-aggregating.
	fresh := Aggregate(liquidatableMarket(t)).Metrics()
	if impact.LtvNew.Cmp(fresh.Ltv) != 0 || impact.HealthFactorNew.Cmp(fresh.HealthFactor) != 0 {
		t.Errorf("projection disagrees with fresh aggregation")
	}
}

func TestProjectMissingAssets(t *testing.T) {
	snap := Aggregate(liquidatableMarket(t))
	impact := Project(snap, &AssetDelta{Asset: "WBTC", Amount: big.NewInt(1), Side: SideCollateral}, nil)
	assertZeroImpact(t, impact)

	assertZeroImpact(t, Project(snap, nil, nil))
	assertZeroImpact(t, Project(nil, &AssetDelta{Asset: "USDC", Amount: big.NewInt(1), Side: SideCollateral}, nil))
}

func TestProjectSupplyAndBorrow(t *testing.T) {
	snap := Aggregate(liquidatableMarket(t))

	// Supply another 1000 USDC: weighted collateral 800 -> 1600 against 1000
	// debt.
	supply := &AssetDelta{Asset: "USDC", Amount: big.NewInt(1_000_000_000), Side: SideCollateral}
	impact := Project(snap, supply, nil)
	wantHfNew := mustBig(t, "1600000000000000000")
	if impact.HealthFactorNew.Cmp(wantHfNew) != 0 {
		t.Errorf("hfNew = %s, want %s", impact.HealthFactorNew, wantHfNew)
	}
	if impact.LtvDelta.Sign() >= 0 {
		t.Errorf("supplying collateral should lower ltv, delta %s", impact.LtvDelta)
	}
	wantDeltaCollateral := mustBig(t, "1000000000000000000000")
	if impact.DeltaCollateral.Cmp(wantDeltaCollateral) != 0 {
		t.Errorf("deltaCollateral = %s, want %s", impact.DeltaCollateral, wantDeltaCollateral)
	}
	wantMargin := mustBig(t, "800000000000000000000") // weighted
	if impact.MarginImpact.Cmp(wantMargin) != 0 {
		t.Errorf("marginImpact = %s, want %s", impact.MarginImpact, wantMargin)
	}

	// Borrow 100 more DAI and supply 1000 USDC in one trade.
	borrow := &AssetDelta{Asset: "DAI", Amount: mustBig(t, "100000000000000000000"), Side: SideBorrow}
	both := Project(snap, supply, borrow)
	wantDebtDelta := mustBig(t, "200000000000000000000") // $200
	if both.DeltaBorrow.Cmp(wantDebtDelta) != 0 {
		t.Errorf("deltaBorrow = %s, want %s", both.DeltaBorrow, wantDebtDelta)
	}
	// ltvNew = 1200 / 1600 = 0.75
	wantLtvNew := mustBig(t, "750000000000000000")
	if both.LtvNew.Cmp(wantLtvNew) != 0 {
		t.Errorf("ltvNew = %s, want %s", both.LtvNew, wantLtvNew)
	}
	if both.LtvDelta.Cmp(new(big.Int).Sub(both.LtvNew, both.Ltv)) != 0 {
		t.Errorf("ltvDelta invariant violated")
	}
	if both.HealthFactorDelta.Cmp(new(big.Int).Sub(both.HealthFactorNew, both.HealthFactor)) != 0 {
		t.Errorf("healthFactorDelta invariant violated")
	}
}

// TestProjectFamilyAgnostic feeds an economically identical account through
// the comptroller adapter and checks that aggregation and projection agree
// with the pool numbers to the digit.
func TestProjectFamilyAgnostic(t *testing.T) {
	registry := markets.MustRegistry(
		markets.Asset{Symbol: "USDC", Decimals: 6},
		markets.Asset{Symbol: "DAI", Decimals: 18},
	)
	comptroller := markets.NewComptrollerMarket(registry, map[string]markets.ComptrollerPosition{
		"USDC": {
			ShareBalance:     big.NewInt(500_000_000), // 500 shares at rate 2.0
			ExchangeRate:     mustBig(t, "2000000000000000000"),
			CollateralFactor: mustBig(t, "800000000000000000"), // 0.8 at 1e18
			Price:            big.NewInt(100_000_000),
			PriceDecimals:    8,
		},
		"DAI": {
			ShareBalance:     big.NewInt(0),
			ExchangeRate:     mustBig(t, "1000000000000000000"),
			BorrowBalance:    mustBig(t, "500000000000000000000"),
			CollateralFactor: mustBig(t, "800000000000000000"),
			Price:            big.NewInt(200_000_000),
			PriceDecimals:    8,
		},
	})

	poolSnap := Aggregate(liquidatableMarket(t))
	compSnap := Aggregate(comptroller)

	if poolSnap.WeightedCollateral.Cmp(compSnap.WeightedCollateral) != 0 {
		t.Fatalf("weighted collateral differs: pool %s comptroller %s",
			poolSnap.WeightedCollateral, compSnap.WeightedCollateral)
	}
	if poolSnap.Debt.Cmp(compSnap.Debt) != 0 {
		t.Fatalf("debt differs: pool %s comptroller %s", poolSnap.Debt, compSnap.Debt)
	}

	delta := &AssetDelta{Asset: "USDC", Amount: big.NewInt(250_000_000), Side: SideCollateral}
	poolImpact := Project(poolSnap, delta, nil)
	compImpact := Project(compSnap, delta, nil)
	if poolImpact.HealthFactorNew.Cmp(compImpact.HealthFactorNew) != 0 {
		t.Fatalf("projection differs across families: pool %s comptroller %s",
			poolImpact.HealthFactorNew, compImpact.HealthFactorNew)
	}
}

func TestLevelFor(t *testing.T) {
	if LevelFor(mustBig(t, "2000000000000000000")) != LevelHealthy {
		t.Error("2.0 should be healthy")
	}
	if LevelFor(mustBig(t, "1100000000000000000")) != LevelWarning {
		t.Error("1.1 should be warning")
	}
	if LevelFor(mustBig(t, "900000000000000000")) != LevelLiquidatable {
		t.Error("0.9 should be liquidatable")
	}
	if LevelFor(big.NewInt(0)) != LevelHealthy {
		t.Error("no position should grade healthy")
	}
}

func assertZeroImpact(t *testing.T, impact TradeImpact) {
	t.Helper()
	for name, v := range map[string]*big.Int{
		"ltv": impact.Ltv, "ltvNew": impact.LtvNew, "ltvDelta": impact.LtvDelta,
		"healthFactor": impact.HealthFactor, "healthFactorNew": impact.HealthFactorNew,
		"healthFactorDelta": impact.HealthFactorDelta, "marginImpact": impact.MarginImpact,
		"deltaCollateral": impact.DeltaCollateral, "deltaBorrow": impact.DeltaBorrow,
	} {
		if v.Sign() != 0 {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad big int literal %q", s)
	}
	return v
}
