package trade

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

func testRoute() Route {
	return Route{Hops: []Hop{{
		TokenIn:  common.HexToAddress("0x01"),
		TokenOut: common.HexToAddress("0x02"),
		Fee:      500,
	}}}
}

func TestSlippageBounds(t *testing.T) {
	spec := &Spec{
		Type:        ExactIn,
		AmountIn:    big.NewInt(1_000_000),
		AmountOut:   big.NewInt(3_333_333),
		SlippageBps: decimal.NewFromInt(30),
	}
	// floor: 3333333 * 9970 / 10000 = 3323333.0001 -> 3323333
	if got := spec.MinimumAmountOut(); got.Cmp(big.NewInt(3_323_333)) != 0 {
		t.Fatalf("MinimumAmountOut = %s, want 3323333", got)
	}
	// ceil: 1000000 * 10030 / 10000 = 1003000
	if got := spec.MaximumAmountIn(); got.Cmp(big.NewInt(1_003_000)) != 0 {
		t.Fatalf("MaximumAmountIn = %s, want 1003000", got)
	}

	// Fractional bps: ceiling must round up the input ceiling.
	spec.SlippageBps = decimal.RequireFromString("0.5")
	// 1000000 * 10000.5 / 10000 = 1000050
	if got := spec.MaximumAmountIn(); got.Cmp(big.NewInt(1_000_050)) != 0 {
		t.Fatalf("MaximumAmountIn = %s, want 1000050", got)
	}
	spec.AmountIn = big.NewInt(999_999)
	// 999999 * 10000.5 / 10000 = 1000048.99995 -> 1000049
	if got := spec.MaximumAmountIn(); got.Cmp(big.NewInt(1_000_049)) != 0 {
		t.Fatalf("MaximumAmountIn = %s, want 1000049", got)
	}

	var nilSpec *Spec
	if nilSpec.MinimumAmountOut().Sign() != 0 || nilSpec.MaximumAmountIn().Sign() != 0 {
		t.Fatal("nil spec bounds must be zero")
	}
}

func TestRouteEnds(t *testing.T) {
	r := Route{Hops: []Hop{
		{TokenIn: common.HexToAddress("0x0a"), TokenOut: common.HexToAddress("0x0b"), Fee: 500},
		{TokenIn: common.HexToAddress("0x0b"), TokenOut: common.HexToAddress("0x0c"), Fee: 3000},
	}}
	if r.TokenIn() != common.HexToAddress("0x0a") || r.TokenOut() != common.HexToAddress("0x0c") {
		t.Fatal("route endpoints wrong")
	}
	if !r.MultiHop() {
		t.Fatal("two hops is multi-hop")
	}
	var empty Route
	if empty.MultiHop() || empty.TokenIn() != (common.Address{}) {
		t.Fatal("empty route")
	}
}

func TestSpecBuilder(t *testing.T) {
	spec, err := NewSpecBuilder(ActionOpen, ExactIn).
		Route(testRoute()).
		AmountIn(big.NewInt(100)).
		AmountOut(big.NewInt(99)).
		SlippageBps(25).
		Native(true, false).
		Pair("ETH", "USDC").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if spec.Action != ActionOpen || !spec.NativeIn || spec.NativeOut {
		t.Fatalf("spec fields wrong: %+v", spec)
	}

	if _, err := NewSpecBuilder(ActionSupply, "SORT_OF_EXACT").Route(testRoute()).Build(); err == nil {
		t.Fatal("bad trade type must fail")
	}
	if _, err := NewSpecBuilder(ActionSupply, ExactIn).AmountIn(big.NewInt(1)).Build(); err == nil {
		t.Fatal("missing route must fail")
	}
	if _, err := NewSpecBuilder(ActionSupply, ExactIn).Route(testRoute()).Build(); err == nil {
		t.Fatal("missing amount must fail")
	}
	// useMax stands in for the amount
	if _, err := NewSpecBuilder(ActionWithdraw, ExactIn).Route(testRoute()).UseMax(true).Build(); err != nil {
		t.Fatalf("useMax without amount should build: %v", err)
	}
	if _, err := NewSpecBuilder(ActionSupply, ExactIn).
		Route(testRoute()).AmountIn(big.NewInt(1)).SlippageBpsDec(decimal.NewFromInt(-1)).Build(); err == nil {
		t.Fatal("negative slippage must fail")
	}
}

func TestMemoBoundedAndStale(t *testing.T) {
	now := time.Unix(1000, 0)
	m := NewMemo(2, 10*time.Second)
	m.now = func() time.Time { return now }

	put := func(in, out string) *Spec {
		s := &Spec{InSymbol: in, OutSymbol: out, Route: testRoute()}
		m.Put(s)
		return s
	}

	first := put("A", "B")
	now = now.Add(time.Second)
	put("C", "D")
	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}

	// Third pair evicts the oldest.
	now = now.Add(time.Second)
	put("E", "F")
	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2 after eviction", m.Len())
	}
	if _, ok := m.Get("A", "B"); ok {
		t.Fatal("oldest pair should have been evicted")
	}
	if got, ok := m.Get("C", "D"); !ok || got.InSymbol != "C" {
		t.Fatal("recent pair should remain")
	}

	// Staleness window.
	now = now.Add(11 * time.Second)
	if _, ok := m.Get("E", "F"); ok {
		t.Fatal("stale entry should not be returned")
	}

	// Re-putting an existing pair never evicts.
	m2 := NewMemo(1, 0)
	m2.Put(first)
	m2.Put(first)
	if m2.Len() != 1 {
		t.Fatalf("len = %d, want 1", m2.Len())
	}
}

func TestMemoIgnoresUnkeyedSpecs(t *testing.T) {
	m := NewMemo(4, 0)
	m.Put(nil)
	m.Put(&Spec{})
	if m.Len() != 0 {
		t.Fatalf("len = %d, want 0", m.Len())
	}
}
