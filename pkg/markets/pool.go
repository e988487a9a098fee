package markets

import (
	"math/big"
)

// PoolPriceDecimals is the fixed oracle precision of the pool family.
const PoolPriceDecimals uint8 = 8

// PoolReserve is a user's state in one pool-family reserve. Debt is split
// across two interest-rate modes; for a given user and asset at most one of
// the two may be non-zero.
type PoolReserve struct {
	ATokenBalance           *big.Int
	StableDebt              *big.Int
	VariableDebt            *big.Int
	LiquidationThresholdBps int64
	Price                   *big.Int // 1e8
}

// PoolMarket adapts pool-family account state. Balances rebase in place, so
// the aToken balance already is the underlying amount.
type PoolMarket struct {
	assets   *Registry
	reserves map[string]PoolReserve
}

// NewPoolMarket builds a pool adapter over registered assets and the user's
// per-reserve state. Reserves for unregistered symbols are ignored.
func NewPoolMarket(assets *Registry, reserves map[string]PoolReserve) *PoolMarket {
	m := &PoolMarket{assets: assets, reserves: make(map[string]PoolReserve, len(reserves))}
	for sym, res := range reserves {
		if _, ok := assets.Lookup(sym); ok {
			m.reserves[sym] = res
		}
	}
	return m
}

func (m *PoolMarket) Protocol() Protocol { return ProtocolPool }

func (m *PoolMarket) ListAssets() []string { return m.assets.Symbols() }

func (m *PoolMarket) Decimals(asset string) (uint8, bool) {
	a, ok := m.assets.Lookup(asset)
	return a.Decimals, ok
}

func (m *PoolMarket) BalanceOf(asset string) *big.Int {
	return zeroIfNil(m.reserves[asset].ATokenBalance)
}

// DebtOf returns the active-mode debt. If state upstream ever reports both
// modes non-zero the amounts are summed, which can only overstate risk.
func (m *PoolMarket) DebtOf(asset string) *big.Int {
	res := m.reserves[asset]
	stable := zeroIfNil(res.StableDebt)
	variable := zeroIfNil(res.VariableDebt)
	if stable.Sign() == 0 {
		return variable
	}
	if variable.Sign() == 0 {
		return stable
	}
	return new(big.Int).Add(stable, variable)
}

func (m *PoolMarket) Threshold(asset string) (*big.Int, *big.Int) {
	res, ok := m.reserves[asset]
	if !ok {
		return new(big.Int), bpsScale
	}
	return big.NewInt(res.LiquidationThresholdBps), bpsScale
}

func (m *PoolMarket) PriceOf(asset string) (*big.Int, uint8) {
	return zeroIfNil(m.reserves[asset].Price), PoolPriceDecimals
}

var bpsScale = big.NewInt(10_000)
