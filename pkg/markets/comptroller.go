package markets

import (
	"math/big"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
)

// ComptrollerPosition is a user's state in one comptroller-family market.
// The share balance converts to underlying via the current exchange rate:
// underlying = shares * exchangeRate / 1e18.
type ComptrollerPosition struct {
	ShareBalance     *big.Int
	ExchangeRate     *big.Int // 1e18
	BorrowBalance    *big.Int // underlying units
	CollateralFactor *big.Int // 1e18 fraction
	Price            *big.Int
	PriceDecimals    uint8 // oracle-supplied, varies per asset
}

// ComptrollerMarket adapts comptroller-family account state.
type ComptrollerMarket struct {
	assets    *Registry
	positions map[string]ComptrollerPosition
}

// NewComptrollerMarket builds a comptroller adapter over registered assets
// and the user's per-market state. Positions for unregistered symbols are
// ignored.
func NewComptrollerMarket(assets *Registry, positions map[string]ComptrollerPosition) *ComptrollerMarket {
	m := &ComptrollerMarket{assets: assets, positions: make(map[string]ComptrollerPosition, len(positions))}
	for sym, pos := range positions {
		if _, ok := assets.Lookup(sym); ok {
			m.positions[sym] = pos
		}
	}
	return m
}

func (m *ComptrollerMarket) Protocol() Protocol { return ProtocolComptroller }

func (m *ComptrollerMarket) ListAssets() []string { return m.assets.Symbols() }

func (m *ComptrollerMarket) Decimals(asset string) (uint8, bool) {
	a, ok := m.assets.Lookup(asset)
	return a.Decimals, ok
}

// BalanceOf unwinds the exchange rate, truncating toward zero so collateral
// is never overstated.
func (m *ComptrollerMarket) BalanceOf(asset string) *big.Int {
	pos := m.positions[asset]
	return fixedpoint.MulDiv(zeroIfNil(pos.ShareBalance), zeroIfNil(pos.ExchangeRate), fixedpoint.Wad)
}

func (m *ComptrollerMarket) DebtOf(asset string) *big.Int {
	return zeroIfNil(m.positions[asset].BorrowBalance)
}

func (m *ComptrollerMarket) Threshold(asset string) (*big.Int, *big.Int) {
	pos, ok := m.positions[asset]
	if !ok {
		return new(big.Int), fixedpoint.Wad
	}
	return zeroIfNil(pos.CollateralFactor), fixedpoint.Wad
}

func (m *ComptrollerMarket) PriceOf(asset string) (*big.Int, uint8) {
	pos := m.positions[asset]
	return zeroIfNil(pos.Price), pos.PriceDecimals
}
