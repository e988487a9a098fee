package markets

import (
	"math/big"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
)

// BaseAssetPosition is a user's state for one asset in a single-base-asset
// market. Balances are already underlying units; the collateral factor is a
// 1e18 fraction like the comptroller family.
type BaseAssetPosition struct {
	Balance          *big.Int
	CollateralFactor *big.Int // 1e18
	Price            *big.Int
	PriceDecimals    uint8
}

// BaseAssetMarket adapts single-base-asset account state. Each market
// instance designates one base asset; all debt is denominated in it, and
// non-base assets can only ever carry collateral.
type BaseAssetMarket struct {
	assets     *Registry
	base       string
	baseBorrow *big.Int
	positions  map[string]BaseAssetPosition
}

// NewBaseAssetMarket builds a base-asset adapter. baseBorrow is the user's
// outstanding debt in the base asset's underlying units.
func NewBaseAssetMarket(assets *Registry, base string, baseBorrow *big.Int, positions map[string]BaseAssetPosition) *BaseAssetMarket {
	m := &BaseAssetMarket{
		assets:     assets,
		base:       base,
		baseBorrow: zeroIfNil(baseBorrow),
		positions:  make(map[string]BaseAssetPosition, len(positions)),
	}
	for sym, pos := range positions {
		if _, ok := assets.Lookup(sym); ok {
			m.positions[sym] = pos
		}
	}
	return m
}

func (m *BaseAssetMarket) Protocol() Protocol { return ProtocolBaseAsset }

// BaseAsset returns the symbol all debt is denominated in.
func (m *BaseAssetMarket) BaseAsset() string { return m.base }

func (m *BaseAssetMarket) ListAssets() []string { return m.assets.Symbols() }

func (m *BaseAssetMarket) Decimals(asset string) (uint8, bool) {
	a, ok := m.assets.Lookup(asset)
	return a.Decimals, ok
}

func (m *BaseAssetMarket) BalanceOf(asset string) *big.Int {
	return zeroIfNil(m.positions[asset].Balance)
}

func (m *BaseAssetMarket) DebtOf(asset string) *big.Int {
	if asset != m.base {
		return new(big.Int)
	}
	return m.baseBorrow
}

func (m *BaseAssetMarket) Threshold(asset string) (*big.Int, *big.Int) {
	pos, ok := m.positions[asset]
	if !ok {
		return new(big.Int), fixedpoint.Wad
	}
	return zeroIfNil(pos.CollateralFactor), fixedpoint.Wad
}

func (m *BaseAssetMarket) PriceOf(asset string) (*big.Int, uint8) {
	pos := m.positions[asset]
	return zeroIfNil(pos.Price), pos.PriceDecimals
}
