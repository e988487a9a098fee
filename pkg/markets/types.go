// Package markets exposes per-asset account state from the three supported
// lending-protocol families behind one Adapter capability set. Adapters differ
// only in how they produce an AssetPosition; combining positions into risk
// aggregates is the job of pkg/risk and is shared across families.
package markets

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Protocol identifies a lending back-end family.
type Protocol string

const (
	// ProtocolPool is the pool-based family: rebasing aToken-style balances,
	// basis-point liquidation thresholds, 1e8 oracle prices.
	ProtocolPool Protocol = "pool"
	// ProtocolComptroller is the comptroller family: exchange-rate-scaled
	// share balances, 1e18 collateral factors, per-asset oracle decimals.
	ProtocolComptroller Protocol = "comptroller"
	// ProtocolBaseAsset is the single-base-asset family: comptroller math,
	// but debt exists only against one designated base asset per market.
	ProtocolBaseAsset Protocol = "base-asset"
)

// Valid reports whether p names a known protocol family.
func (p Protocol) Valid() bool {
	switch p {
	case ProtocolPool, ProtocolComptroller, ProtocolBaseAsset:
		return true
	}
	return false
}

// Asset is a registered token. Decimals are validated at registration; the
// risk path may assume Decimals <= 18 afterwards.
type Asset struct {
	Symbol   string
	Address  common.Address
	Decimals uint8
}

// AssetPosition is the per-asset view an adapter produces for the risk
// engine. All monetary fields are non-negative raw integers in the asset's
// native precision; sign is carried only by deltas.
//
// Threshold is expressed at whatever precision the producing family uses
// (basis points for the pool family, a 1e18 fraction for the others), with
// ThresholdScale carrying the matching denominator so downstream math never
// hardcodes a shared constant.
type AssetPosition struct {
	Asset          string
	Collateral     *big.Int // underlying units, native decimals
	Debt           *big.Int // underlying units, native decimals
	Decimals       uint8
	Price          *big.Int // oracle precision
	PriceDecimals  uint8
	Threshold      *big.Int
	ThresholdScale *big.Int
}

// Adapter is the capability set shared by all protocol families.
//
// Balance and debt queries return underlying-unit amounts; a missing asset
// yields zero values, never an error, matching the engine's soft-fail
// contract for expected missing data.
type Adapter interface {
	Protocol() Protocol
	ListAssets() []string
	Decimals(asset string) (uint8, bool)
	// BalanceOf returns the collateral balance in underlying units.
	BalanceOf(asset string) *big.Int
	// DebtOf returns the debt balance in underlying units.
	DebtOf(asset string) *big.Int
	// Threshold returns the liquidation threshold (or collateral factor) and
	// the denominator it is scaled by.
	Threshold(asset string) (value, scale *big.Int)
	// PriceOf returns the oracle price and its decimal count.
	PriceOf(asset string) (price *big.Int, decimals uint8)
}

// PositionOf assembles an AssetPosition from an adapter's capabilities.
// Returns false when the adapter does not know the asset.
func PositionOf(a Adapter, asset string) (AssetPosition, bool) {
	dec, ok := a.Decimals(asset)
	if !ok {
		return AssetPosition{}, false
	}
	price, priceDec := a.PriceOf(asset)
	threshold, scale := a.Threshold(asset)
	return AssetPosition{
		Asset:          asset,
		Collateral:     a.BalanceOf(asset),
		Debt:           a.DebtOf(asset),
		Decimals:       dec,
		Price:          price,
		PriceDecimals:  priceDec,
		Threshold:      threshold,
		ThresholdScale: scale,
	}, true
}

func zeroIfNil(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return x
}
