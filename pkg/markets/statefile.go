package markets

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// StateFile is the JSON snapshot format for a user's account state, as
// fetched and cached by an upstream data layer. Big integers are hex-encoded
// the way node RPCs return them.
type StateFile struct {
	Protocol  Protocol         `json:"protocol"`
	Account   *common.Address  `json:"account,omitempty"`
	BaseAsset string           `json:"baseAsset,omitempty"`
	Assets    []StateFileAsset `json:"assets"`
}

// StateFileAsset carries one asset's registration data plus whichever state
// fields the protocol family uses; unused fields stay null.
type StateFileAsset struct {
	Symbol   string         `json:"symbol"`
	Address  common.Address `json:"address"`
	Decimals uint8          `json:"decimals"`

	// pool family
	ATokenBalance           *hexutil.Big `json:"aTokenBalance,omitempty"`
	StableDebt              *hexutil.Big `json:"stableDebt,omitempty"`
	VariableDebt            *hexutil.Big `json:"variableDebt,omitempty"`
	LiquidationThresholdBps int64        `json:"liquidationThresholdBps,omitempty"`

	// comptroller family
	ShareBalance  *hexutil.Big `json:"shareBalance,omitempty"`
	ExchangeRate  *hexutil.Big `json:"exchangeRate,omitempty"`
	BorrowBalance *hexutil.Big `json:"borrowBalance,omitempty"`

	// base-asset family
	Balance *hexutil.Big `json:"balance,omitempty"`

	// comptroller and base-asset families
	CollateralFactor *hexutil.Big `json:"collateralFactor,omitempty"`

	Price         *hexutil.Big `json:"price,omitempty"`
	PriceDecimals uint8        `json:"priceDecimals,omitempty"`
}

// DecodeState reads a StateFile and builds the matching adapter. The account
// address is returned alongside so callers can distinguish "no account
// connected" (nil) from "connected with zero positions".
func DecodeState(r io.Reader) (Adapter, *common.Address, error) {
	var f StateFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("decode state: %w", err)
	}
	adapter, err := f.Build()
	if err != nil {
		return nil, nil, err
	}
	return adapter, f.Account, nil
}

// LoadState reads a state file from disk. See DecodeState.
func LoadState(path string) (Adapter, *common.Address, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open state file: %w", err)
	}
	defer fh.Close()
	return DecodeState(fh)
}

// Build constructs the adapter described by the snapshot.
func (f *StateFile) Build() (Adapter, error) {
	assets := make([]Asset, 0, len(f.Assets))
	for _, a := range f.Assets {
		assets = append(assets, Asset{Symbol: a.Symbol, Address: a.Address, Decimals: a.Decimals})
	}
	registry, err := NewRegistry(assets...)
	if err != nil {
		return nil, err
	}

	switch f.Protocol {
	case ProtocolPool:
		reserves := make(map[string]PoolReserve, len(f.Assets))
		for _, a := range f.Assets {
			reserves[a.Symbol] = PoolReserve{
				ATokenBalance:           a.ATokenBalance.ToInt(),
				StableDebt:              a.StableDebt.ToInt(),
				VariableDebt:            a.VariableDebt.ToInt(),
				LiquidationThresholdBps: a.LiquidationThresholdBps,
				Price:                   a.Price.ToInt(),
			}
		}
		return NewPoolMarket(registry, reserves), nil

	case ProtocolComptroller:
		positions := make(map[string]ComptrollerPosition, len(f.Assets))
		for _, a := range f.Assets {
			positions[a.Symbol] = ComptrollerPosition{
				ShareBalance:     a.ShareBalance.ToInt(),
				ExchangeRate:     a.ExchangeRate.ToInt(),
				BorrowBalance:    a.BorrowBalance.ToInt(),
				CollateralFactor: a.CollateralFactor.ToInt(),
				Price:            a.Price.ToInt(),
				PriceDecimals:    a.PriceDecimals,
			}
		}
		return NewComptrollerMarket(registry, positions), nil

	case ProtocolBaseAsset:
		if f.BaseAsset == "" {
			return nil, fmt.Errorf("base-asset snapshot missing baseAsset")
		}
		positions := make(map[string]BaseAssetPosition, len(f.Assets))
		var baseBorrow *hexutil.Big
		for _, a := range f.Assets {
			positions[a.Symbol] = BaseAssetPosition{
				Balance:          a.Balance.ToInt(),
				CollateralFactor: a.CollateralFactor.ToInt(),
				Price:            a.Price.ToInt(),
				PriceDecimals:    a.PriceDecimals,
			}
			if a.Symbol == f.BaseAsset {
				baseBorrow = a.BorrowBalance
			}
		}
		if _, ok := registry.Lookup(f.BaseAsset); !ok {
			return nil, fmt.Errorf("base asset %q not in snapshot assets", f.BaseAsset)
		}
		return NewBaseAssetMarket(registry, f.BaseAsset, baseBorrow.ToInt(), positions), nil
	}
	return nil, fmt.Errorf("unknown protocol %q", f.Protocol)
}
