// Package calldata selects and parameterizes the on-chain call variant for a
// trade. Selection is a declarative lookup table over the full trade shape
// (protocol, action, exact-in/out, hop count, native legs, max flag),
// evaluated per invocation with no state carried between calls.
package calldata

import (
	"github.com/GoMargin/margin-go-sdk/pkg/markets"
	"github.com/GoMargin/margin-go-sdk/pkg/trade"
)

// Method is the resolved contract-method descriptor for one trade shape.
type Method struct {
	Protocol markets.Protocol
	Action   trade.Action
	Name     string

	MultiHop bool
	// Native marks the wrap/unwrap method variant; its arguments are
	// identical to the plain ERC-20 variant.
	Native bool
	// MaxVariant marks an all-in/all-out method that reads the full balance
	// or debt on-chain instead of taking an amount argument.
	MaxVariant bool
	// SentinelMax marks a method whose own signature accepts a max-uint
	// amount sentinel; the method name does not switch.
	SentinelMax bool
}

// Shape is the lookup key: every input that can change which method is
// called.
type Shape struct {
	Protocol  markets.Protocol
	Action    trade.Action
	Type      trade.Type
	MultiHop  bool
	NativeIn  bool
	NativeOut bool
	UseMax    bool
}

// Each family exposes an isomorphic method set under its own vocabulary.
// A missing action means the family has no such operation: the base-asset
// family has a single borrowable asset, so a debt swap does not exist there.
var baseNames = map[markets.Protocol]map[trade.Action]string{
	markets.ProtocolPool: {
		trade.ActionSupply:         "swapAndSupply",
		trade.ActionWithdraw:       "withdrawAndSwap",
		trade.ActionBorrow:         "borrowAndSwap",
		trade.ActionRepay:          "swapAndRepay",
		trade.ActionOpen:           "openMarginPosition",
		trade.ActionTrim:           "trimMarginPosition",
		trade.ActionCollateralSwap: "swapCollateral",
		trade.ActionDebtSwap:       "swapDebt",
	},
	markets.ProtocolComptroller: {
		trade.ActionSupply:         "swapAndMint",
		trade.ActionWithdraw:       "redeemAndSwap",
		trade.ActionBorrow:         "borrowToSwap",
		trade.ActionRepay:          "swapAndRepayBorrow",
		trade.ActionOpen:           "openLeveredPosition",
		trade.ActionTrim:           "trimLeveredPosition",
		trade.ActionCollateralSwap: "swapCTokenCollateral",
		trade.ActionDebtSwap:       "swapBorrow",
	},
	markets.ProtocolBaseAsset: {
		trade.ActionSupply:         "swapAndSupplyBase",
		trade.ActionWithdraw:       "withdrawBaseAndSwap",
		trade.ActionBorrow:         "borrowBaseAndSwap",
		trade.ActionRepay:          "swapAndRepayBase",
		trade.ActionOpen:           "openBasePosition",
		trade.ActionTrim:           "trimBasePosition",
		trade.ActionCollateralSwap: "swapBaseCollateral",
	},
}

var methodTable map[Shape]Method

func init() {
	methodTable = make(map[Shape]Method)
	protocols := []markets.Protocol{markets.ProtocolPool, markets.ProtocolComptroller, markets.ProtocolBaseAsset}
	bools := []bool{false, true}
	for _, p := range protocols {
		for _, action := range trade.Actions {
			if _, ok := baseNames[p][action]; !ok {
				continue
			}
			for _, tt := range []trade.Type{trade.ExactIn, trade.ExactOut} {
				for _, multiHop := range bools {
					for _, nIn := range bools {
						for _, nOut := range bools {
							for _, useMax := range bools {
								shape := Shape{p, action, tt, multiHop, nIn, nOut, useMax}
								methodTable[shape] = describe(shape)
							}
						}
					}
				}
			}
		}
	}
}

// Resolve maps a trade shape to its method descriptor. The second return
// is false for shapes the protocol family does not support.
func Resolve(shape Shape) (Method, bool) {
	m, ok := methodTable[shape]
	return m, ok
}

// describe derives one descriptor from a shape. The naming rules mirror the
// actual router surfaces: Exact{In,Out} for fixed amounts, All{In,Out} for
// full-balance variants, a Single suffix for one-hop calls, and a Native
// suffix for wrap/unwrap variants.
func describe(s Shape) Method {
	base := baseNames[s.Protocol][s.Action]

	maxVariant := s.UseMax && hasMaxVariant(s.Protocol, s.Action, s.Type)
	sentinel := s.UseMax && usesSentinelMax(s.Protocol, s.Action, s.Type)

	name := base
	dir := "In"
	if s.Type == trade.ExactOut {
		dir = "Out"
	}
	if maxVariant {
		name += "All" + dir
	} else {
		name += "Exact" + dir
	}
	if !s.MultiHop {
		name += "Single"
	}
	native := nativeLeg(s)
	if native {
		name += "Native"
	}

	return Method{
		Protocol:    s.Protocol,
		Action:      s.Action,
		Name:        name,
		MultiHop:    s.MultiHop,
		Native:      native,
		MaxVariant:  maxVariant,
		SentinelMax: sentinel,
	}
}

// hasMaxVariant reports whether useMax switches to a distinct all-in/all-out
// method. Withdraw and trim always have one; repay has one wherever the
// repay signature cannot take a max-uint sentinel, which for the pool family
// is the exact-in side only.
func hasMaxVariant(p markets.Protocol, action trade.Action, tt trade.Type) bool {
	switch action {
	case trade.ActionWithdraw, trade.ActionTrim:
		return true
	case trade.ActionRepay:
		return p != markets.ProtocolPool || tt == trade.ExactIn
	}
	return false
}

// usesSentinelMax reports whether useMax is expressed as a max-uint amount
// argument with no method switch. Only the pool family's repay signature
// accepts the sentinel, and only on the exact-out side where the repaid
// amount is the fixed leg.
func usesSentinelMax(p markets.Protocol, action trade.Action, tt trade.Type) bool {
	return p == markets.ProtocolPool && action == trade.ActionRepay && tt == trade.ExactOut
}

// nativeLeg reports whether the shape's native-asset flags select the
// wrap/unwrap variant. Actions that swap before the protocol operation take
// funds from the user, so the input leg decides; actions that swap after pay
// out to the user, so the output leg decides. Pure in-protocol swaps touch
// only wrapped balances and have no native variant.
func nativeLeg(s Shape) bool {
	switch s.Action {
	case trade.ActionSupply, trade.ActionRepay:
		return s.NativeIn
	case trade.ActionWithdraw, trade.ActionBorrow:
		return s.NativeOut
	}
	return false
}
