// Package trade defines the trade object consumed by the calldata
// dispatcher: action, exact-in/out type, route, amounts, and slippage
// bounds. Routes arrive pre-computed from an external quote subsystem.
package trade

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Action is the protocol-side operation a trade performs.
type Action string

const (
	ActionSupply         Action = "SUPPLY"
	ActionWithdraw       Action = "WITHDRAW"
	ActionBorrow         Action = "BORROW"
	ActionRepay          Action = "REPAY"
	ActionOpen           Action = "OPEN"
	ActionTrim           Action = "TRIM"
	ActionCollateralSwap Action = "COLLATERAL_SWAP"
	ActionDebtSwap       Action = "DEBT_SWAP"
)

// Actions lists every trade action.
var Actions = []Action{
	ActionSupply, ActionWithdraw, ActionBorrow, ActionRepay,
	ActionOpen, ActionTrim, ActionCollateralSwap, ActionDebtSwap,
}

// Type fixes which leg of the swap is exact.
type Type string

const (
	// ExactIn fixes the input amount; the output carries a minimum floor.
	ExactIn Type = "EXACT_IN"
	// ExactOut fixes the output amount; the input carries a maximum ceiling.
	ExactOut Type = "EXACT_OUT"
)

// Hop is one pool in a swap route.
type Hop struct {
	TokenIn  common.Address
	TokenOut common.Address
	// Fee is the pool fee in hundredths of a bip, as the AMM encodes it
	// per hop.
	Fee uint32
}

// Route is an ordered list of hops from input token to output token.
type Route struct {
	Hops []Hop
}

// TokenIn returns the route's input token.
func (r Route) TokenIn() common.Address {
	if len(r.Hops) == 0 {
		return common.Address{}
	}
	return r.Hops[0].TokenIn
}

// TokenOut returns the route's output token.
func (r Route) TokenOut() common.Address {
	if len(r.Hops) == 0 {
		return common.Address{}
	}
	return r.Hops[len(r.Hops)-1].TokenOut
}

// MultiHop reports whether the route crosses more than one pool.
func (r Route) MultiHop() bool { return len(r.Hops) > 1 }

// Spec is a fully-specified candidate trade, produced by the external
// route/quote subsystem and consumed by the dispatcher and delta projector.
type Spec struct {
	Action Action
	Type   Type
	Route  Route

	// AmountIn and AmountOut are quoted amounts in the respective token's
	// native units. For ExactIn, AmountOut is the quote; for ExactOut,
	// AmountIn is.
	AmountIn  *big.Int
	AmountOut *big.Int

	SlippageBps decimal.Decimal

	NativeIn  bool
	NativeOut bool
	// UseMax requests the full-balance / full-debt variant of the operation.
	UseMax bool

	InSymbol  string
	OutSymbol string
}

var bpsDenom = decimal.New(10_000, 0)

// MinimumAmountOut is the exact-in output floor after slippage, truncated.
func (s *Spec) MinimumAmountOut() *big.Int {
	if s == nil || s.AmountOut == nil {
		return new(big.Int)
	}
	out := decimal.NewFromBigInt(s.AmountOut, 0)
	floor := out.Mul(bpsDenom.Sub(s.SlippageBps)).Div(bpsDenom)
	return floor.Floor().BigInt()
}

// MaximumAmountIn is the exact-out input ceiling after slippage, rounded up.
func (s *Spec) MaximumAmountIn() *big.Int {
	if s == nil || s.AmountIn == nil {
		return new(big.Int)
	}
	in := decimal.NewFromBigInt(s.AmountIn, 0)
	ceil := in.Mul(bpsDenom.Add(s.SlippageBps)).Div(bpsDenom)
	return ceil.Ceil().BigInt()
}

// PairKey identifies the trade's currency pair for memoization.
func (s *Spec) PairKey() string {
	if s == nil {
		return ""
	}
	return s.InSymbol + "/" + s.OutSymbol
}
