package trade

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// SpecBuilder assembles a Spec with fluent setters and validates it once at
// Build time.
type SpecBuilder struct {
	spec Spec
}

// NewSpecBuilder starts a builder for the given action and trade type.
func NewSpecBuilder(action Action, tradeType Type) *SpecBuilder {
	return &SpecBuilder{spec: Spec{Action: action, Type: tradeType}}
}

// Route sets the pre-computed swap route.
func (b *SpecBuilder) Route(route Route) *SpecBuilder {
	b.spec.Route = route
	return b
}

// AmountIn sets the input amount in the input token's native units.
func (b *SpecBuilder) AmountIn(amount *big.Int) *SpecBuilder {
	b.spec.AmountIn = amount
	return b
}

// AmountOut sets the output amount in the output token's native units.
func (b *SpecBuilder) AmountOut(amount *big.Int) *SpecBuilder {
	b.spec.AmountOut = amount
	return b
}

// SlippageBps sets the slippage tolerance in basis points.
func (b *SpecBuilder) SlippageBps(bps float64) *SpecBuilder {
	b.spec.SlippageBps = decimal.NewFromFloat(bps)
	return b
}

// SlippageBpsDec sets the slippage tolerance from a decimal.
func (b *SpecBuilder) SlippageBpsDec(bps decimal.Decimal) *SpecBuilder {
	b.spec.SlippageBps = bps
	return b
}

// Native marks the input and/or output leg as the chain's native asset.
func (b *SpecBuilder) Native(in, out bool) *SpecBuilder {
	b.spec.NativeIn = in
	b.spec.NativeOut = out
	return b
}

// UseMax requests the full-balance / full-debt variant.
func (b *SpecBuilder) UseMax(useMax bool) *SpecBuilder {
	b.spec.UseMax = useMax
	return b
}

// Pair sets the human-readable currency symbols.
func (b *SpecBuilder) Pair(inSymbol, outSymbol string) *SpecBuilder {
	b.spec.InSymbol = inSymbol
	b.spec.OutSymbol = outSymbol
	return b
}

// Build validates the accumulated fields and returns the trade.
func (b *SpecBuilder) Build() (*Spec, error) {
	s := b.spec
	switch s.Type {
	case ExactIn, ExactOut:
	default:
		return nil, fmt.Errorf("unknown trade type %q", s.Type)
	}
	if len(s.Route.Hops) == 0 {
		return nil, fmt.Errorf("route is required")
	}
	if s.Type == ExactIn && (s.AmountIn == nil || s.AmountIn.Sign() <= 0) && !s.UseMax {
		return nil, fmt.Errorf("exact-in trade requires a positive input amount")
	}
	if s.Type == ExactOut && (s.AmountOut == nil || s.AmountOut.Sign() <= 0) && !s.UseMax {
		return nil, fmt.Errorf("exact-out trade requires a positive output amount")
	}
	if s.SlippageBps.IsNegative() {
		return nil, fmt.Errorf("slippage bps must be >= 0")
	}
	return &s, nil
}
