package calldata

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
	"github.com/GoMargin/margin-go-sdk/pkg/trade"
)

// Single-hop calls take a flat parameter struct; multi-hop calls take the
// packed path. Exact-in carries a minimum-output floor, exact-out a
// maximum-input ceiling. All-in/all-out variants read the amount on-chain and
// keep only the slippage bound.

type ExactInSingleParams struct {
	TokenIn          common.Address
	TokenOut         common.Address
	Fee              uint32
	Recipient        common.Address
	AmountIn         *big.Int
	AmountOutMinimum *big.Int
}

type ExactOutSingleParams struct {
	TokenIn         common.Address
	TokenOut        common.Address
	Fee             uint32
	Recipient       common.Address
	AmountOut       *big.Int
	AmountInMaximum *big.Int
}

type ExactInParams struct {
	Path             []byte
	Recipient        common.Address
	AmountIn         *big.Int
	AmountOutMinimum *big.Int
}

type ExactOutParams struct {
	Path            []byte
	Recipient       common.Address
	AmountOut       *big.Int
	AmountInMaximum *big.Int
}

type AllInSingleParams struct {
	TokenIn          common.Address
	TokenOut         common.Address
	Fee              uint32
	Recipient        common.Address
	AmountOutMinimum *big.Int
}

type AllOutSingleParams struct {
	TokenIn         common.Address
	TokenOut        common.Address
	Fee             uint32
	Recipient       common.Address
	AmountInMaximum *big.Int
}

type AllInParams struct {
	Path             []byte
	Recipient        common.Address
	AmountOutMinimum *big.Int
}

type AllOutParams struct {
	Path            []byte
	Recipient       common.Address
	AmountInMaximum *big.Int
}

// buildArgs encodes the argument structure for a resolved method.
func buildArgs(m Method, t *trade.Spec, account common.Address) any {
	route := t.Route
	exactIn := t.Type == trade.ExactIn

	switch {
	case m.MaxVariant && exactIn && !m.MultiHop:
		return AllInSingleParams{
			TokenIn:          route.TokenIn(),
			TokenOut:         route.TokenOut(),
			Fee:              route.Hops[0].Fee,
			Recipient:        account,
			AmountOutMinimum: t.MinimumAmountOut(),
		}
	case m.MaxVariant && exactIn:
		return AllInParams{
			Path:             EncodePath(route, false),
			Recipient:        account,
			AmountOutMinimum: t.MinimumAmountOut(),
		}
	case m.MaxVariant && !m.MultiHop:
		return AllOutSingleParams{
			TokenIn:         route.TokenIn(),
			TokenOut:        route.TokenOut(),
			Fee:             route.Hops[0].Fee,
			Recipient:       account,
			AmountInMaximum: t.MaximumAmountIn(),
		}
	case m.MaxVariant:
		return AllOutParams{
			Path:            EncodePath(route, true),
			Recipient:       account,
			AmountInMaximum: t.MaximumAmountIn(),
		}
	case exactIn && !m.MultiHop:
		return ExactInSingleParams{
			TokenIn:          route.TokenIn(),
			TokenOut:         route.TokenOut(),
			Fee:              route.Hops[0].Fee,
			Recipient:        account,
			AmountIn:         amountOrZero(t.AmountIn),
			AmountOutMinimum: t.MinimumAmountOut(),
		}
	case exactIn:
		return ExactInParams{
			Path:             EncodePath(route, false),
			Recipient:        account,
			AmountIn:         amountOrZero(t.AmountIn),
			AmountOutMinimum: t.MinimumAmountOut(),
		}
	case !m.MultiHop:
		return ExactOutSingleParams{
			TokenIn:         route.TokenIn(),
			TokenOut:        route.TokenOut(),
			Fee:             route.Hops[0].Fee,
			Recipient:       account,
			AmountOut:       exactOutAmount(m, t),
			AmountInMaximum: t.MaximumAmountIn(),
		}
	default:
		return ExactOutParams{
			Path:            EncodePath(route, true),
			Recipient:       account,
			AmountOut:       exactOutAmount(m, t),
			AmountInMaximum: t.MaximumAmountIn(),
		}
	}
}

// exactOutAmount applies the max-uint sentinel for methods whose signature
// accepts it.
func exactOutAmount(m Method, t *trade.Spec) *big.Int {
	if m.SentinelMax && t.UseMax {
		return new(big.Int).Set(fixedpoint.MaxUint256)
	}
	return amountOrZero(t.AmountOut)
}

func amountOrZero(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return x
}
