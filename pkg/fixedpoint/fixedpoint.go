// Package fixedpoint scales raw on-chain integer amounts and oracle prices
// into a common 18-decimal fixed-point representation used by the risk engine.
//
// All math is arbitrary-precision (*big.Int). Division always truncates toward
// zero so that rounding drift biases toward reporting higher risk, never lower.
package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// TargetDecimals is the common fixed-point scale all amounts are normalized to.
const TargetDecimals = 18

var (
	// Wad is 10^18, one unit at the normalized scale.
	Wad = pow10(TargetDecimals)

	// BpsDenominator converts basis-point values to fractions (10000 bps = 100%).
	BpsDenominator = big.NewInt(10_000)

	// MaxUint256 is the sentinel "infinite" value, matching the on-chain
	// convention for a debt-free health factor.
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

var pow10Table [TargetDecimals + 1]*big.Int

func init() {
	for i := range pow10Table {
		pow10Table[i] = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(i)), nil)
	}
}

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// CheckDecimals validates a decimal count at asset-registration time.
// Every supported asset has at most 18 native decimals; anything larger is a
// configuration bug, caught here so it can never reach the hot path.
func CheckDecimals(decimals uint8) error {
	if decimals > TargetDecimals {
		return fmt.Errorf("unsupported decimal count %d: must be <= %d", decimals, TargetDecimals)
	}
	return nil
}

// Scale returns 10^decimals. Panics if decimals > 18; callers are expected to
// have validated the count via CheckDecimals at registration.
func Scale(decimals uint8) *big.Int {
	if decimals > TargetDecimals {
		panic(fmt.Sprintf("fixedpoint: decimal count %d out of range", decimals))
	}
	return pow10Table[decimals]
}

// Normalize scales amount from its native decimal count to 18 decimals by
// multiplying by 10^(18-decimals). The sign of amount is preserved, so signed
// deltas normalize the same way as balances.
func Normalize(amount *big.Int, decimals uint8) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	if decimals > TargetDecimals {
		panic(fmt.Sprintf("fixedpoint: decimal count %d out of range", decimals))
	}
	return new(big.Int).Mul(amount, pow10Table[TargetDecimals-decimals])
}

// NormalizePrice scales an oracle price to 18 decimals. The math is identical
// to Normalize but keyed on the oracle's own decimal count, which differs per
// protocol family.
func NormalizePrice(price *big.Int, priceDecimals uint8) *big.Int {
	return Normalize(price, priceDecimals)
}

// MulDiv returns a*b/denom with truncating division. Returns zero when denom
// is zero rather than panicking; the risk path treats a zero denominator as an
// empty aggregate.
func MulDiv(a, b, denom *big.Int) *big.Int {
	if a == nil || b == nil || denom == nil || denom.Sign() == 0 {
		return new(big.Int)
	}
	prod := new(big.Int).Mul(a, b)
	return prod.Quo(prod, denom)
}

// DecimalFromWad converts an 18-decimal fixed-point integer into a
// shopspring decimal for display.
func DecimalFromWad(x *big.Int) decimal.Decimal {
	if x == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(x, -TargetDecimals)
}
