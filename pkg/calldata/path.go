package calldata

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/GoMargin/margin-go-sdk/pkg/trade"
)

const feeBytes = 3

// EncodePath packs a route into the AMM's path byte string: 20-byte token
// addresses with a 3-byte big-endian fee between each pair. Forward order for
// exact-in; reverse (token order and per-hop fees both reversed) for
// exact-out.
func EncodePath(r trade.Route, reverse bool) []byte {
	n := len(r.Hops)
	if n == 0 {
		return nil
	}
	buf := make([]byte, 0, (n+1)*common.AddressLength+n*feeBytes)

	if !reverse {
		buf = append(buf, r.Hops[0].TokenIn.Bytes()...)
		for _, hop := range r.Hops {
			buf = appendFee(buf, hop.Fee)
			buf = append(buf, hop.TokenOut.Bytes()...)
		}
		return buf
	}

	buf = append(buf, r.Hops[n-1].TokenOut.Bytes()...)
	for i := n - 1; i >= 0; i-- {
		buf = appendFee(buf, r.Hops[i].Fee)
		buf = append(buf, r.Hops[i].TokenIn.Bytes()...)
	}
	return buf
}

func appendFee(buf []byte, fee uint32) []byte {
	return append(buf, byte(fee>>16), byte(fee>>8), byte(fee))
}
