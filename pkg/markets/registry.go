package markets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
)

// Registry is the validated asset catalog an adapter is built over.
// Registration is the one place decimal counts are checked: a count above 18
// is a configuration bug and fails construction, so the hot path never
// revisits the question.
type Registry struct {
	bySymbol map[string]Asset
	symbols  []string
}

// NewRegistry builds a registry from the given assets. Duplicate symbols and
// out-of-range decimal counts are rejected.
func NewRegistry(assets ...Asset) (*Registry, error) {
	r := &Registry{bySymbol: make(map[string]Asset, len(assets))}
	for _, a := range assets {
		sym := strings.TrimSpace(a.Symbol)
		if sym == "" {
			return nil, fmt.Errorf("asset with empty symbol")
		}
		if _, dup := r.bySymbol[sym]; dup {
			return nil, fmt.Errorf("duplicate asset %q", sym)
		}
		if err := fixedpoint.CheckDecimals(a.Decimals); err != nil {
			return nil, fmt.Errorf("asset %q: %w", sym, err)
		}
		a.Symbol = sym
		r.bySymbol[sym] = a
		r.symbols = append(r.symbols, sym)
	}
	sort.Strings(r.symbols)
	return r, nil
}

// MustRegistry is NewRegistry for static asset sets known at compile time.
func MustRegistry(assets ...Asset) *Registry {
	r, err := NewRegistry(assets...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the asset registered under symbol.
func (r *Registry) Lookup(symbol string) (Asset, bool) {
	if r == nil {
		return Asset{}, false
	}
	a, ok := r.bySymbol[symbol]
	return a, ok
}

// Symbols returns all registered symbols in deterministic order.
func (r *Registry) Symbols() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}
