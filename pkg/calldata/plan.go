package calldata

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/GoMargin/margin-go-sdk/pkg/markets"
	"github.com/GoMargin/margin-go-sdk/pkg/sdkerrors"
	"github.com/GoMargin/margin-go-sdk/pkg/trade"
)

// CallOpts are broadcast options passed through to the backend.
type CallOpts struct {
	GasLimit uint64
	GasPrice *big.Int
	Value    *big.Int
}

// Backend is the external wallet/RPC collaborator that performs gas
// estimation and transaction submission. The dispatcher's contract ends at
// producing the descriptor and closures; it never performs I/O itself.
type Backend interface {
	EstimateGas(ctx context.Context, protocol markets.Protocol, method string, args any) (uint64, error)
	Execute(ctx context.Context, protocol markets.Protocol, method string, args any, opts CallOpts) (common.Hash, error)
}

// CallPlan is one fully-parameterized on-chain call. A plan is built fresh
// per recompute, never mutated afterwards, and consumed at most once; a
// superseding recompute simply produces a new plan and the old one is
// discarded.
//
// An empty plan (no method) means the trade or account was absent, or the
// protocol does not support the requested shape. The UI layer gates
// submission on Empty; nothing here throws.
type CallPlan struct {
	Method Method
	Args   any

	// Estimate asks the backend for a gas estimate. Safe to call repeatedly;
	// stale in-flight estimates are discardable, last result wins.
	Estimate func(ctx context.Context) (uint64, error)
	// Call submits the transaction. A plan may be executed at most once.
	Call func(ctx context.Context, opts CallOpts) (common.Hash, error)
}

// Empty reports whether the plan carries no executable call.
func (p CallPlan) Empty() bool { return p.Method.Name == "" }

// Dispatch selects the contract method for the trade and packages its
// arguments. Missing trade, missing account, an empty route, or an
// unsupported (protocol, action) combination all yield an empty plan.
func Dispatch(protocol markets.Protocol, account *common.Address, t *trade.Spec, backend Backend) CallPlan {
	if t == nil || account == nil || len(t.Route.Hops) == 0 {
		return CallPlan{}
	}
	m, ok := Resolve(Shape{
		Protocol:  protocol,
		Action:    t.Action,
		Type:      t.Type,
		MultiHop:  t.Route.MultiHop(),
		NativeIn:  t.NativeIn,
		NativeOut: t.NativeOut,
		UseMax:    t.UseMax,
	})
	if !ok {
		return CallPlan{}
	}

	args := buildArgs(m, t, *account)
	plan := CallPlan{Method: m, Args: args}

	if backend == nil {
		plan.Estimate = func(context.Context) (uint64, error) { return 0, sdkerrors.ErrNoBackend }
		plan.Call = func(context.Context, CallOpts) (common.Hash, error) {
			return common.Hash{}, sdkerrors.ErrNoBackend
		}
		return plan
	}

	plan.Estimate = func(ctx context.Context) (uint64, error) {
		return backend.EstimateGas(ctx, m.Protocol, m.Name, args)
	}
	var consumed atomic.Bool
	plan.Call = func(ctx context.Context, opts CallOpts) (common.Hash, error) {
		if !consumed.CompareAndSwap(false, true) {
			return common.Hash{}, sdkerrors.ErrPlanConsumed
		}
		return backend.Execute(ctx, m.Protocol, m.Name, args, opts)
	}
	return plan
}
