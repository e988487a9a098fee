// Package sdkerrors defines the sentinel errors shared across the SDK.
// The calculation core itself never returns these for expected missing-data
// conditions (it returns zero values instead); they surface at the SDK
// boundary: configuration, dispatch execution, and the price feed.
package sdkerrors

import "errors"

var (
	// ErrNoBackend is returned by a CallPlan's estimate/execute closures when
	// the dispatcher was built without a contract backend.
	ErrNoBackend = errors.New("no contract backend configured")

	// ErrPlanConsumed is returned when a CallPlan's executor is invoked more
	// than once.
	ErrPlanConsumed = errors.New("call plan already consumed")

	// ErrInvalidConfig marks a configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFeedClosed is returned by price feed operations after Close.
	ErrFeedClosed = errors.New("price feed closed")

	// ErrInvalidSubscription marks a malformed price feed subscription.
	ErrInvalidSubscription = errors.New("invalid subscription")
)
