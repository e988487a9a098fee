// Package margin is the root client of the margin SDK. It bundles the risk
// engine, the calldata dispatcher, and the optional price feed behind one
// configuration, mirroring how an integrating front end consumes them.
package margin

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/GoMargin/margin-go-sdk/pkg/calldata"
	"github.com/GoMargin/margin-go-sdk/pkg/markets"
	"github.com/GoMargin/margin-go-sdk/pkg/pricefeed"
	"github.com/GoMargin/margin-go-sdk/pkg/risk"
	"github.com/GoMargin/margin-go-sdk/pkg/trade"
)

// Client aggregates SDK services behind a shared configuration.
type Client struct {
	Config Config

	PriceFeed pricefeed.Client
	Backend   calldata.Backend

	InitErrors []error
}

// InitError records a non-fatal client initialization failure for a
// sub-service.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s client: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Option overrides part of the client configuration.
type Option func(*Client)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Client) { c.Config = cfg }
}

// WithPriceFeed injects a pre-built price feed client.
func WithPriceFeed(feed pricefeed.Client) Option {
	return func(c *Client) { c.PriceFeed = feed }
}

// WithPriceFeedURL overrides the feed endpoint.
func WithPriceFeedURL(url string) Option {
	return func(c *Client) { c.Config.PriceFeedURL = url }
}

// WithBackend injects the wallet/RPC collaborator used by call plans.
func WithBackend(backend calldata.Backend) Option {
	return func(c *Client) { c.Backend = backend }
}

// NewClient creates a root client with optional overrides.
func NewClient(opts ...Option) *Client {
	c, _ := newClient(false, opts...)
	return c
}

// NewClientE creates a root client and returns an aggregated error if any
// sub-service fails to initialize.
func NewClientE(opts ...Option) (*Client, error) {
	return newClient(true, opts...)
}

func newClient(strict bool, opts ...Option) (*Client, error) {
	c := &Client{Config: DefaultConfig()}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Config.Validate(); err != nil {
		c.InitErrors = append(c.InitErrors, &InitError{Component: "config", Err: err})
	}

	if c.PriceFeed == nil && c.Config.PriceFeedURL != "" {
		feed, err := pricefeed.NewClientWithConfig(c.Config.PriceFeedURL, c.Config.PriceFeedConfig)
		if err != nil {
			c.InitErrors = append(c.InitErrors, &InitError{Component: "pricefeed", Err: err})
		} else {
			c.PriceFeed = feed
		}
	}

	if strict && len(c.InitErrors) > 0 {
		return c, errors.Join(c.InitErrors...)
	}
	return c, nil
}

// Snapshot aggregates the account's positions on the given adapter. Returns
// nil when no account is connected (nil adapter).
func (c *Client) Snapshot(adapter markets.Adapter) *risk.RiskSnapshot {
	return risk.Aggregate(adapter)
}

// ProjectTrade projects one or two deltas onto a snapshot.
func (c *Client) ProjectTrade(snapshot *risk.RiskSnapshot, d0, d1 *risk.AssetDelta) risk.TradeImpact {
	return risk.Project(snapshot, d0, d1)
}

// PlanTrade builds the call plan for a candidate trade using the configured
// backend.
func (c *Client) PlanTrade(protocol markets.Protocol, account *common.Address, spec *trade.Spec) calldata.CallPlan {
	return calldata.Dispatch(protocol, account, spec, c.Backend)
}

// NewTradeMemo creates a caller-owned last-valid-trade cache sized per the
// client configuration.
func (c *Client) NewTradeMemo() *trade.Memo {
	return trade.NewMemo(c.Config.TradeMemoSize, c.Config.TradeMemoMaxAge)
}
