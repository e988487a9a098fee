// Package pricefeed streams per-asset oracle prices over WebSocket and keeps
// the latest value per asset. It stands outside the calculation core: the
// core consumes already-fetched prices through the market adapters, and this
// client is one way an integrator keeps those inputs fresh.
package pricefeed

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/GoMargin/margin-go-sdk/pkg/logger"
	"github.com/GoMargin/margin-go-sdk/pkg/sdkerrors"
)

// PriceUpdate is one oracle price tick. The price is an integer at the
// oracle's own decimal precision, which varies per asset.
type PriceUpdate struct {
	Symbol    string `json:"symbol"`
	Price     string `json:"price"` // decimal integer string
	Decimals  uint8  `json:"decimals"`
	Timestamp int64  `json:"timestamp"`
}

// Client is the price feed surface.
type Client interface {
	// Subscribe streams updates for the given symbols (all symbols when
	// empty). The channel closes when the client closes.
	Subscribe(symbols []string) (<-chan PriceUpdate, error)
	// LastPrice returns the most recent price and its decimal count.
	LastPrice(symbol string) (*big.Int, uint8, bool)
	Close() error
}

const defaultStreamBuffer = 100

type clientImpl struct {
	url  string
	cfg  ClientConfig
	log  *slog.Logger
	done chan struct{}

	mu      sync.Mutex
	conn    *websocket.Conn
	closed  bool
	subs    []subscription
	lastMu  sync.RWMutex
	last    map[string]PriceUpdate
}

type subscription struct {
	symbols map[string]struct{} // empty set means all
	ch      chan PriceUpdate
}

// NewClient connects to a price feed endpoint with env-driven config.
func NewClient(rawURL string) (Client, error) {
	return NewClientWithConfig(rawURL, ClientConfigFromEnv())
}

// NewClientWithConfig connects with explicit reconnect/heartbeat settings.
func NewClientWithConfig(rawURL string, cfg ClientConfig) (Client, error) {
	if err := validateFeedURL(rawURL); err != nil {
		return nil, err
	}
	c := &clientImpl{
		url:  rawURL,
		cfg:  cfg.normalize(),
		log:  logger.Default().With("component", "pricefeed"),
		done: make(chan struct{}),
		last: make(map[string]PriceUpdate),
	}
	go c.run()
	go c.pingLoop()
	return c, nil
}

func validateFeedURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	switch parsed.Scheme {
	case "ws", "wss":
	default:
		return errors.New("price feed URL must use ws:// or wss://")
	}
	if parsed.Host == "" {
		return errors.New("price feed URL host is required")
	}
	return nil
}

func (c *clientImpl) Subscribe(symbols []string) (<-chan PriceUpdate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, sdkerrors.ErrFeedClosed
	}
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			return nil, sdkerrors.ErrInvalidSubscription
		}
		set[s] = struct{}{}
	}
	sub := subscription{symbols: set, ch: make(chan PriceUpdate, defaultStreamBuffer)}
	c.subs = append(c.subs, sub)
	return sub.ch, nil
}

func (c *clientImpl) LastPrice(symbol string) (*big.Int, uint8, bool) {
	c.lastMu.RLock()
	u, ok := c.last[strings.ToUpper(symbol)]
	c.lastMu.RUnlock()
	if !ok {
		return nil, 0, false
	}
	price, ok := new(big.Int).SetString(u.Price, 10)
	if !ok {
		return nil, 0, false
	}
	return price, u.Decimals, true
}

func (c *clientImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		c.conn.Close()
	}
	for _, sub := range c.subs {
		close(sub.ch)
	}
	c.subs = nil
	return nil
}

func (c *clientImpl) run() {
	attempts := 0
	for {
		select {
		case <-c.done:
			return
		default:
		}

		conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err != nil {
			attempts++
			if !c.cfg.Reconnect || (c.cfg.ReconnectMax > 0 && attempts > c.cfg.ReconnectMax) {
				c.log.Error("price feed connect failed, giving up", "attempts", attempts, "err", err)
				c.Close()
				return
			}
			c.log.Warn("price feed connect failed, retrying", "attempt", attempts, "err", err)
			select {
			case <-time.After(c.cfg.ReconnectDelay):
			case <-c.done:
				return
			}
			continue
		}
		attempts = 0

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			conn.Close()
			return
		}
		c.conn = conn
		c.mu.Unlock()

		c.readLoop(conn)
		if !c.cfg.Reconnect {
			c.Close()
			return
		}
	}
}

func (c *clientImpl) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.log.Warn("price feed read failed", "err", err)
			}
			return
		}
		var update PriceUpdate
		if err := json.Unmarshal(payload, &update); err != nil || update.Symbol == "" {
			continue
		}
		update.Symbol = strings.ToUpper(update.Symbol)
		c.record(update)
	}
}

func (c *clientImpl) record(update PriceUpdate) {
	c.lastMu.Lock()
	c.last[update.Symbol] = update
	c.lastMu.Unlock()

	// Fan out while holding the lock. Close closes the subscription channels
	// under the same lock, so a send can never hit a closed channel. The
	// sends never block, so holding the lock here is safe.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for _, sub := range c.subs {
		if len(sub.symbols) > 0 {
			if _, ok := sub.symbols[update.Symbol]; !ok {
				continue
			}
		}
		select {
		case sub.ch <- update:
		default:
			// Slow consumer: drop the tick, the cache keeps the latest.
		}
	}
}

func (c *clientImpl) pingLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			conn := c.conn
			c.mu.Unlock()
			if conn != nil {
				conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
			}
		}
	}
}
