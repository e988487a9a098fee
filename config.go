package margin

import (
	"fmt"
	"time"

	"github.com/GoMargin/margin-go-sdk/pkg/pricefeed"
	"github.com/GoMargin/margin-go-sdk/pkg/sdkerrors"
)

// Config holds shared SDK configuration.
type Config struct {
	// PriceFeedURL enables the streaming price feed when non-empty.
	PriceFeedURL    string
	PriceFeedConfig pricefeed.ClientConfig

	// TradeMemoSize bounds the last-valid-trade cache; TradeMemoMaxAge is
	// its staleness window.
	TradeMemoSize   int
	TradeMemoMaxAge time.Duration
}

// DefaultConfig returns defaults suitable for interactive use. The price
// feed stays disabled until an endpoint is configured.
func DefaultConfig() Config {
	return Config{
		PriceFeedURL:    "",
		PriceFeedConfig: pricefeed.ClientConfigFromEnv(),
		TradeMemoSize:   32,
		TradeMemoMaxAge: 30 * time.Second,
	}
}

// Validate rejects configurations the SDK cannot run with. Failures wrap
// sdkerrors.ErrInvalidConfig.
func (c Config) Validate() error {
	if c.TradeMemoSize < 0 {
		return fmt.Errorf("%w: trade memo size must be >= 0", sdkerrors.ErrInvalidConfig)
	}
	if c.TradeMemoMaxAge < 0 {
		return fmt.Errorf("%w: trade memo max age must be >= 0", sdkerrors.ErrInvalidConfig)
	}
	return nil
}
