package margin

import (
	"errors"
	"testing"

	"github.com/GoMargin/margin-go-sdk/pkg/sdkerrors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TradeMemoSize <= 0 {
		t.Errorf("default trade memo size should be positive")
	}
	if cfg.TradeMemoMaxAge <= 0 {
		t.Errorf("default trade memo max age should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TradeMemoSize = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("negative memo size should fail validation")
	}
	if !errors.Is(err, sdkerrors.ErrInvalidConfig) {
		t.Errorf("validation error should wrap ErrInvalidConfig, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.TradeMemoMaxAge = -1
	if err := cfg.Validate(); !errors.Is(err, sdkerrors.ErrInvalidConfig) {
		t.Errorf("negative max age error = %v, want ErrInvalidConfig", err)
	}
}
