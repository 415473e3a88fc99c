package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"lob/domain/orderbook"
)

const (
	envPrefix       = "LOB"
	DefaultCapacity = 100_000
	DefaultLogLevel = "info"
)

// Config describes one book and the service around it.
type Config struct {
	Symbol      string `mapstructure:"symbol" yaml:"symbol" validate:"required"`
	Capacity    int    `mapstructure:"capacity" yaml:"capacity" validate:"gt=0"`
	LevelIndex  bool   `mapstructure:"level_index" yaml:"level_index"`
	TradeBuffer int    `mapstructure:"trade_buffer" yaml:"trade_buffer" validate:"gte=0"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Default returns a valid config for symbol.
func Default(symbol string) Config {
	return Config{
		Symbol:   symbol,
		Capacity: DefaultCapacity,
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BookOptions translates the config into orderbook options.
func (c Config) BookOptions() []orderbook.Option {
	var opts []orderbook.Option
	if c.LevelIndex {
		opts = append(opts, orderbook.WithLevelIndex())
	}
	if c.TradeBuffer > 0 {
		opts = append(opts, orderbook.WithTradeBuffer(c.TradeBuffer))
	}
	return opts
}

// Load reads a YAML file, applies LOB_* environment overrides and
// defaults, and validates the result. An empty path reads only the
// environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("capacity", DefaultCapacity)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("level_index", false)
	v.SetDefault("trade_buffer", 0)
	// Keys without a default are only seen by Unmarshal once bound.
	if err := v.BindEnv("symbol"); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
