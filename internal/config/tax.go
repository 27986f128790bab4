package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// TaxConfig carries the jurisdiction tax defaults used when no
// persisted tax rule applies. Rates are decimal strings so they stay
// exact end to end.
type TaxConfig struct {
	// ExcisePerLiter is the VA wine excise rate in dollars per liter.
	ExcisePerLiter string `mapstructure:"excisePerLiter"`
	// SalesRate is the VA retail sales tax rate as a fraction.
	SalesRate string `mapstructure:"salesRate"`
	// MonthlyInterestRate is the late-payment finance charge per month.
	MonthlyInterestRate string `mapstructure:"monthlyInterestRate"`
}

// DefaultTaxConfig returns the compiled-in VA rates.
func DefaultTaxConfig() TaxConfig {
	return TaxConfig{
		ExcisePerLiter:      "0.40",
		SalesRate:           "0.053",
		MonthlyInterestRate: "0.015",
	}
}

// TaxConfigHolder exposes the current tax config and hot-reloads it
// when the mounted file changes.
type TaxConfigHolder struct {
	current atomic.Value // holds TaxConfig
}

// NewTaxConfigHolder loads tax.yml if present, falling back to the
// compiled-in defaults, and watches the file for changes.
func NewTaxConfigHolder() (*TaxConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("tax")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/invoicing/config")
	v.AddConfigPath("/etc/invoicing")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INVOICING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultTaxConfig()
		v.SetDefault("tax.excisePerLiter", defaults.ExcisePerLiter)
		v.SetDefault("tax.salesRate", defaults.SalesRate)
		v.SetDefault("tax.monthlyInterestRate", defaults.MonthlyInterestRate)
	}

	var cfg TaxConfig
	if err := v.UnmarshalKey("tax", &cfg); err != nil {
		return nil, err
	}
	applyTaxDefaults(&cfg)
	if err := validateTaxConfig(cfg); err != nil {
		return nil, err
	}

	holder := &TaxConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated TaxConfig
		if err := v.UnmarshalKey("tax", &updated); err != nil {
			log.Printf("[tax-config] reload failed: %v", err)
			return
		}
		applyTaxDefaults(&updated)
		if err := validateTaxConfig(updated); err != nil {
			log.Printf("[tax-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[tax-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// Get returns the current tax config snapshot.
func (h *TaxConfigHolder) Get() TaxConfig {
	return h.current.Load().(TaxConfig)
}

func applyTaxDefaults(cfg *TaxConfig) {
	defaults := DefaultTaxConfig()
	if strings.TrimSpace(cfg.ExcisePerLiter) == "" {
		cfg.ExcisePerLiter = defaults.ExcisePerLiter
	}
	if strings.TrimSpace(cfg.SalesRate) == "" {
		cfg.SalesRate = defaults.SalesRate
	}
	if strings.TrimSpace(cfg.MonthlyInterestRate) == "" {
		cfg.MonthlyInterestRate = defaults.MonthlyInterestRate
	}
}

func validateTaxConfig(cfg TaxConfig) error {
	for _, raw := range []string{cfg.ExcisePerLiter, cfg.SalesRate, cfg.MonthlyInterestRate} {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return errors.New("tax config rate is not a decimal: " + raw)
		}
		if rate.IsNegative() {
			return errors.New("tax config rate is negative: " + raw)
		}
	}
	return nil
}
