package commands

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"pricetrack/lib/cliutil"
	"pricetrack/lib/configutil"
	"pricetrack/lib/rates"
	"pricetrack/lib/scrapers/newswire"
	"pricetrack/lib/scrapers/storefront"

	"dario.cat/mergo"
	"github.com/shopspring/decimal"
)

type StorefrontConfig struct {
	Url       string `json:"url"`
	UserAgent string `json:"user_agent"`
	// MaxItems caps how many products a run picks up. Set it to -1 to
	// disable the cap.
	MaxItems       int `json:"max_items"`
	TimeoutSeconds int `json:"timeout_seconds"`
}

func (c StorefrontConfig) options() storefront.Options {
	maxItems := c.MaxItems
	if maxItems < 0 {
		maxItems = 0
	}
	return storefront.Options{
		Url:       c.Url,
		UserAgent: c.UserAgent,
		MaxItems:  maxItems,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

type RatesConfig struct {
	Endpoint       string  `json:"endpoint"`
	Base           string  `json:"base"`
	Target         string  `json:"target"`
	FallbackRate   float64 `json:"fallback_rate"`
	TimeoutSeconds int     `json:"timeout_seconds"`
}

func (c RatesConfig) options() rates.Options {
	return rates.Options{
		Endpoint:     c.Endpoint,
		FallbackRate: decimal.NewFromFloat(c.FallbackRate),
		Timeout:      time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

type ExportConfig struct {
	CsvFile  string `json:"csv_file"`
	JsonFile string `json:"json_file"`
}

type NewswireConfig struct {
	Url            string `json:"url"`
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (c NewswireConfig) options() newswire.Options {
	return newswire.Options{
		Url:       c.Url,
		UserAgent: c.UserAgent,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

type Config struct {
	Storefront StorefrontConfig `json:"storefront"`
	Rates      RatesConfig      `json:"rates"`
	Export     ExportConfig     `json:"export"`
	Newswire   NewswireConfig   `json:"newswire"`
}

func defaultConfig() Config {
	return Config{
		Storefront: StorefrontConfig{
			Url:            "http://books.toscrape.com/",
			MaxItems:       10,
			TimeoutSeconds: 10,
		},
		Rates: RatesConfig{
			Endpoint:       "https://open.er-api.com/v6",
			Base:           "GBP",
			Target:         "KES",
			FallbackRate:   175.0,
			TimeoutSeconds: 10,
		},
		Export: ExportConfig{
			CsvFile:  "product_prices_converted.csv",
			JsonFile: "product_prices_converted.json",
		},
		Newswire: NewswireConfig{
			Url:            "https://www.bbc.com/sport/football",
			TimeoutSeconds: 10,
		},
	}
}

// loadConfig reads config.json5 from the working directory and lays it
// over the built-in defaults. A missing file just means defaults.
func loadConfig() Config {
	config := defaultConfig()

	fromFile, err := configutil.ReadConfig[Config]("config.json5")
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config.json5 found, using defaults")
		return config
	}
	if err != nil {
		cliutil.Fatal("failed to read config", err)
	}

	err = mergo.Merge(&config, fromFile, mergo.WithOverride)
	if err != nil {
		cliutil.Fatal("failed to apply config", err)
	}
	return config
}
