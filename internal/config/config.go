package config

import (
	"fmt"
	"time"

	"auction-settlement/internal/finance"

	"github.com/caarlos0/env/v9"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"auction.db"`

	DeliveryFeeBeirut      string `env:"DELIVERY_FEE_BEIRUT" envDefault:"3.00"`
	DeliveryFeeOutside     string `env:"DELIVERY_FEE_OUTSIDE" envDefault:"5.00"`
	PlatformCommissionRate string `env:"PLATFORM_COMMISSION_RATE" envDefault:"0.06"`

	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"60s"`
	SweepBatchLimit int           `env:"SWEEP_BATCH_LIMIT" envDefault:"100"`

	SMTPHost     string `env:"SMTP_HOST"` // email disabled when empty
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@auction.local"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"Auction Platform"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FeeSchedule parses the configured fee strings into the calculator config.
func (c *Config) FeeSchedule() (finance.Config, error) {
	beirut, err := decimal.NewFromString(c.DeliveryFeeBeirut)
	if err != nil {
		return finance.Config{}, fmt.Errorf("invalid DELIVERY_FEE_BEIRUT %q: %w", c.DeliveryFeeBeirut, err)
	}
	outside, err := decimal.NewFromString(c.DeliveryFeeOutside)
	if err != nil {
		return finance.Config{}, fmt.Errorf("invalid DELIVERY_FEE_OUTSIDE %q: %w", c.DeliveryFeeOutside, err)
	}
	rate, err := decimal.NewFromString(c.PlatformCommissionRate)
	if err != nil {
		return finance.Config{}, fmt.Errorf("invalid PLATFORM_COMMISSION_RATE %q: %w", c.PlatformCommissionRate, err)
	}

	return finance.Config{
		DeliveryFeeBeirut:  beirut,
		DeliveryFeeOutside: outside,
		CommissionRate:     rate,
	}, nil
}
