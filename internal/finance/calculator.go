package finance

import (
	model "auction-settlement/internal/models"
	"auction-settlement/utils"

	"github.com/shopspring/decimal"
)

// Config holds the fee schedule used when settling an auction.
type Config struct {
	DeliveryFeeBeirut  decimal.Decimal
	DeliveryFeeOutside decimal.Decimal
	CommissionRate     decimal.Decimal
}

// DefaultConfig returns the platform's standard fee schedule.
func DefaultConfig() Config {
	return Config{
		DeliveryFeeBeirut:  decimal.RequireFromString("3.00"),
		DeliveryFeeOutside: decimal.RequireFromString("5.00"),
		CommissionRate:     decimal.RequireFromString("0.06"),
	}
}

// Breakdown is the full financial outcome of one settled auction.
// TotalCollected is what the buyer owes, SellerPayout what the seller receives.
type Breakdown struct {
	FinalBidAmount     decimal.Decimal `json:"final_bid_amount"`
	DeliveryFee        decimal.Decimal `json:"delivery_fee"`
	PlatformCommission decimal.Decimal `json:"platform_commission"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	SellerPayout       decimal.Decimal `json:"seller_payout"`
}

// Calculator computes the buyer/seller/platform money split for a winning bid.
// All arithmetic is exact decimal arithmetic; nothing is rounded.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a Calculator with the given fee schedule.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// DeliveryFee returns the flat delivery fee for a buyer location.
// Unrecognized locations are billed at the outside-Beirut tier; the fallback
// is logged so bad location data stays visible.
func (c *Calculator) DeliveryFee(location string) decimal.Decimal {
	switch location {
	case model.LocationBeirut:
		return c.cfg.DeliveryFeeBeirut
	case model.LocationOutsideBeirut:
		return c.cfg.DeliveryFeeOutside
	default:
		utils.Warn("unrecognized buyer location, billing outside-Beirut delivery fee", map[string]any{
			"location": location,
		})
		return c.cfg.DeliveryFeeOutside
	}
}

// PlatformCommission returns the platform's cut of a winning bid amount.
func (c *Calculator) PlatformCommission(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.cfg.CommissionRate)
}

// TotalCollected returns the amount owed by the buyer: bid plus delivery fee.
func (c *Calculator) TotalCollected(amount decimal.Decimal, location string) decimal.Decimal {
	return amount.Add(c.DeliveryFee(location))
}

// SellerPayout returns the amount owed to the seller after commission.
func (c *Calculator) SellerPayout(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(c.PlatformCommission(amount))
}

// Calculate returns the complete financial breakdown for a winning bid.
func (c *Calculator) Calculate(amount decimal.Decimal, location string) Breakdown {
	fee := c.DeliveryFee(location)
	commission := c.PlatformCommission(amount)

	return Breakdown{
		FinalBidAmount:     amount,
		DeliveryFee:        fee,
		PlatformCommission: commission,
		TotalCollected:     amount.Add(fee),
		SellerPayout:       amount.Sub(commission),
	}
}
