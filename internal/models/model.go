package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction listing
type AuctionStatus string

const (
	StatusActive    AuctionStatus = "ACTIVE"
	StatusEnded     AuctionStatus = "ENDED"
	StatusCancelled AuctionStatus = "CANCELLED"
)

// DeliveryStatus tracks the post-settlement delivery workflow
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "PENDING"
)

// Buyer location buckets for the flat delivery fee table
const (
	LocationBeirut        = "Beirut"
	LocationOutsideBeirut = "Outside Beirut"
)

// User represents a participant in the marketplace (seller or bidder)
type User struct {
	UserID   string `json:"user_id" gorm:"primaryKey;column:user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Auction represents a sellable listing with a bidding window.
// Settlement fields stay nil until the auction is settled.
type Auction struct {
	AuctionID   string          `json:"auction_id" gorm:"primaryKey;column:auction_id"`
	SellerID    string          `json:"seller_id" gorm:"index"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartingBid decimal.Decimal `json:"starting_bid" gorm:"type:numeric(20,2)"`
	CurrentBid  decimal.Decimal `json:"current_bid" gorm:"type:numeric(20,2)"`
	AuctionEnd  time.Time       `json:"auction_end" gorm:"index"`
	Status      AuctionStatus   `json:"status" gorm:"type:varchar(16);index"`

	WinnerID           *string          `json:"winner_id,omitempty"`
	FinalBidAmount     *decimal.Decimal `json:"final_bid_amount,omitempty" gorm:"type:numeric(20,2)"`
	DeliveryFee        *decimal.Decimal `json:"delivery_fee,omitempty" gorm:"type:numeric(20,2)"`
	PlatformCommission *decimal.Decimal `json:"platform_commission,omitempty" gorm:"type:numeric(20,2)"`
	TotalCollected     *decimal.Decimal `json:"total_collected,omitempty" gorm:"type:numeric(20,2)"`
	SellerPayout       *decimal.Decimal `json:"seller_payout,omitempty" gorm:"type:numeric(20,2)"`
	DeliveryStatus     *DeliveryStatus  `json:"delivery_status,omitempty" gorm:"type:varchar(16)"`

	CreatedAt time.Time `json:"created_at"`
}

// Bid represents a user's bid on an auction. Bids are append-only.
type Bid struct {
	BidID     string          `json:"bid_id" gorm:"primaryKey;column:bid_id"`
	AuctionID string          `json:"auction_id" gorm:"index"`
	UserID    string          `json:"user_id" gorm:"index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(20,2)"`
	CreatedAt time.Time       `json:"created_at"`
}

// SettlementView bundles everything the settlement engine needs to close
// one auction: the auction row, its seller, and the top bid with its bidder.
// TopBid and Winner are nil when the auction received no bids.
type SettlementView struct {
	Auction Auction
	Seller  User
	TopBid  *Bid
	Winner  *User
}

// SettlementPatch is the write side of a settlement: the fields applied to
// the auction row, guarded on the status still being ACTIVE at write time.
type SettlementPatch struct {
	Status             AuctionStatus
	WinnerID           *string
	FinalBidAmount     *decimal.Decimal
	DeliveryFee        *decimal.Decimal
	PlatformCommission *decimal.Decimal
	TotalCollected     *decimal.Decimal
	SellerPayout       *decimal.Decimal
	DeliveryStatus     *DeliveryStatus
}
