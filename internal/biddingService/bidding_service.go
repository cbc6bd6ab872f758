package bidding

import (
	"errors"
	"fmt"
	"time"

	"auction-settlement/internal/auctionerrors"
	"auction-settlement/internal/models"
	"auction-settlement/internal/repository"
	"auction-settlement/utils"

	"github.com/shopspring/decimal"
)

// BiddingService defines the business logic for placing and querying bids
type BiddingService struct {
	repo repository.AuctionDB
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB) *BiddingService {
	return &BiddingService{
		repo: repo,
	}
}

// PlaceBid validates and records a user's bid for an auction
func (s *BiddingService) PlaceBid(auctionID, userID string, amount decimal.Decimal) (models.Bid, error) {
	if err := s.validateBid(auctionID, userID, amount); err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.RecordBidForAuction(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by user %s: %w", auctionID, userID, err)
	}

	return bid, nil
}

// validateBid checks input validity and business rules for bidding
func (s *BiddingService) validateBid(auctionID, userID string, amount decimal.Decimal) error {
	if auctionID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing auctionID or userID", auctionerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("service: failed to load auction: %w", err)
	}
	if auction.Status != models.StatusActive {
		return fmt.Errorf("service: %w - auction status is %s", auctionerrors.ErrAuctionClosed, auction.Status)
	}
	if !auction.AuctionEnd.After(time.Now().UTC()) {
		return fmt.Errorf("service: %w - auction ended at %s", auctionerrors.ErrBiddingExpired, auction.AuctionEnd.Format(time.RFC3339))
	}
	if amount.LessThan(auction.StartingBid) {
		return fmt.Errorf("service: %w - starting bid is %s", auctionerrors.ErrBidTooLow, auction.StartingBid.StringFixed(2))
	}

	winningBid, err := s.repo.GetWinningBid(auctionID)
	if err == nil {
		if !amount.GreaterThan(winningBid.Amount) {
			return fmt.Errorf("service: %w - current highest bid is %s", auctionerrors.ErrBidTooLow, winningBid.Amount.StringFixed(2))
		}
	} else if !errors.Is(err, auctionerrors.ErrNoBids) {
		return fmt.Errorf("service: failed to check winning bid: %w", err)
	}

	return nil
}

// GetBidsForAuction returns all bids for a specific auction
func (s *BiddingService) GetBidsForAuction(auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}

	return bids, nil
}

// GetWinningBid returns the highest bid for a specific auction
func (s *BiddingService) GetWinningBid(auctionID string) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	winningBid, err := s.repo.GetWinningBid(auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %s: %w", auctionID, err)
	}

	return winningBid, nil
}

// GetAuctionsByUser returns all auctions a user has placed bids on
func (s *BiddingService) GetAuctionsByUser(userID string) ([]models.Auction, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidBid)
	}

	auctions, err := s.repo.GetAuctionsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auctions for user %s: %w", userID, err)
	}

	return auctions, nil
}

// GetAuction returns a single auction, including settlement fields once settled
func (s *BiddingService) GetAuction(auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}

	return auction, nil
}
