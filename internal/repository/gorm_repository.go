package repository

import (
	"errors"
	"fmt"
	"time"

	"auction-settlement/internal/auctionerrors"
	model "auction-settlement/internal/models"

	"gorm.io/gorm"
)

// GormRepo is the database-backed implementation of AuctionDB.
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo creates a repository on top of an open gorm connection
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) AddUser(user model.User) error {
	return r.db.Create(&user).Error
}

func (r *GormRepo) GetUser(userID string) (model.User, error) {
	var user model.User
	if err := r.db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *GormRepo) AddAuction(auction model.Auction) error {
	return r.db.Create(&auction).Error
}

func (r *GormRepo) GetAuction(auctionID string) (model.Auction, error) {
	var auction model.Auction
	if err := r.db.First(&auction, "auction_id = ?", auctionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}
		return model.Auction{}, err
	}
	return auction, nil
}

// RecordBidForAuction inserts the bid and bumps current_bid in one
// transaction. The bump is conditional so current_bid never decreases.
func (r *GormRepo) RecordBidForAuction(bid model.Bid) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var auction model.Auction
		if err := tx.First(&auction, "auction_id = ?", bid.AuctionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
			}
			return err
		}

		if err := tx.Create(&bid).Error; err != nil {
			return err
		}

		return tx.Model(&model.Auction{}).
			Where("auction_id = ? AND current_bid < ?", bid.AuctionID, bid.Amount).
			Update("current_bid", bid.Amount).Error
	})
}

func (r *GormRepo) GetBidsByAuction(auctionID string) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.db.Where("auction_id = ?", auctionID).Order("created_at ASC").Find(&bids).Error; err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// GetWinningBid returns the highest bid; equal amounts are broken by
// earliest created_at.
func (r *GormRepo) GetWinningBid(auctionID string) (model.Bid, error) {
	var bid model.Bid
	err := r.db.Where("auction_id = ?", auctionID).
		Order("amount DESC").Order("created_at ASC").
		First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
		}
		return model.Bid{}, err
	}
	return bid, nil
}

func (r *GormRepo) GetAuctionsByUser(userID string) ([]model.Auction, error) {
	var auctions []model.Auction
	err := r.db.
		Where("auction_id IN (?)", r.db.Model(&model.Bid{}).Select("DISTINCT auction_id").Where("user_id = ?", userID)).
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	if len(auctions) == 0 {
		return nil, fmt.Errorf("get auctions for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}
	return auctions, nil
}

// FindDueAuctions returns ACTIVE auctions past their end time, oldest
// deadline first. A positive limit caps the batch.
func (r *GormRepo) FindDueAuctions(now time.Time, limit int) ([]model.Auction, error) {
	q := r.db.
		Where("status = ? AND auction_end <= ?", model.StatusActive, now).
		Order("auction_end ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var due []model.Auction
	if err := q.Find(&due).Error; err != nil {
		return nil, err
	}
	return due, nil
}

func (r *GormRepo) LoadAuctionForSettlement(auctionID string) (model.SettlementView, error) {
	auction, err := r.GetAuction(auctionID)
	if err != nil {
		return model.SettlementView{}, err
	}

	view := model.SettlementView{
		Auction: auction,
		Seller:  r.userOrStub(auction.SellerID),
	}

	top, err := r.GetWinningBid(auctionID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			return view, nil
		}
		return model.SettlementView{}, err
	}

	winner := r.userOrStub(top.UserID)
	view.TopBid = &top
	view.Winner = &winner
	return view, nil
}

func (r *GormRepo) userOrStub(userID string) model.User {
	user, err := r.GetUser(userID)
	if err != nil {
		return model.User{UserID: userID}
	}
	return user
}

// CommitSettlement applies the patch with a conditional UPDATE guarded on
// status = ACTIVE. Zero rows affected means another writer settled first
// (or the auction does not exist), never a partial write.
func (r *GormRepo) CommitSettlement(auctionID string, patch model.SettlementPatch) error {
	updates := map[string]any{
		"status": patch.Status,
	}
	if patch.WinnerID != nil {
		updates["winner_id"] = *patch.WinnerID
	}
	if patch.FinalBidAmount != nil {
		updates["final_bid_amount"] = *patch.FinalBidAmount
	}
	if patch.DeliveryFee != nil {
		updates["delivery_fee"] = *patch.DeliveryFee
	}
	if patch.PlatformCommission != nil {
		updates["platform_commission"] = *patch.PlatformCommission
	}
	if patch.TotalCollected != nil {
		updates["total_collected"] = *patch.TotalCollected
	}
	if patch.SellerPayout != nil {
		updates["seller_payout"] = *patch.SellerPayout
	}
	if patch.DeliveryStatus != nil {
		updates["delivery_status"] = *patch.DeliveryStatus
	}

	res := r.db.Model(&model.Auction{}).
		Where("auction_id = ? AND status = ?", auctionID, model.StatusActive).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetAuction(auctionID); err != nil {
			return err
		}
		return fmt.Errorf("commit settlement for auction %s: %w", auctionID, auctionerrors.ErrAlreadySettled)
	}
	return nil
}
