package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-settlement/internal/auctionerrors"
	model "auction-settlement/internal/models"
)

// AuctionDB defines the storage interface for the auction marketplace.
// The settlement engine only uses FindDueAuctions, LoadAuctionForSettlement
// and CommitSettlement; the rest serves bidding and the read API.
type AuctionDB interface {
	AddUser(user model.User) error
	GetUser(userID string) (model.User, error)
	AddAuction(auction model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	RecordBidForAuction(bid model.Bid) error
	GetBidsByAuction(auctionID string) ([]model.Bid, error)
	GetWinningBid(auctionID string) (model.Bid, error)
	GetAuctionsByUser(userID string) ([]model.Auction, error)
	FindDueAuctions(now time.Time, limit int) ([]model.Auction, error)
	LoadAuctionForSettlement(auctionID string) (model.SettlementView, error)
	CommitSettlement(auctionID string, patch model.SettlementPatch) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu           sync.RWMutex
	users        map[string]model.User
	auctions     map[string]model.Auction
	bids         map[string][]model.Bid // key: auctionID -> value: list of bids
	userAuctions map[string][]string    // key: userID -> value: auctionIDs the user has bid on
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:        make(map[string]model.User),
		auctions:     make(map[string]model.Auction),
		bids:         make(map[string][]model.Bid),
		userAuctions: make(map[string][]string),
	}
}

// AddUser stores a marketplace participant
func (r *MemoryRepo) AddUser(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UserID] = user
	return nil
}

// GetUser returns a participant by id
func (r *MemoryRepo) GetUser(userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// AddAuction stores an auction listing
func (r *MemoryRepo) AddAuction(auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns an auction by id
func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// RecordBidForAuction records a user's bid and bumps the auction's current
// bid when the new amount is higher. CurrentBid never decreases.
func (r *MemoryRepo) RecordBidForAuction(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[bid.AuctionID]
	if !ok {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}

	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)

	if bid.Amount.GreaterThan(auction.CurrentBid) {
		auction.CurrentBid = bid.Amount
		r.auctions[bid.AuctionID] = auction
	}

	for _, id := range r.userAuctions[bid.UserID] {
		if id == bid.AuctionID {
			return nil
		}
	}
	r.userAuctions[bid.UserID] = append(r.userAuctions[bid.UserID], bid.AuctionID)

	return nil
}

// GetBidsByAuction returns all bids for an auction
func (r *MemoryRepo) GetBidsByAuction(auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[auctionID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return append([]model.Bid(nil), bids...), nil
}

// GetWinningBid returns the highest bid for an auction.
// Equal amounts are broken by earliest CreatedAt, so the result is
// deterministic regardless of insertion order.
func (r *MemoryRepo) GetWinningBid(auctionID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.winningBidLocked(auctionID)
}

func (r *MemoryRepo) winningBidLocked(auctionID string) (model.Bid, error) {
	bids, ok := r.bids[auctionID]
	if !ok || len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}

	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount.GreaterThan(winning.Amount) ||
			(b.Amount.Equal(winning.Amount) && b.CreatedAt.Before(winning.CreatedAt)) {
			winning = b
		}
	}
	return winning, nil
}

// GetAuctionsByUser returns all auctions a user has bid on
func (r *MemoryRepo) GetAuctionsByUser(userID string) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auctionIDs, ok := r.userAuctions[userID]
	if !ok || len(auctionIDs) == 0 {
		return nil, fmt.Errorf("get auctions for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}

	auctions := make([]model.Auction, 0, len(auctionIDs))
	for _, id := range auctionIDs {
		if auction, exists := r.auctions[id]; exists {
			auctions = append(auctions, auction)
		}
	}
	return auctions, nil
}

// FindDueAuctions returns ACTIVE auctions whose end time has passed,
// ordered by auction end ascending. A positive limit caps the batch.
func (r *MemoryRepo) FindDueAuctions(now time.Time, limit int) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	due := make([]model.Auction, 0)
	for _, auction := range r.auctions {
		if auction.Status == model.StatusActive && !auction.AuctionEnd.After(now) {
			due = append(due, auction)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].AuctionEnd.Equal(due[j].AuctionEnd) {
			return due[i].AuctionID < due[j].AuctionID
		}
		return due[i].AuctionEnd.Before(due[j].AuctionEnd)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// LoadAuctionForSettlement returns the auction with its seller and, when
// bids exist, the winning bid and its bidder. Missing user rows degrade to
// id-only users rather than failing the settlement.
func (r *MemoryRepo) LoadAuctionForSettlement(auctionID string) (model.SettlementView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.SettlementView{}, fmt.Errorf("load auction %s for settlement: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	view := model.SettlementView{
		Auction: auction,
		Seller:  r.userOrStub(auction.SellerID),
	}

	if top, err := r.winningBidLocked(auctionID); err == nil {
		bidCopy := top
		winner := r.userOrStub(top.UserID)
		view.TopBid = &bidCopy
		view.Winner = &winner
	}

	return view, nil
}

func (r *MemoryRepo) userOrStub(userID string) model.User {
	if user, ok := r.users[userID]; ok {
		return user
	}
	return model.User{UserID: userID}
}

// CommitSettlement applies the settlement patch to an auction, guarded on
// the status still being ACTIVE. A second commit for the same auction
// returns ErrAlreadySettled, which keeps repeated sweeps idempotent.
func (r *MemoryRepo) CommitSettlement(auctionID string, patch model.SettlementPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("commit settlement for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if auction.Status != model.StatusActive {
		return fmt.Errorf("commit settlement for auction %s: %w", auctionID, auctionerrors.ErrAlreadySettled)
	}

	auction.Status = patch.Status
	auction.WinnerID = patch.WinnerID
	auction.FinalBidAmount = patch.FinalBidAmount
	auction.DeliveryFee = patch.DeliveryFee
	auction.PlatformCommission = patch.PlatformCommission
	auction.TotalCollected = patch.TotalCollected
	auction.SellerPayout = patch.SellerPayout
	auction.DeliveryStatus = patch.DeliveryStatus

	r.auctions[auctionID] = auction
	return nil
}
