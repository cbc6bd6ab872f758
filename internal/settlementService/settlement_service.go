package settlement

import (
	"errors"
	"fmt"
	"time"

	"auction-settlement/internal/auctionerrors"
	"auction-settlement/internal/finance"
	model "auction-settlement/internal/models"
	"auction-settlement/internal/notifier"
	"auction-settlement/internal/repository"
	"auction-settlement/utils"
)

// Outcome classifies the result of one settlement attempt. The precondition
// outcomes (NOT_FOUND, NOT_YET_DUE, ALREADY_CLOSED) are expected no-ops,
// not errors; they keep repeated sweeps safe to re-run.
type Outcome string

const (
	OutcomeClosedWithWinner Outcome = "CLOSED_WITH_WINNER"
	OutcomeClosedNoBids     Outcome = "CLOSED_NO_BIDS"
	OutcomeAlreadyClosed    Outcome = "ALREADY_CLOSED"
	OutcomeNotYetDue        Outcome = "NOT_YET_DUE"
	OutcomeNotFound         Outcome = "NOT_FOUND"
)

// SettlementResult reports how one auction was settled. WinnerID and
// Financials are set only for CLOSED_WITH_WINNER.
type SettlementResult struct {
	AuctionID  string             `json:"auction_id"`
	Title      string             `json:"title"`
	Outcome    Outcome            `json:"outcome"`
	WinnerID   string             `json:"winner_id,omitempty"`
	Financials *finance.Breakdown `json:"financials,omitempty"`
}

// SettlementService closes expired auctions: it picks the winner, computes
// the money split and transitions the auction to ENDED exactly once.
type SettlementService struct {
	repo     repository.AuctionDB
	calc     *finance.Calculator
	notifier notifier.Notifier
	now      func() time.Time
}

// NewSettlementService creates a new SettlementService instance
func NewSettlementService(repo repository.AuctionDB, calc *finance.Calculator, n notifier.Notifier) *SettlementService {
	return &SettlementService{
		repo:     repo,
		calc:     calc,
		notifier: n,
		now:      time.Now,
	}
}

// Settle transactionally settles exactly one auction. The state write is
// guarded on the status still being ACTIVE, so two concurrent calls for the
// same auction cannot both settle it: the loser observes ALREADY_CLOSED.
// Notification delivery is best-effort and never rolls back the settlement.
func (s *SettlementService) Settle(auctionID string) (SettlementResult, error) {
	if auctionID == "" {
		return SettlementResult{Outcome: OutcomeNotFound}, nil
	}

	view, err := s.repo.LoadAuctionForSettlement(auctionID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrAuctionNotFound) {
			return SettlementResult{AuctionID: auctionID, Outcome: OutcomeNotFound}, nil
		}
		return SettlementResult{}, fmt.Errorf("service: failed to load auction %s for settlement: %w", auctionID, err)
	}

	auction := view.Auction
	result := SettlementResult{AuctionID: auction.AuctionID, Title: auction.Title}

	// CANCELLED is an externally driven terminal state: skip like ENDED.
	if auction.Status != model.StatusActive {
		result.Outcome = OutcomeAlreadyClosed
		return result, nil
	}
	if auction.AuctionEnd.After(s.now().UTC()) {
		result.Outcome = OutcomeNotYetDue
		return result, nil
	}

	if view.TopBid == nil || auction.CurrentBid.IsZero() {
		return s.settleNoBids(result, view)
	}
	return s.settleWithWinner(result, view)
}

func (s *SettlementService) settleNoBids(result SettlementResult, view model.SettlementView) (SettlementResult, error) {
	patch := model.SettlementPatch{Status: model.StatusEnded}

	if err := s.repo.CommitSettlement(result.AuctionID, patch); err != nil {
		if errors.Is(err, auctionerrors.ErrAlreadySettled) {
			result.Outcome = OutcomeAlreadyClosed
			return result, nil
		}
		return SettlementResult{}, fmt.Errorf("service: failed to commit no-bid settlement for auction %s: %w", result.AuctionID, err)
	}

	s.notifyBestEffort(result.AuctionID, "auction_ended_no_bids", func() error {
		return s.notifier.NotifyAuctionEndedNoBids(notifier.AuctionEndedNoBids{
			SellerEmail:  view.Seller.Email,
			SellerName:   view.Seller.Username,
			ProductTitle: view.Auction.Title,
		})
	})

	result.Outcome = OutcomeClosedNoBids
	return result, nil
}

func (s *SettlementService) settleWithWinner(result SettlementResult, view model.SettlementView) (SettlementResult, error) {
	winner := model.User{UserID: view.TopBid.UserID}
	if view.Winner != nil {
		winner = *view.Winner
	}

	// finalBidAmount is the auction's current bid at settlement time, which
	// by invariant equals the top bid's amount.
	breakdown := s.calc.Calculate(view.Auction.CurrentBid, winner.Location)
	deliveryStatus := model.DeliveryPending

	patch := model.SettlementPatch{
		Status:             model.StatusEnded,
		WinnerID:           &winner.UserID,
		FinalBidAmount:     &breakdown.FinalBidAmount,
		DeliveryFee:        &breakdown.DeliveryFee,
		PlatformCommission: &breakdown.PlatformCommission,
		TotalCollected:     &breakdown.TotalCollected,
		SellerPayout:       &breakdown.SellerPayout,
		DeliveryStatus:     &deliveryStatus,
	}

	if err := s.repo.CommitSettlement(result.AuctionID, patch); err != nil {
		if errors.Is(err, auctionerrors.ErrAlreadySettled) {
			result.Outcome = OutcomeAlreadyClosed
			return result, nil
		}
		return SettlementResult{}, fmt.Errorf("service: failed to commit settlement for auction %s: %w", result.AuctionID, err)
	}

	s.notifyBestEffort(result.AuctionID, "auction_won", func() error {
		return s.notifier.NotifyAuctionWon(notifier.AuctionWon{
			WinnerEmail:    winner.Email,
			WinnerName:     winner.Username,
			ProductTitle:   view.Auction.Title,
			FinalBidAmount: breakdown.FinalBidAmount,
			DeliveryFee:    breakdown.DeliveryFee,
			TotalAmount:    breakdown.TotalCollected,
			SellerPhone:    view.Seller.Phone,
		})
	})
	s.notifyBestEffort(result.AuctionID, "auction_sold", func() error {
		return s.notifier.NotifyAuctionSold(notifier.AuctionSold{
			SellerEmail:        view.Seller.Email,
			SellerName:         view.Seller.Username,
			ProductTitle:       view.Auction.Title,
			FinalBidAmount:     breakdown.FinalBidAmount,
			PlatformCommission: breakdown.PlatformCommission,
			SellerPayout:       breakdown.SellerPayout,
			WinnerName:         winner.Username,
			WinnerPhone:        winner.Phone,
		})
	})

	result.Outcome = OutcomeClosedWithWinner
	result.WinnerID = winner.UserID
	result.Financials = &breakdown
	return result, nil
}

// notifyBestEffort runs one notification send and logs a failure instead of
// propagating it. The settled state is the source of truth, not the email.
func (s *SettlementService) notifyBestEffort(auctionID, event string, send func() error) {
	if err := send(); err != nil {
		utils.Warn("settlement notification failed", map[string]any{
			"auction_id": auctionID,
			"event":      event,
			"error":      err.Error(),
		})
	}
}
