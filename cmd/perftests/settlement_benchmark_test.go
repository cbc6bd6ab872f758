package perftests

import (
	"fmt"
	"testing"
	"time"

	"auction-settlement/internal/finance"
	model "auction-settlement/internal/models"
	"auction-settlement/internal/notifier"
	repository "auction-settlement/internal/repository"
	settlement "auction-settlement/internal/settlementService"
	"auction-settlement/internal/sweeper"

	"github.com/shopspring/decimal"
)

// setupSettlement seeds a repo with numDue overdue auctions, each carrying
// one bid, plus the users behind them.
func setupSettlement(numDue int) (*repository.MemoryRepo, *settlement.SettlementService) {
	repo := repository.NewMemoryRepo()
	past := time.Now().UTC().Add(-time.Hour)

	repo.AddUser(model.User{UserID: "seller_bench", Username: "Seller", Email: "seller@example.com", Location: model.LocationBeirut})
	repo.AddUser(model.User{UserID: "bidder_bench", Username: "Bidder", Email: "bidder@example.com", Location: model.LocationBeirut})

	for i := 0; i < numDue; i++ {
		auctionID := fmt.Sprintf("auction_%d", i)
		repo.AddAuction(model.Auction{
			AuctionID:   auctionID,
			SellerID:    "seller_bench",
			Title:       fmt.Sprintf("Due Auction %d", i),
			Description: "Settlement benchmark auction",
			StartingBid: decimal.NewFromInt(50),
			CurrentBid:  decimal.Zero,
			AuctionEnd:  past,
			Status:      model.StatusActive,
		})
		repo.RecordBidForAuction(model.Bid{
			BidID:     fmt.Sprintf("bid_%d", i),
			AuctionID: auctionID,
			UserID:    "bidder_bench",
			Amount:    decimal.NewFromInt(int64(100 + i)),
			CreatedAt: past,
		})
	}

	calc := finance.NewCalculator(finance.DefaultConfig())
	svc := settlement.NewSettlementService(repo, calc, notifier.NewLogNotifier())
	return repo, svc
}

// Benchmark 1: Settle - one due auction per iteration
func Benchmark_Settle_WithWinner(b *testing.B) {
	_, svc := setupSettlement(b.N)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Settle(fmt.Sprintf("auction_%d", i)); err != nil {
			b.Fatalf("failed to settle: %v", err)
		}
	}
}

// Benchmark 2: Settle - repeated attempts on an already settled auction
func Benchmark_Settle_AlreadyClosed(b *testing.B) {
	_, svc := setupSettlement(1)
	if _, err := svc.Settle("auction_0"); err != nil {
		b.Fatalf("failed to settle: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		result, err := svc.Settle("auction_0")
		if err != nil {
			b.Fatalf("failed to settle: %v", err)
		}
		if result.Outcome != settlement.OutcomeAlreadyClosed {
			b.Fatalf("unexpected outcome: %s", result.Outcome)
		}
	}
}

// Benchmark 3: RunSweep over a backlog of 1000 due auctions
func Benchmark_RunSweep_Backlog(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		repo, svc := setupSettlement(1000)
		sw := sweeper.New(repo, svc, time.Hour, 0)
		b.StartTimer()

		report, err := sw.RunSweep()
		if err != nil {
			b.Fatalf("sweep failed: %v", err)
		}
		if report.Failed != 0 {
			b.Fatalf("unexpected failures: %d", report.Failed)
		}
	}
}

// Benchmark 4: FindDueAuctions against a mostly-settled table
func Benchmark_FindDueAuctions(b *testing.B) {
	repo, svc := setupSettlement(2000)

	// settle half so discovery has to filter
	for i := 0; i < 1000; i++ {
		if _, err := svc.Settle(fmt.Sprintf("auction_%d", i)); err != nil {
			b.Fatalf("failed to settle: %v", err)
		}
	}

	now := time.Now().UTC()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		due, err := repo.FindDueAuctions(now, 100)
		if err != nil {
			b.Fatalf("failed to find due auctions: %v", err)
		}
		if len(due) != 100 {
			b.Fatalf("unexpected batch size: %d", len(due))
		}
	}
}
