package sweeper

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	model "auction-settlement/internal/models"
	settlement "auction-settlement/internal/settlementService"
	"auction-settlement/utils"
)

// SettlementEngine settles a single auction by id
type SettlementEngine interface {
	Settle(auctionID string) (settlement.SettlementResult, error)
}

// DueAuctionFinder enumerates ACTIVE auctions whose end time has passed
type DueAuctionFinder interface {
	FindDueAuctions(now time.Time, limit int) ([]model.Auction, error)
}

// SweepItem is the per-auction line of a sweep report
type SweepItem struct {
	AuctionID string             `json:"auction_id"`
	Title     string             `json:"title"`
	Outcome   settlement.Outcome `json:"outcome,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// SweepReport aggregates the outcome of one sweep across all due auctions.
// Skipped is set when the run was dropped because a sweep was already in
// flight; nothing was checked in that case.
type SweepReport struct {
	Skipped      bool        `json:"skipped,omitempty"`
	TotalChecked int         `json:"totalChecked"`
	Successful   int         `json:"successful"`
	Failed       int         `json:"failed"`
	Details      []SweepItem `json:"details"`
}

// Sweeper periodically discovers due auctions and settles each one
// sequentially. Overlapping runs are prevented by an atomic flag: a tick
// that fires while a sweep is still running is skipped, not queued.
type Sweeper struct {
	finder     DueAuctionFinder
	engine     SettlementEngine
	interval   time.Duration
	batchLimit int

	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Sweeper. A batchLimit of zero means no cap per sweep.
func New(finder DueAuctionFinder, engine SettlementEngine, interval time.Duration, batchLimit int) *Sweeper {
	return &Sweeper{
		finder:     finder,
		engine:     engine,
		interval:   interval,
		batchLimit: batchLimit,
		stop:       make(chan struct{}),
	}
}

// RunSweep settles every due auction, one at a time, in auction-end order.
// A single auction's failure is recorded and the sweep moves on; only a
// failing due-auction query fails the sweep as a whole.
func (s *Sweeper) RunSweep() (SweepReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		utils.Info("sweep already in progress, skipping", nil)
		return SweepReport{Skipped: true, Details: []SweepItem{}}, nil
	}
	defer s.running.Store(false)

	due, err := s.finder.FindDueAuctions(time.Now().UTC(), s.batchLimit)
	if err != nil {
		return SweepReport{Details: []SweepItem{}}, fmt.Errorf("sweeper: failed to query due auctions: %w", err)
	}

	report := SweepReport{
		TotalChecked: len(due),
		Details:      make([]SweepItem, 0, len(due)),
	}

	for _, auction := range due {
		item := SweepItem{AuctionID: auction.AuctionID, Title: auction.Title}

		result, err := s.engine.Settle(auction.AuctionID)
		if err != nil {
			item.Error = err.Error()
			report.Failed++
			utils.Error("sweep: settlement failed", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
		} else {
			item.Outcome = result.Outcome
			report.Successful++
		}

		report.Details = append(report.Details, item)
	}

	utils.Info("sweep completed", map[string]any{
		"total_checked": report.TotalChecked,
		"successful":    report.Successful,
		"failed":        report.Failed,
	})
	return report, nil
}

// Start launches the recurring sweep loop
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.loop()
	utils.Info("sweeper started", map[string]any{"interval": s.interval.String()})
}

func (s *Sweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			// A failed sweep must not kill the loop; the next tick retries.
			if _, err := s.RunSweep(); err != nil {
				utils.Error("scheduled sweep failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// Stop terminates the sweep loop and waits for an in-flight run to finish
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}
