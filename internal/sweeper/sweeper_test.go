package sweeper

import (
	"errors"
	"fmt"
	"testing"
	"time"

	model "auction-settlement/internal/models"
	settlement "auction-settlement/internal/settlementService"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func dueAuction(auctionID string, end time.Time) model.Auction {
	return model.Auction{
		AuctionID:  auctionID,
		Title:      "auction " + auctionID,
		AuctionEnd: end,
		Status:     model.StatusActive,
	}
}

// Test sweep isolation: one failing auction must not abort the sweep
func TestSweeper_RunSweep_FailureIsolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFinder := NewMockDueAuctionFinder(ctrl)
	mockEngine := NewMockSettlementEngine(ctrl)
	s := New(mockFinder, mockEngine, time.Minute, 100)

	now := time.Now().UTC()
	due := []model.Auction{
		dueAuction("a1", now.Add(-5*time.Minute)),
		dueAuction("a2", now.Add(-4*time.Minute)),
		dueAuction("a3", now.Add(-3*time.Minute)),
		dueAuction("a4", now.Add(-2*time.Minute)),
		dueAuction("a5", now.Add(-time.Minute)),
	}

	mockFinder.EXPECT().FindDueAuctions(gomock.Any(), 100).Return(due, nil)

	for _, a := range due {
		a := a
		if a.AuctionID == "a3" {
			mockEngine.EXPECT().Settle("a3").Return(settlement.SettlementResult{}, errors.New("db write failed"))
			continue
		}
		mockEngine.EXPECT().Settle(a.AuctionID).Return(settlement.SettlementResult{
			AuctionID: a.AuctionID,
			Title:     a.Title,
			Outcome:   settlement.OutcomeClosedNoBids,
		}, nil)
	}

	report, err := s.RunSweep()
	require.NoError(t, err)
	require.False(t, report.Skipped)
	require.Equal(t, 5, report.TotalChecked)
	require.Equal(t, 4, report.Successful)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Details, 5)

	// Details preserve the due-auction order
	for i, item := range report.Details {
		require.Equal(t, fmt.Sprintf("a%d", i+1), item.AuctionID)
	}
	require.NotEmpty(t, report.Details[2].Error)
	require.Empty(t, report.Details[0].Error)
	require.Equal(t, settlement.OutcomeClosedNoBids, report.Details[0].Outcome)
}

// Test precondition outcomes count as successful no-ops
func TestSweeper_RunSweep_PreconditionOutcomesAreSuccesses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFinder := NewMockDueAuctionFinder(ctrl)
	mockEngine := NewMockSettlementEngine(ctrl)
	s := New(mockFinder, mockEngine, time.Minute, 0)

	now := time.Now().UTC()
	mockFinder.EXPECT().FindDueAuctions(gomock.Any(), 0).
		Return([]model.Auction{dueAuction("a1", now.Add(-time.Minute))}, nil)
	mockEngine.EXPECT().Settle("a1").
		Return(settlement.SettlementResult{AuctionID: "a1", Outcome: settlement.OutcomeAlreadyClosed}, nil)

	report, err := s.RunSweep()
	require.NoError(t, err)
	require.Equal(t, 1, report.Successful)
	require.Equal(t, 0, report.Failed)
	require.Equal(t, settlement.OutcomeAlreadyClosed, report.Details[0].Outcome)
}

// Test a failing due-auction query fails the sweep with no settlements
func TestSweeper_RunSweep_QueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFinder := NewMockDueAuctionFinder(ctrl)
	mockEngine := NewMockSettlementEngine(ctrl)
	s := New(mockFinder, mockEngine, time.Minute, 100)

	mockFinder.EXPECT().FindDueAuctions(gomock.Any(), 100).Return(nil, errors.New("db unavailable"))

	report, err := s.RunSweep()
	require.Error(t, err)
	require.Equal(t, 0, report.TotalChecked)
	require.Empty(t, report.Details)
}

// Test the overlap guard: a run started while another is in flight is skipped
func TestSweeper_RunSweep_OverlapGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFinder := NewMockDueAuctionFinder(ctrl)
	mockEngine := NewMockSettlementEngine(ctrl)
	s := New(mockFinder, mockEngine, time.Minute, 100)

	entered := make(chan struct{})
	release := make(chan struct{})

	now := time.Now().UTC()
	mockFinder.EXPECT().FindDueAuctions(gomock.Any(), 100).
		Return([]model.Auction{dueAuction("a1", now.Add(-time.Minute))}, nil)
	mockEngine.EXPECT().Settle("a1").
		DoAndReturn(func(string) (settlement.SettlementResult, error) {
			close(entered)
			<-release
			return settlement.SettlementResult{AuctionID: "a1", Outcome: settlement.OutcomeClosedNoBids}, nil
		})

	firstDone := make(chan SweepReport)
	go func() {
		report, err := s.RunSweep()
		require.NoError(t, err)
		firstDone <- report
	}()

	<-entered

	skipped, err := s.RunSweep()
	require.NoError(t, err)
	require.True(t, skipped.Skipped)
	require.Equal(t, 0, skipped.TotalChecked)

	close(release)
	first := <-firstDone
	require.False(t, first.Skipped)
	require.Equal(t, 1, first.Successful)

	// Once the first run finished, the guard is released again
	mockFinder.EXPECT().FindDueAuctions(gomock.Any(), 100).Return([]model.Auction{}, nil)
	again, err := s.RunSweep()
	require.NoError(t, err)
	require.False(t, again.Skipped)
}

// Test Start/Stop drives sweeps on the ticker and shuts down cleanly
func TestSweeper_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFinder := NewMockDueAuctionFinder(ctrl)
	mockEngine := NewMockSettlementEngine(ctrl)
	s := New(mockFinder, mockEngine, 10*time.Millisecond, 100)

	ticked := make(chan struct{}, 1)
	mockFinder.EXPECT().FindDueAuctions(gomock.Any(), 100).
		DoAndReturn(func(time.Time, int) ([]model.Auction, error) {
			select {
			case ticked <- struct{}{}:
			default:
			}
			return []model.Auction{}, nil
		}).MinTimes(1)

	s.Start()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never ticked")
	}

	s.Stop()
}
