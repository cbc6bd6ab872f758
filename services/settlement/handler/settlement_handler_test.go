package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-settlement/internal/finance"
	settlement "auction-settlement/internal/settlementService"
	"auction-settlement/internal/sweeper"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Test SettleAuctionHandler
func TestSettleAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSettlementServiceInterface(ctrl)
	mockSweeper := NewMockSweeperInterface(ctrl)
	handler := NewSettlementHandler(mockService, mockSweeper)

	// Initialize Gin in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions/:auction_id/settle", handler.SettleAuctionHandler)

	tests := []struct {
		name           string
		auctionID      string
		mockSetup      func()
		expectedStatus int
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:      "closed_with_winner",
			auctionID: "auction1",
			mockSetup: func() {
				mockService.EXPECT().
					Settle("auction1").
					Return(settlement.SettlementResult{
						AuctionID: "auction1",
						Title:     "Vintage camera",
						Outcome:   settlement.OutcomeClosedWithWinner,
						WinnerID:  "bidder1",
						Financials: &finance.Breakdown{
							FinalBidAmount:     decimal.NewFromInt(120),
							DeliveryFee:        decimal.RequireFromString("3.00"),
							PlatformCommission: decimal.RequireFromString("7.20"),
							TotalCollected:     decimal.RequireFromString("123.00"),
							SellerPayout:       decimal.RequireFromString("112.80"),
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "CLOSED_WITH_WINNER", data["outcome"])
				require.Equal(t, "bidder1", data["winner_id"])
				financials := data["financials"].(map[string]any)
				require.Equal(t, "123", financials["total_collected"])
				require.Equal(t, "112.8", financials["seller_payout"])
			},
		},
		{
			name:      "closed_no_bids",
			auctionID: "auction2",
			mockSetup: func() {
				mockService.EXPECT().
					Settle("auction2").
					Return(settlement.SettlementResult{
						AuctionID: "auction2",
						Title:     "Mountain bike",
						Outcome:   settlement.OutcomeClosedNoBids,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "CLOSED_NO_BIDS", data["outcome"])
				require.NotContains(t, data, "winner_id")
				require.NotContains(t, data, "financials")
			},
		},
		{
			name:      "already_closed",
			auctionID: "auction3",
			mockSetup: func() {
				mockService.EXPECT().
					Settle("auction3").
					Return(settlement.SettlementResult{
						AuctionID: "auction3",
						Outcome:   settlement.OutcomeAlreadyClosed,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "ALREADY_CLOSED", data["outcome"])
			},
		},
		{
			name:      "not_yet_due",
			auctionID: "auction4",
			mockSetup: func() {
				mockService.EXPECT().
					Settle("auction4").
					Return(settlement.SettlementResult{
						AuctionID: "auction4",
						Outcome:   settlement.OutcomeNotYetDue,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "NOT_YET_DUE", data["outcome"])
			},
		},
		{
			name:      "not_found",
			auctionID: "auctionX",
			mockSetup: func() {
				mockService.EXPECT().
					Settle("auctionX").
					Return(settlement.SettlementResult{
						AuctionID: "auctionX",
						Outcome:   settlement.OutcomeNotFound,
					}, nil)
			},
			expectedStatus: http.StatusNotFound,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "NOT_FOUND", data["outcome"])
			},
		},
		{
			name:      "internal_error",
			auctionID: "auction5",
			mockSetup: func() {
				mockService.EXPECT().
					Settle("auction5").
					Return(settlement.SettlementResult{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/auctions/"+tc.auctionID+"/settle", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tc.validateData != nil {
				data := resp["data"].(map[string]any)
				tc.validateData(t, data)
			}
		})
	}
}

// Test TriggerSweepHandler
func TestTriggerSweepHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSettlementServiceInterface(ctrl)
	mockSweeper := NewMockSweeperInterface(ctrl)
	handler := NewSettlementHandler(mockService, mockSweeper)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/settlements/sweep", handler.TriggerSweepHandler)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
		validate       func(t *testing.T, resp map[string]any)
	}{
		{
			name: "sweep_with_mixed_results",
			mockSetup: func() {
				mockSweeper.EXPECT().
					RunSweep().
					Return(sweeper.SweepReport{
						TotalChecked: 3,
						Successful:   2,
						Failed:       1,
						Details: []sweeper.SweepItem{
							{AuctionID: "a1", Title: "First", Outcome: settlement.OutcomeClosedWithWinner},
							{AuctionID: "a2", Title: "Second", Outcome: settlement.OutcomeClosedNoBids},
							{AuctionID: "a3", Title: "Third", Error: "database failure"},
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, resp map[string]any) {
				require.Equal(t, true, resp["success"])
				require.Equal(t, float64(3), resp["totalChecked"])
				require.Equal(t, float64(2), resp["successful"])
				require.Equal(t, float64(1), resp["failed"])
				details := resp["details"].([]any)
				require.Len(t, details, 3)
				third := details[2].(map[string]any)
				require.Equal(t, "database failure", third["error"])
			},
		},
		{
			name: "sweep_with_nothing_due",
			mockSetup: func() {
				mockSweeper.EXPECT().
					RunSweep().
					Return(sweeper.SweepReport{Details: []sweeper.SweepItem{}}, nil)
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, resp map[string]any) {
				require.Equal(t, true, resp["success"])
				require.Equal(t, float64(0), resp["totalChecked"])
				require.Len(t, resp["details"].([]any), 0)
			},
		},
		{
			name: "sweep_skipped_while_in_flight",
			mockSetup: func() {
				mockSweeper.EXPECT().
					RunSweep().
					Return(sweeper.SweepReport{Skipped: true, Details: []sweeper.SweepItem{}}, nil)
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, resp map[string]any) {
				require.Equal(t, true, resp["skipped"])
				require.Equal(t, float64(0), resp["totalChecked"])
			},
		},
		{
			name: "query_failure_is_server_error",
			mockSetup: func() {
				mockSweeper.EXPECT().
					RunSweep().
					Return(sweeper.SweepReport{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, resp map[string]any) {
				require.Contains(t, resp["message"], "sweep failed")
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/settlements/sweep", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			tc.validate(t, resp)
		})
	}
}
