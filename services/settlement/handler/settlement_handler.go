package handler

import (
	"fmt"
	"net/http"

	settlement "auction-settlement/internal/settlementService"
	"auction-settlement/internal/sweeper"
	"auction-settlement/services/bidding/helpers"
	"auction-settlement/utils"

	"github.com/gin-gonic/gin"
)

type SettlementServiceInterface interface {
	Settle(auctionID string) (settlement.SettlementResult, error)
}

type SweeperInterface interface {
	RunSweep() (sweeper.SweepReport, error)
}

type SettlementHandler struct {
	service SettlementServiceInterface
	sweeper SweeperInterface
}

func NewSettlementHandler(service SettlementServiceInterface, sw SweeperInterface) *SettlementHandler {
	return &SettlementHandler{service: service, sweeper: sw}
}

// SweepResponse is the wire shape of a sweep trigger. Unlike the other
// endpoints it is emitted top-level, without the response envelope, so
// operational tooling can consume the counters directly.
type SweepResponse struct {
	Success bool `json:"success"`
	sweeper.SweepReport
}

// SettleAuctionHandler handles POST /auctions/:auction_id/settle
func (h *SettlementHandler) SettleAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	result, err := h.service.Settle(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("SettleAuctionHandler: settlement failed", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	status := http.StatusOK
	if result.Outcome == settlement.OutcomeNotFound {
		status = http.StatusNotFound
	}

	utils.JSONResponse(c, status, result, "settlement attempted")
	helpers.LogSuccess("SettleAuctionHandler", "settlement attempted", map[string]any{
		"auction_id": result.AuctionID,
		"outcome":    result.Outcome,
	})
}

// TriggerSweepHandler handles POST /settlements/sweep
func (h *SettlementHandler) TriggerSweepHandler(c *gin.Context) {
	report, err := h.sweeper.RunSweep()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err, "sweep failed")
		utils.Error("TriggerSweepHandler: sweep failed", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONRaw(c, http.StatusOK, SweepResponse{Success: true, SweepReport: report})
	helpers.LogSuccess("TriggerSweepHandler", "sweep completed", map[string]any{
		"skipped":       report.Skipped,
		"total_checked": report.TotalChecked,
		"successful":    report.Successful,
		"failed":        report.Failed,
	})
}
