package server

import (
	bidding "auction-settlement/internal/biddingService"
	settlement "auction-settlement/internal/settlementService"
	"auction-settlement/internal/sweeper"
	biddinghandler "auction-settlement/services/bidding/handler"
	settlementhandler "auction-settlement/services/settlement/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService *bidding.BiddingService, settlementService *settlement.SettlementService, sw *sweeper.Sweeper) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	biddingHandler := biddinghandler.NewBiddingHandler(biddingService)
	settlementHandler := settlementhandler.NewSettlementHandler(settlementService, sw)

	bids := router.Group("/bids")
	{
		bids.POST("", biddingHandler.RecordBidHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("/:auction_id", biddingHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/winning", biddingHandler.GetWinningBidHandler)
		auctions.POST("/:auction_id/settle", settlementHandler.SettleAuctionHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/auctions", biddingHandler.GetAuctionsByUserHandler)
	}

	settlements := router.Group("/settlements")
	{
		settlements.POST("/sweep", settlementHandler.TriggerSweepHandler)
	}

	return router
}
