package server

import (
	"github.com/gin-gonic/gin"

	"auction-house/internal/auctions"
	"auction-house/internal/bidengine"
	"auction-house/internal/identity"
	"auction-house/internal/lifecycle"
	handler "auction-house/services/auction/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionSvc *auctions.Service, engine *bidengine.Engine,
	lc *lifecycle.Service, resolver identity.Resolver) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(IdentityMiddleware(resolver))

	auctionHandler := handler.NewAuctionHandler(auctionSvc, engine, lc)

	auctionRoutes := router.Group("/auctions")
	{
		auctionRoutes.POST("", auctionHandler.CreateAuctionHandler)
		auctionRoutes.GET("", auctionHandler.ListAuctionsHandler)
		auctionRoutes.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctionRoutes.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctionRoutes.GET("/:auction_id/bids", auctionHandler.ListBidsHandler)
		auctionRoutes.POST("/:auction_id/cancel", auctionHandler.CancelAuctionHandler)
	}

	sellers := router.Group("/sellers")
	{
		sellers.GET("/:seller_id/auctions", auctionHandler.GetAuctionsBySellerHandler)
	}

	return router
}
