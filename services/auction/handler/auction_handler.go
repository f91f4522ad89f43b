package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/auctions"
	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_handler.go -package=handler

// CallerIDKey is the gin context key the identity middleware stores the
// resolved user ID under.
const CallerIDKey = "caller_id"

type AuctionServiceInterface interface {
	CreateAuction(sellerID string, draft auctions.Draft) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	ListAllAuctions() ([]model.Auction, error)
	ListActiveAuctions() ([]model.Auction, error)
	ListAuctionsBySeller(sellerID string) ([]model.Auction, error)
	SearchAuctions(query string) ([]model.Auction, error)
}

type BidEngineInterface interface {
	PlaceBid(auctionID string, amount decimal.Decimal, bidderID string) (model.Bid, error)
	ListBids(auctionID string) ([]model.Bid, error)
}

type LifecycleInterface interface {
	Cancel(auctionID, requesterID string) (model.Auction, error)
}

type AuctionHandler struct {
	auctions  AuctionServiceInterface
	engine    BidEngineInterface
	lifecycle LifecycleInterface
}

func NewAuctionHandler(auctionSvc AuctionServiceInterface, engine BidEngineInterface, lifecycle LifecycleInterface) *AuctionHandler {
	return &AuctionHandler{
		auctions:  auctionSvc,
		engine:    engine,
		lifecycle: lifecycle,
	}
}

// callerID returns the resolved caller identity set by the identity
// middleware, or false when the request carried no valid session.
func callerID(c *gin.Context) (string, bool) {
	id, ok := c.Get(CallerIDKey)
	if !ok {
		return "", false
	}
	userID, ok := id.(string)
	return userID, ok && userID != ""
}

func respondError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	fields := map[string]any{"handler": handlerName, "error": err.Error()}
	for k, v := range ctx {
		fields[k] = v
	}
	utils.Warn(handlerName+": request failed", fields)
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		respondError(c, "CreateAuctionHandler", auctionerrors.ErrUnauthenticated, nil)
		return
	}

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.auctions.CreateAuction(sellerID, auctions.Draft{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: req.StartingPrice,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		respondError(c, "CreateAuctionHandler", err, map[string]any{"seller_id": sellerID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToAuctionResponse(auction), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"seller_id":  sellerID,
	})
}

// ListAuctionsHandler handles GET /auctions with optional
// status=active and search query parameters
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	var (
		result []model.Auction
		err    error
	)

	switch {
	case c.Query("search") != "":
		result, err = h.auctions.SearchAuctions(c.Query("search"))
	case c.Query("status") == "active":
		result, err = h.auctions.ListActiveAuctions()
	default:
		result, err = h.auctions.ListAllAuctions()
	}
	if err != nil {
		respondError(c, "ListAuctionsHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponses(result), "auctions retrieved successfully")
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	auction, err := h.auctions.GetAuction(auctionID)
	if err != nil {
		respondError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(auction), "auction retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	bidderID, ok := callerID(c)
	if !ok {
		respondError(c, "PlaceBidHandler", auctionerrors.ErrUnauthenticated, nil)
		return
	}

	auctionID := c.Param("auction_id")
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.engine.PlaceBid(auctionID, req.Amount, bidderID)
	if err != nil {
		respondError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"bidder_id":  bidderID,
			"amount":     req.Amount.String(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"bidder_id":  bidderID,
		"amount":     bid.Amount.String(),
	})
}

// ListBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) ListBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	bids, err := h.engine.ListBids(auctionID)
	if err != nil {
		respondError(c, "ListBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponses(bids), "bids retrieved successfully")
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	requesterID, ok := callerID(c)
	if !ok {
		respondError(c, "CancelAuctionHandler", auctionerrors.ErrUnauthenticated, nil)
		return
	}

	auctionID := c.Param("auction_id")
	auction, err := h.lifecycle.Cancel(auctionID, requesterID)
	if err != nil {
		respondError(c, "CancelAuctionHandler", err, map[string]any{
			"auction_id":   auctionID,
			"requester_id": requesterID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(auction), "auction cancelled successfully")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{
		"auction_id":   auctionID,
		"requester_id": requesterID,
	})
}

// GetAuctionsBySellerHandler handles GET /sellers/:seller_id/auctions
func (h *AuctionHandler) GetAuctionsBySellerHandler(c *gin.Context) {
	sellerID := c.Param("seller_id")

	result, err := h.auctions.ListAuctionsBySeller(sellerID)
	if err != nil {
		respondError(c, "GetAuctionsBySellerHandler", err, map[string]any{"seller_id": sellerID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponses(result), "auctions retrieved successfully")
}
