package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	model "auction-house/internal/models"
)

// Request/Response DTOs
type CreateAuctionRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	StartTime     time.Time       `json:"start_time" binding:"required"`
	EndTime       time.Time       `json:"end_time" binding:"required"`
	ImageURL      string          `json:"image_url"`
}

type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type AuctionResponse struct {
	AuctionID       string          `json:"auction_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	StartingPrice   decimal.Decimal `json:"starting_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	ImageURL        string          `json:"image_url"`
	Status          string          `json:"status"`
	SellerID        string          `json:"seller_id"`
	CurrentWinnerID string          `json:"current_winner_id,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

type BidResponse struct {
	BidID     string          `json:"bid_id"`
	AuctionID string          `json:"auction_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

// ToAuctionResponse maps an auction record to its response DTO
func ToAuctionResponse(a model.Auction) AuctionResponse {
	return AuctionResponse{
		AuctionID:       a.AuctionID,
		Title:           a.Title,
		Description:     a.Description,
		StartingPrice:   a.StartingPrice,
		CurrentPrice:    a.CurrentPrice,
		StartTime:       a.StartTime.UTC().Format(time.RFC3339),
		EndTime:         a.EndTime.UTC().Format(time.RFC3339),
		ImageURL:        a.ImageURL,
		Status:          string(a.Status),
		SellerID:        a.SellerID,
		CurrentWinnerID: a.CurrentWinnerID,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToAuctionResponses maps a slice of auction records, never returning nil
func ToAuctionResponses(auctions []model.Auction) []AuctionResponse {
	result := make([]AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		result = append(result, ToAuctionResponse(a))
	}
	return result
}

// ToBidResponse maps a bid record to its response DTO
func ToBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		AuctionID: b.AuctionID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToBidResponses maps a slice of bid records, never returning nil
func ToBidResponses(bids []model.Bid) []BidResponse {
	result := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		result = append(result, ToBidResponse(b))
	}
	return result
}
