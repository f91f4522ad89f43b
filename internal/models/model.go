package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction. Transitions are
// one-directional: Open -> ClosedExpired or Open -> ClosedCancelled.
type AuctionStatus string

const (
	StatusOpen            AuctionStatus = "open"
	StatusClosedExpired   AuctionStatus = "closed_expired"
	StatusClosedCancelled AuctionStatus = "closed_cancelled"
)

// User represents a participant in the auction system. The core only
// needs an opaque identifier; profile data lives with the identity
// collaborator.
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Auction represents a sellable listing with a time window and a single
// evolving current price and winner. CurrentPrice and CurrentWinnerID
// are a projection of the latest accepted bid, maintained in the same
// atomic commit as the bid itself.
type Auction struct {
	AuctionID       string          `json:"auction_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	StartingPrice   decimal.Decimal `json:"starting_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	ImageURL        string          `json:"image_url"`
	Status          AuctionStatus   `json:"status"`
	SellerID        string          `json:"seller_id"`
	CurrentWinnerID string          `json:"current_winner_id,omitempty"` // empty until a bid is accepted
	CreatedAt       time.Time       `json:"created_at"`
}

// Bid is an immutable fact recording one amount offered by one bidder
// on one auction. Bids are never mutated or deleted once recorded.
type Bid struct {
	BidID     string          `json:"bid_id"`
	AuctionID string          `json:"auction_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
