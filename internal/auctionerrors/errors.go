package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
)

// Identity errors
var (
	ErrUnauthenticated = errors.New("caller identity required")
	ErrForbidden       = errors.New("caller is not allowed to perform this operation")
)

// Business logic errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("operation not valid for the auction's current state")
	ErrNotBiddable  = errors.New("auction is not open for bidding")
	ErrSelfBid      = errors.New("sellers cannot bid on their own auctions")
	ErrBidTooLow    = errors.New("bid amount must exceed the current price")
)
