// Package bidengine is the sole writer of an auction's current price
// and current winner. Every bid is validated and committed inside the
// store's per-auction lock, so two bids racing on the same auction are
// strictly ordered: the loser re-validates against the winner's price,
// never against a stale snapshot.
package bidengine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/lifecycle"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// Engine validates and commits bids, one at a time per auction
type Engine struct {
	store repository.AuctionStore
}

// NewEngine creates a new bid Engine instance
func NewEngine(store repository.AuctionStore) *Engine {
	return &Engine{store: store}
}

// PlaceBid validates the bid against the auction's current state and,
// on success, records the bid and the new price/winner projection as
// one atomic commit. Checks run in a fixed order: auction exists,
// auction is biddable, bidder is not the seller, amount strictly
// exceeds the current price. A tie with the current price is rejected.
func (e *Engine) PlaceBid(auctionID string, amount decimal.Decimal, bidderID string) (model.Bid, error) {
	if auctionID == "" {
		return model.Bid{}, fmt.Errorf("bidengine: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}
	if bidderID == "" {
		return model.Bid{}, fmt.Errorf("bidengine: %w", auctionerrors.ErrUnauthenticated)
	}
	if amount.Sign() <= 0 {
		return model.Bid{}, fmt.Errorf("bidengine: %w - non-positive bid amount %s",
			auctionerrors.ErrInvalidInput, amount.String())
	}

	var bid model.Bid
	err := e.store.WithAuctionLock(auctionID, func() error {
		auction, err := e.store.GetAuction(auctionID)
		if err != nil {
			return fmt.Errorf("bidengine: place bid on auction %s: %w", auctionID, err)
		}

		now := time.Now().UTC()
		if !lifecycle.IsBiddable(auction, now) {
			return fmt.Errorf("bidengine: place bid on auction %s in status %s: %w",
				auctionID, auction.Status, auctionerrors.ErrNotBiddable)
		}
		if auction.SellerID == bidderID {
			return fmt.Errorf("bidengine: place bid on auction %s: %w", auctionID, auctionerrors.ErrSelfBid)
		}
		if amount.Cmp(auction.CurrentPrice) <= 0 {
			return fmt.Errorf("bidengine: %w - current price is %s",
				auctionerrors.ErrBidTooLow, auction.CurrentPrice.String())
		}

		bid = model.Bid{
			BidID:     utils.GenerateID(),
			AuctionID: auctionID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: now,
		}

		auction.CurrentPrice = amount
		auction.CurrentWinnerID = bidderID
		if err := e.store.CommitBid(auction, bid); err != nil {
			return fmt.Errorf("bidengine: failed to commit bid %s on auction %s: %w", bid.BidID, auctionID, err)
		}
		return nil
	})
	if err != nil {
		return model.Bid{}, err
	}

	utils.Info("bid accepted", map[string]any{
		"auction_id": auctionID,
		"bid_id":     bid.BidID,
		"bidder_id":  bidderID,
		"amount":     bid.Amount.String(),
	})
	return bid, nil
}

// ListBids returns all bids for an auction, newest first. Reads never
// take the per-auction lock and are safe to run alongside PlaceBid.
func (e *Engine) ListBids(auctionID string) ([]model.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("bidengine: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := e.store.BidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("bidengine: failed to list bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}
