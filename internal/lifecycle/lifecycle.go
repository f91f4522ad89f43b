// Package lifecycle owns an auction's state transitions and is the
// single authority on whether an auction is still biddable. Stored
// status may lag behind the clock (an auction can sit "open" past its
// end time until a sweep or a bid attempt touches it), so callers must
// go through IsBiddable rather than trusting the status field alone.
package lifecycle

import (
	"fmt"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// IsBiddable reports whether the auction can accept bids at the given
// instant: open status and strictly before the end time. The end time
// itself is not biddable.
func IsBiddable(auction model.Auction, now time.Time) bool {
	return auction.Status == model.StatusOpen && now.Before(auction.EndTime)
}

// Service performs explicit auction state transitions
type Service struct {
	store repository.AuctionStore
}

// NewService creates a new lifecycle Service instance
func NewService(store repository.AuctionStore) *Service {
	return &Service{store: store}
}

// Cancel transitions an open auction to closed_cancelled. Only the
// seller may cancel, and only while the auction is still open. Price
// and winner are left untouched.
func (s *Service) Cancel(auctionID, requesterID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("lifecycle: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}
	if requesterID == "" {
		return model.Auction{}, fmt.Errorf("lifecycle: %w", auctionerrors.ErrUnauthenticated)
	}

	var cancelled model.Auction
	err := s.store.WithAuctionLock(auctionID, func() error {
		auction, err := s.store.GetAuction(auctionID)
		if err != nil {
			return fmt.Errorf("lifecycle: cancel auction %s: %w", auctionID, err)
		}
		if auction.SellerID != requesterID {
			return fmt.Errorf("lifecycle: cancel auction %s: %w", auctionID, auctionerrors.ErrForbidden)
		}
		if auction.Status != model.StatusOpen {
			return fmt.Errorf("lifecycle: cancel auction %s in status %s: %w",
				auctionID, auction.Status, auctionerrors.ErrInvalidState)
		}

		auction.Status = model.StatusClosedCancelled
		if err := s.store.SaveAuction(auction); err != nil {
			return fmt.Errorf("lifecycle: failed to save cancelled auction %s: %w", auctionID, err)
		}
		cancelled = auction
		return nil
	})
	if err != nil {
		return model.Auction{}, err
	}

	utils.Info("auction cancelled", map[string]any{
		"auction_id": cancelled.AuctionID,
		"seller_id":  cancelled.SellerID,
	})
	return cancelled, nil
}

// Expire transitions an open auction past its end time to
// closed_expired. Calling it on an already-closed auction, or on one
// whose end time has not arrived yet, is a no-op success so that
// independent sweeps and retries can overlap freely. The only failure
// is an unknown auction.
func (s *Service) Expire(auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("lifecycle: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}

	var result model.Auction
	var transitioned bool
	err := s.store.WithAuctionLock(auctionID, func() error {
		auction, err := s.store.GetAuction(auctionID)
		if err != nil {
			return fmt.Errorf("lifecycle: expire auction %s: %w", auctionID, err)
		}

		if auction.Status != model.StatusOpen || time.Now().Before(auction.EndTime) {
			result = auction
			return nil
		}

		auction.Status = model.StatusClosedExpired
		if err := s.store.SaveAuction(auction); err != nil {
			return fmt.Errorf("lifecycle: failed to save expired auction %s: %w", auctionID, err)
		}
		result = auction
		transitioned = true
		return nil
	})
	if err != nil {
		return model.Auction{}, err
	}

	if transitioned {
		utils.Info("auction expired", map[string]any{
			"auction_id":  result.AuctionID,
			"final_price": result.CurrentPrice.String(),
			"winner_id":   result.CurrentWinnerID,
		})
	}
	return result, nil
}
