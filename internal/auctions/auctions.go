// Package auctions holds auction creation and the read-only catalog
// queries. Creation allocates a fresh identifier and therefore contends
// with nothing; the queries never mutate, so none of this needs the
// per-auction lock the bid engine uses.
package auctions

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/lifecycle"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// Draft carries the caller-supplied fields for a new auction. Status,
// current price, winner and timestamps are assigned by the service and
// any values a caller smuggles in are ignored.
type Draft struct {
	Title         string
	Description   string
	StartingPrice decimal.Decimal
	StartTime     time.Time
	EndTime       time.Time
	ImageURL      string
}

// Service creates auctions and serves catalog queries
type Service struct {
	store repository.AuctionStore
}

// NewService creates a new auction Service instance
func NewService(store repository.AuctionStore) *Service {
	return &Service{store: store}
}

// CreateAuction validates the draft and persists a new open auction
// owned by the given seller. Current price always starts at the
// starting price.
func (s *Service) CreateAuction(sellerID string, draft Draft) (model.Auction, error) {
	if sellerID == "" {
		return model.Auction{}, fmt.Errorf("auctions: %w", auctionerrors.ErrUnauthenticated)
	}
	if strings.TrimSpace(draft.Title) == "" {
		return model.Auction{}, fmt.Errorf("auctions: %w - missing title", auctionerrors.ErrInvalidInput)
	}
	if draft.StartingPrice.Sign() <= 0 {
		return model.Auction{}, fmt.Errorf("auctions: %w - non-positive starting price %s",
			auctionerrors.ErrInvalidInput, draft.StartingPrice.String())
	}
	if draft.StartTime.IsZero() || draft.EndTime.IsZero() {
		return model.Auction{}, fmt.Errorf("auctions: %w - missing start or end time", auctionerrors.ErrInvalidInput)
	}
	if !draft.EndTime.After(draft.StartTime) {
		return model.Auction{}, fmt.Errorf("auctions: %w - end time must be after start time", auctionerrors.ErrInvalidInput)
	}

	auction := model.Auction{
		AuctionID:     utils.GenerateID(),
		Title:         draft.Title,
		Description:   draft.Description,
		StartingPrice: draft.StartingPrice,
		CurrentPrice:  draft.StartingPrice,
		StartTime:     draft.StartTime,
		EndTime:       draft.EndTime,
		ImageURL:      draft.ImageURL,
		Status:        model.StatusOpen,
		SellerID:      sellerID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.SaveAuction(auction); err != nil {
		return model.Auction{}, fmt.Errorf("auctions: failed to save auction for seller %s: %w", sellerID, err)
	}

	utils.Info("auction created", map[string]any{
		"auction_id":     auction.AuctionID,
		"seller_id":      sellerID,
		"starting_price": auction.StartingPrice.String(),
		"end_time":       auction.EndTime,
	})
	return auction, nil
}

// GetAuction returns a single auction by ID
func (s *Service) GetAuction(auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("auctions: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("auctions: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// ListAllAuctions returns every auction in the catalog
func (s *Service) ListAllAuctions() ([]model.Auction, error) {
	return s.findSorted(nil)
}

// ListActiveAuctions returns the auctions that are biddable right now.
// The filter runs against the clock, not the stored status, so an
// auction past its end time drops out even before a sweep closes it.
func (s *Service) ListActiveAuctions() ([]model.Auction, error) {
	now := time.Now().UTC()
	return s.findSorted(func(a model.Auction) bool {
		return lifecycle.IsBiddable(a, now)
	})
}

// ListAuctionsBySeller returns all auctions created by the given seller
func (s *Service) ListAuctionsBySeller(sellerID string) ([]model.Auction, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("auctions: %w - missing seller ID", auctionerrors.ErrInvalidInput)
	}
	return s.findSorted(func(a model.Auction) bool {
		return a.SellerID == sellerID
	})
}

// SearchAuctions returns auctions whose title contains the query,
// case-insensitively
func (s *Service) SearchAuctions(query string) ([]model.Auction, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return s.ListAllAuctions()
	}
	return s.findSorted(func(a model.Auction) bool {
		return strings.Contains(strings.ToLower(a.Title), needle)
	})
}

// findSorted runs a predicate scan and orders the result newest first
// so listings are stable across calls.
func (s *Service) findSorted(match func(model.Auction) bool) ([]model.Auction, error) {
	auctions, err := s.store.FindAuctions(match)
	if err != nil {
		return nil, fmt.Errorf("auctions: failed to scan auctions: %w", err)
	}
	sort.Slice(auctions, func(i, j int) bool {
		if auctions[i].CreatedAt.Equal(auctions[j].CreatedAt) {
			return auctions[i].AuctionID < auctions[j].AuctionID
		}
		return auctions[i].CreatedAt.After(auctions[j].CreatedAt)
	})
	return auctions, nil
}
