package repository

import (
	"fmt"
	"sync"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionStore defines the storage contract for auctions and bids.
//
// WithAuctionLock is the exclusivity primitive the bid engine and the
// lifecycle component rely on: fn runs while holding a mutex scoped to
// the single auction identified by auctionID, so validate-and-commit
// sequences for the same auction are strictly ordered while unrelated
// auctions proceed in parallel.
type AuctionStore interface {
	SaveAuction(auction model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	FindAuctions(match func(model.Auction) bool) ([]model.Auction, error)
	// CommitBid records the bid and the updated auction projection
	// (current price, current winner) as a single atomic unit.
	CommitBid(auction model.Auction, bid model.Bid) error
	// BidsByAuction returns the auction's bids, newest first.
	BidsByAuction(auctionID string) ([]model.Bid, error)
	WithAuctionLock(auctionID string, fn func() error) error
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction // key: auctionID
	bids     map[string][]model.Bid   // key: auctionID -> bids in acceptance order

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex // key: auctionID -> per-auction commit lock
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]model.Auction),
		bids:     make(map[string][]model.Bid),
		locks:    make(map[string]*sync.Mutex),
	}
}

// SaveAuction inserts or updates an auction record
func (s *MemoryStore) SaveAuction(auction model.Auction) error {
	if auction.AuctionID == "" {
		return fmt.Errorf("save auction: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns the auction with the given ID
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// FindAuctions returns all auctions matching the predicate. A nil
// predicate matches everything.
func (s *MemoryStore) FindAuctions(match func(model.Auction) bool) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Auction, 0, len(s.auctions))
	for _, auction := range s.auctions {
		if match == nil || match(auction) {
			result = append(result, auction)
		}
	}
	return result, nil
}

// CommitBid appends the bid and overwrites the auction projection under
// one write lock, so a reader never observes one without the other.
func (s *MemoryStore) CommitBid(auction model.Auction, bid model.Bid) error {
	if bid.AuctionID != auction.AuctionID {
		return fmt.Errorf("commit bid %s: %w - bid targets auction %s, not %s",
			bid.BidID, auctionerrors.ErrInvalidInput, bid.AuctionID, auction.AuctionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[auction.AuctionID]; !ok {
		return fmt.Errorf("commit bid for auction %s: %w", auction.AuctionID, auctionerrors.ErrAuctionNotFound)
	}

	s.auctions[auction.AuctionID] = auction
	s.bids[auction.AuctionID] = append(s.bids[auction.AuctionID], bid)
	return nil
}

// BidsByAuction returns the auction's bids, newest first
func (s *MemoryStore) BidsByAuction(auctionID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	stored := s.bids[auctionID]
	result := make([]model.Bid, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		result = append(result, stored[i])
	}
	return result, nil
}

// WithAuctionLock runs fn while holding the mutex for the given auction ID
func (s *MemoryStore) WithAuctionLock(auctionID string, fn func() error) error {
	mu := s.auctionLock(auctionID)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// auctionLock returns the per-auction mutex, creating it on first use.
// Lock entries live as long as the store; auctions are never deleted.
func (s *MemoryStore) auctionLock(auctionID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	if mu, ok := s.locks[auctionID]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	s.locks[auctionID] = mu
	return mu
}
