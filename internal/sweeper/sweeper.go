// Package sweeper proactively closes auctions whose end time has
// passed. Biddability is always re-checked at bid time, so the system
// stays correct without the sweep; the sweep just keeps stored status
// and listings from lagging the clock indefinitely.
package sweeper

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"auction-house/internal/lifecycle"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// Sweeper periodically expires overdue open auctions
type Sweeper struct {
	cron      *cron.Cron
	store     repository.AuctionStore
	lifecycle *lifecycle.Service
	interval  time.Duration
}

// New creates a new Sweeper instance
func New(store repository.AuctionStore, lc *lifecycle.Service, interval time.Duration) *Sweeper {
	return &Sweeper{
		cron:      cron.New(cron.WithSeconds()),
		store:     store,
		lifecycle: lc,
		interval:  interval,
	}
}

// Start schedules the sweep and starts the cron runner
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.Sweep)
	if err != nil {
		return fmt.Errorf("sweeper: failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	utils.Info("expiry sweeper started", map[string]any{"interval": s.interval.String()})
	return nil
}

// Stop halts the cron runner; a sweep already in flight finishes.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	utils.Info("expiry sweeper stopped", nil)
}

// Sweep expires every open auction whose end time has passed. Expire is
// idempotent, so overlapping sweeps and bid-path closures are harmless.
func (s *Sweeper) Sweep() {
	now := time.Now().UTC()
	overdue, err := s.store.FindAuctions(func(a model.Auction) bool {
		return a.Status == model.StatusOpen && !now.Before(a.EndTime)
	})
	if err != nil {
		utils.Error("sweep scan failed", map[string]any{"error": err.Error()})
		return
	}

	for _, auction := range overdue {
		if _, err := s.lifecycle.Expire(auction.AuctionID); err != nil {
			utils.Error("sweep failed to expire auction", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
		}
	}

	if len(overdue) > 0 {
		utils.Info("sweep expired overdue auctions", map[string]any{"count": len(overdue)})
	}
}
