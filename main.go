package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"auction-house/internal/auctions"
	"auction-house/internal/bidengine"
	"auction-house/internal/config"
	"auction-house/internal/identity"
	"auction-house/internal/lifecycle"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	"auction-house/internal/sweeper"
	"auction-house/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	utils.SetLogLevel(cfg.Log.Level)

	store := repository.NewMemoryStore()
	sessions := identity.NewSessionStore()

	auctionSvc := auctions.NewService(store)
	lifecycleSvc := lifecycle.NewService(store)
	engine := bidengine.NewEngine(store)

	seedDemoData(auctionSvc, sessions)

	sweep := sweeper.New(store, lifecycleSvc, cfg.Sweep.Interval)
	if err := sweep.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start expiry sweeper: %v\n", err)
		os.Exit(1)
	}
	defer sweep.Stop()

	router := server.SetupRouter(auctionSvc, engine, lifecycleSvc, sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// seedDemoData populates the store with sample sellers and open
// auctions, and issues demo session tokens so the API is usable out of
// the box. Tokens are logged at startup.
func seedDemoData(auctionSvc *auctions.Service, sessions *identity.SessionStore) {
	users := []model.User{
		{UserID: "user-john", Username: "john_doe"},
		{UserID: "user-jane", Username: "jane_smith"},
	}

	for _, u := range users {
		token := sessions.Issue(u.UserID)
		utils.Info("demo session issued", map[string]any{
			"user_id":  u.UserID,
			"username": u.Username,
			"token":    token,
		})
	}

	now := time.Now().UTC()
	drafts := []struct {
		sellerID string
		draft    auctions.Draft
	}{
		{
			sellerID: "user-john",
			draft: auctions.Draft{
				Title:         "Vintage Rolex Watch",
				Description:   "Beautiful vintage Rolex watch from 1980s. Excellent condition with original box and papers.",
				StartingPrice: decimal.RequireFromString("5000.00"),
				StartTime:     now.Add(-48 * time.Hour),
				EndTime:       now.Add(5 * 24 * time.Hour),
				ImageURL:      "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800",
			},
		},
		{
			sellerID: "user-jane",
			draft: auctions.Draft{
				Title:         "Rare Collectible Comic Book",
				Description:   "First edition Spider-Man comic book from 1963. Mint condition, professionally graded.",
				StartingPrice: decimal.RequireFromString("2000.00"),
				StartTime:     now.Add(-24 * time.Hour),
				EndTime:       now.Add(7 * 24 * time.Hour),
				ImageURL:      "https://images.unsplash.com/photo-1612198188060-c7c2a3b66eae?w=800",
			},
		},
		{
			sellerID: "user-john",
			draft: auctions.Draft{
				Title:         "Antique Persian Rug",
				Description:   "Handwoven Persian rug from early 1900s. Beautiful intricate patterns, excellent condition.",
				StartingPrice: decimal.RequireFromString("3000.00"),
				StartTime:     now,
				EndTime:       now.Add(10 * 24 * time.Hour),
				ImageURL:      "https://images.unsplash.com/photo-1586075010923-2dd4570fb338?w=800",
			},
		},
	}

	for _, d := range drafts {
		if _, err := auctionSvc.CreateAuction(d.sellerID, d.draft); err != nil {
			utils.Error("failed to seed demo auction", map[string]any{
				"title": d.draft.Title,
				"error": err.Error(),
			})
		}
	}
}
