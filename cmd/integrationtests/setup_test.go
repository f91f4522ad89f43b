package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auction-house/internal/auctions"
	"auction-house/internal/bidengine"
	"auction-house/internal/identity"
	"auction-house/internal/lifecycle"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/internal/server"
)

// TestEnv bundles the wired application with direct access to the
// store and session store for seeding.
type TestEnv struct {
	Router   *gin.Engine
	Store    *repository.MemoryStore
	Sessions *identity.SessionStore
}

// SetupTestEnv wires the full application against an in-memory store.
func SetupTestEnv() *TestEnv {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	sessions := identity.NewSessionStore()

	auctionSvc := auctions.NewService(store)
	lc := lifecycle.NewService(store)
	engine := bidengine.NewEngine(store)

	return &TestEnv{
		Router:   server.SetupRouter(auctionSvc, engine, lc, sessions),
		Store:    store,
		Sessions: sessions,
	}
}

// SeedAuction stores an auction directly, bypassing the service, so
// tests can create states the API itself refuses (stale open, closed).
func (env *TestEnv) SeedAuction(t *testing.T, auctionID, sellerID string, startingPrice string, status model.AuctionStatus, endTime time.Time) {
	t.Helper()

	price := decimal.RequireFromString(startingPrice)
	if err := env.Store.SaveAuction(model.Auction{
		AuctionID:     auctionID,
		Title:         "Seeded Auction " + auctionID,
		Description:   "integration test seed",
		StartingPrice: price,
		CurrentPrice:  price,
		StartTime:     time.Now().UTC().Add(-time.Hour),
		EndTime:       endTime,
		Status:        status,
		SellerID:      sellerID,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		t.Fatalf("failed to seed auction: %v", err)
	}
}

// Login issues a session for the user and returns the token.
func (env *TestEnv) Login(userID string) string {
	return env.Sessions.Issue(userID)
}

// ExecuteRequest executes an HTTP request with an optional session
// token and returns the response recorder.
func (env *TestEnv) ExecuteRequest(t *testing.T, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Session-Id", token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

// ParseData unmarshals the "data" envelope of a response body.
func ParseData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %s", w.Body.String())
	}
	return data
}

// ParseDataList unmarshals the "data" envelope as a list.
func ParseDataList(t *testing.T, w *httptest.ResponseRecorder) []any {
	t.Helper()

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok {
		t.Fatalf("response has no data list: %s", w.Body.String())
	}
	return data
}
