package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	bidding "auction-settlement/internal/biddingService"
	"auction-settlement/internal/finance"
	model "auction-settlement/internal/models"
	"auction-settlement/internal/notifier"
	"auction-settlement/internal/repository"
	"auction-settlement/internal/server"
	settlement "auction-settlement/internal/settlementService"
	"auction-settlement/internal/sweeper"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the full router with an in-memory repository
// for integration testing. The sweeper is wired but not started; sweeps run
// only when the trigger endpoint is called.
func SetupTestRouter() (*gin.Engine, *repository.MemoryRepo) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	calc := finance.NewCalculator(finance.DefaultConfig())
	settlementSvc := settlement.NewSettlementService(repo, calc, notifier.NewLogNotifier())
	biddingSvc := bidding.NewBiddingService(repo)
	sw := sweeper.New(repo, settlementSvc, time.Hour, 100)

	router := server.SetupRouter(biddingSvc, settlementSvc, sw)
	return router, repo
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	case nil:
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if w.Code == 201 {
			resp = resp["data"].(map[string]any)
		}
	}

	return resp, w
}

// SeedUsers adds users to the repo, failing the test on error.
func SeedUsers(t *testing.T, repo *repository.MemoryRepo, users ...model.User) {
	t.Helper()
	for _, user := range users {
		if err := repo.AddUser(user); err != nil {
			t.Fatalf("failed to seed user %s: %v", user.UserID, err)
		}
	}
}

// SeedAuctions adds auctions to the repo, failing the test on error.
func SeedAuctions(t *testing.T, repo *repository.MemoryRepo, auctions ...model.Auction) {
	t.Helper()
	for _, auction := range auctions {
		if err := repo.AddAuction(auction); err != nil {
			t.Fatalf("failed to seed auction %s: %v", auction.AuctionID, err)
		}
	}
}
