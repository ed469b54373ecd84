package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jirassssa/lostfound-server/internal/models"
	"github.com/jirassssa/lostfound-server/internal/services"
)

// stubLedger is a minimal services.LedgerReader for handler tests.
type stubLedger struct {
	count      uint64
	countErr   error
	items      map[uint64]models.Item
	itemErr    map[uint64]error
	claimants  map[uint64][]common.Address
	messages   map[uint64]map[common.Address]string
	profiles   map[common.Address]models.UserProfile
	profileErr error
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		items:     make(map[uint64]models.Item),
		itemErr:   make(map[uint64]error),
		claimants: make(map[uint64][]common.Address),
		messages:  make(map[uint64]map[common.Address]string),
		profiles:  make(map[common.Address]models.UserProfile),
	}
}

func (s *stubLedger) ItemCount(context.Context) (uint64, error) { return s.count, s.countErr }

func (s *stubLedger) Item(_ context.Context, id uint64) (models.Item, error) {
	if err := s.itemErr[id]; err != nil {
		return models.Item{}, err
	}
	item, ok := s.items[id]
	if !ok {
		return models.Item{}, errors.New("execution reverted")
	}
	return item, nil
}

func (s *stubLedger) Claimants(_ context.Context, id uint64) ([]common.Address, error) {
	return s.claimants[id], nil
}

func (s *stubLedger) ClaimMessage(_ context.Context, id uint64, claimant common.Address) (string, error) {
	return s.messages[id][claimant], nil
}

func (s *stubLedger) UserProfile(_ context.Context, addr common.Address) (models.UserProfile, error) {
	if s.profileErr != nil {
		return models.UserProfile{}, s.profileErr
	}
	return s.profiles[addr], nil
}

func itemFixture(id uint64, owner common.Address, bounty int64) models.Item {
	return models.Item{
		ID:           id,
		Owner:        owner,
		Title:        "Lost keys",
		Category:     "Keys",
		BountyAmount: models.NewBigInt(big.NewInt(bounty)),
	}
}

func newTestRouter(ledger *stubLedger) *chi.Mux {
	logger := testLogger()
	aggregator := services.NewAggregatorService(ledger, 1, logger)
	profileSvc := services.NewProfileService(ledger, logger)
	h := NewItemHandler(aggregator, profileSvc, 200, logger)

	r := chi.NewRouter()
	r.Get("/api/item/{id}", h.Get)
	r.Get("/api/itemCount", h.Count)
	r.Get("/api/items/all", h.All)
	r.Get("/api/items", h.List)
	r.Get("/api/leaderboard", h.Leaderboard)
	r.Get("/api/profile", h.Profile)
	r.Get("/api/profile/{address}", h.Profile)
	return r
}

func doGet(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetItem(t *testing.T) {
	ledger := newStubLedger()
	owner := common.HexToAddress("0x8Ba1f109551bD432803012645Ac136ddd64DBA72")
	ledger.count = 1
	ledger.items[1] = itemFixture(1, owner, 5000)

	rec := doGet(t, newTestRouter(ledger), "/api/item/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		ID           uint64 `json:"id"`
		BountyAmount string `json:"bountyAmount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, "5000", got.BountyAmount)
}

func TestGetItemBadID(t *testing.T) {
	rec := doGet(t, newTestRouter(newStubLedger()), "/api/item/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, newTestRouter(newStubLedger()), "/api/item/0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetItemLedgerFailure(t *testing.T) {
	ledger := newStubLedger()
	ledger.count = 1
	ledger.itemErr[1] = errors.New("rpc: connection refused")

	rec := doGet(t, newTestRouter(ledger), "/api/item/1")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestItemCount(t *testing.T) {
	ledger := newStubLedger()
	ledger.count = 42

	rec := doGet(t, newTestRouter(ledger), "/api/itemCount")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"itemCount": 42}`, rec.Body.String())
}

func TestAllItemsPartialFailure(t *testing.T) {
	ledger := newStubLedger()
	ledger.count = 5
	for id := uint64(1); id <= 5; id++ {
		ledger.items[id] = itemFixture(id, common.Address{1}, 100)
	}
	ledger.itemErr[3] = errors.New("execution reverted")

	rec := doGet(t, newTestRouter(ledger), "/api/items/all")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Items     []json.RawMessage `json:"items"`
		ItemCount uint64            `json:"itemCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Items, 4)
	assert.Equal(t, uint64(5), got.ItemCount)
}

func TestListMineReportedCaseInsensitive(t *testing.T) {
	ledger := newStubLedger()
	ledger.count = 1
	ledger.items[1] = itemFixture(1, common.HexToAddress("0x8Ba1f109551bD432803012645Ac136ddd64DBA72"), 100)

	rec := doGet(t, newTestRouter(ledger),
		"/api/items?view=mine-reported&address=0x8ba1f109551bd432803012645ac136ddd64dba72")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Items, 1)
}

func TestListValidation(t *testing.T) {
	rec := doGet(t, newTestRouter(newStubLedger()), "/api/items?view=trending")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, newTestRouter(newStubLedger()), "/api/items?view=mine-claimed")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, newTestRouter(newStubLedger()), "/api/items?view=mine-claimed&address=zzz")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboard(t *testing.T) {
	ledger := newStubLedger()
	finder := common.HexToAddress("0x000000000000000000000000000000000000000a")
	ledger.count = 2
	one := itemFixture(1, common.Address{1}, 100)
	one.IsClaimed, one.IsResolved, one.Finder = true, true, finder
	two := itemFixture(2, common.Address{1}, 200)
	two.IsClaimed, two.IsResolved, two.Finder = true, true, finder
	ledger.items[1], ledger.items[2] = one, two

	rec := doGet(t, newTestRouter(ledger), "/api/leaderboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Entries []struct {
			ItemsFound  int    `json:"itemsFound"`
			TotalEarned string `json:"totalEarned"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Entries, 1)
	assert.Equal(t, 2, got.Entries[0].ItemsFound)
	assert.Equal(t, "294", got.Entries[0].TotalEarned)
}

func TestProfileEndpoints(t *testing.T) {
	ledger := newStubLedger()
	who := common.HexToAddress("0x0000000000000000000000000000000000000005")
	ledger.profiles[who] = models.UserProfile{
		Address:       who,
		ItemsReported: 3,
		IsRegistered:  true,
	}

	// Absent without an address
	rec := doGet(t, newTestRouter(ledger), "/api/profile")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())

	rec = doGet(t, newTestRouter(ledger), "/api/profile/0x0000000000000000000000000000000000000005")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"itemsReported":3`)

	rec = doGet(t, newTestRouter(ledger), "/api/profile/nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ledger.profileErr = errors.New("rpc: connection refused")
	rec = doGet(t, newTestRouter(ledger), "/api/profile/0x0000000000000000000000000000000000000005")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
