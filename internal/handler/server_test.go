package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stratify/internal/cache"
	"stratify/internal/config"
	"stratify/internal/db/dbtest"
	"stratify/internal/handler"
	"stratify/internal/repository"
	"stratify/internal/router"
	"stratify/internal/service"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	StatusCode int             `json:"status_code"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newServer(t, nil, 0)
}

// newCachedTestServer runs the router with the detail cache backed by miniredis.
func newCachedTestServer(t *testing.T) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	client := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	return newServer(t, client, time.Minute)
}

func newServer(t *testing.T, cacheClient *cache.Client, ttl time.Duration) *testServer {
	t.Helper()
	gdb := dbtest.New(t)
	repos := repository.New(gdb)
	services := service.New(repos, cacheClient, ttl)

	e := echo.New()
	router.Register(e, &config.Config{}, router.Handlers{
		Asset:       handler.NewAssetHandler(services.Assets),
		Sector:      handler.NewSectorHandler(services.Sectors),
		Portfolio:   handler.NewPortfolioHandler(services.Portfolios),
		Position:    handler.NewPositionHandler(services.Positions),
		Transaction: handler.NewTransactionHandler(services.Transactions),
		User:        handler.NewUserHandler(services.Users),
		Watchlist:   handler.NewWatchlistHandler(services.Watchlists),
		Alert:       handler.NewAlertHandler(services.Alerts),
		Scenario:    handler.NewScenarioHandler(services.Scenarios),
		Audit:       handler.NewAuditHandler(services.AuditEvents),
		Health:      handler.NewHealthHandler(repos, cacheClient),
	})
	return &testServer{e: e, db: gdb}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

// create posts body to path, expects 201 and returns the id under idKey.
func (s *testServer) create(t *testing.T, path, body, idKey string) uint {
	t.Helper()
	code, env := s.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, code, "POST %s: %s", path, env.Error)
	require.True(t, env.Success)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	id, ok := data[idKey].(float64)
	require.True(t, ok, "missing %s in %s", idKey, env.Data)
	return uint(id)
}

// get fetches path, expects 200 and decodes data into a generic object.
func (s *testServer) get(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	code, env := s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, code, "GET %s: %s", path, env.Error)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func (s *testServer) list(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	code, env := s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, code, "GET %s: %s", path, env.Error)

	var data []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

// basics creates one user, one sector and one asset and returns their ids.
func (s *testServer) basics(t *testing.T) (userID, sectorID, assetID uint) {
	t.Helper()
	userID = s.create(t, "/user", `{"Name":"Ada Analyst","Email":"ada@example.com","Role":"analyst"}`, "UserID")
	sectorID = s.create(t, "/sector", `{"sectorName":"Technology","sectorDescription":"Software"}`, "sectorID")
	assetID = s.create(t, "/asset", fmt.Sprintf(
		`{"TickerSymbol":"AAPL","AssetName":"Apple Inc.","AssetType":"Stock","CurrentPrice":189.5,"sectorID":%d}`, sectorID), "assetID")
	return userID, sectorID, assetID
}
