package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratify/internal/model"
)

func TestGrowthPortfolioScenario(t *testing.T) {
	s := newTestServer(t)
	userID, sectorID, _ := s.basics(t)
	require.Equal(t, uint(1), userID)
	for _, ticker := range []string{"MSFT", "NVDA", "JNJ", "JPM"} {
		s.create(t, "/asset", fmt.Sprintf(
			`{"TickerSymbol":%q,"AssetName":"x","AssetType":"Stock","CurrentPrice":1,"sectorID":%d}`, ticker, sectorID), "assetID")
	}

	portfolioID := s.create(t, "/portfolio", `{"Name":"Growth","userID":1}`, "portfolioID")
	assert.NotZero(t, portfolioID)

	position := fmt.Sprintf(`{"portfolioID":%d,"assetID":5,"Quantity":10,"AvgCostBasis":100.0}`, portfolioID)
	s.create(t, "/position", position, "positionID")

	code, env := s.do(t, http.MethodPost, "/position", position)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Position already exists for this portfolio and asset", env.Error)
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)

	rows := s.list(t, fmt.Sprintf("/position?portfolioID=%d&assetID=5", portfolioID))
	assert.Len(t, rows, 1)

	var count int64
	require.NoError(t, s.db.Model(&model.Position{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetMissingAsset(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/asset/4242", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Asset not found", env.Error)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
}

func TestDeleteAssetThenGet(t *testing.T) {
	s := newTestServer(t)
	_, _, assetID := s.basics(t)
	path := fmt.Sprintf("/asset/%d", assetID)

	code, env := s.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, _ = s.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpdatePortfolio_NoValidFields(t *testing.T) {
	s := newTestServer(t)
	userID, _, _ := s.basics(t)
	portfolioID := s.create(t, "/portfolio", fmt.Sprintf(`{"Name":"Growth","Description":"core","userID":%d}`, userID), "portfolioID")
	path := fmt.Sprintf("/portfolio/%d", portfolioID)
	before := s.get(t, path)

	code, env := s.do(t, http.MethodPut, path, `{"userID":99,"Colour":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No valid fields to update", env.Error)

	after := s.get(t, path)
	assert.Equal(t, before, after)

	code, _ = s.do(t, http.MethodPut, "/portfolio/999", `{"Colour":"blue"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPut, path, `{"Name":"Income"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Income", s.get(t, path)["Name"])
	assert.Equal(t, "core", s.get(t, path)["Description"])
}

func TestCreate_RoundTrip(t *testing.T) {
	s := newTestServer(t)
	userID, sectorID, assetID := s.basics(t)
	portfolioID := s.create(t, "/portfolio", fmt.Sprintf(`{"Name":"Growth","Description":"long","userID":%d}`, userID), "portfolioID")

	tests := []struct {
		name   string
		path   string
		body   string
		idKey  string
		expect map[string]interface{}
	}{
		{
			name:   "user",
			path:   "/user",
			body:   `{"Name":"Dana","Email":"dana@example.com","Role":"director"}`,
			idKey:  "UserID",
			expect: map[string]interface{}{"Name": "Dana", "Email": "dana@example.com", "Role": "director"},
		},
		{
			name:   "sector",
			path:   "/sector",
			body:   `{"sectorName":"Energy","sectorDescription":"Oil and gas"}`,
			idKey:  "sectorID",
			expect: map[string]interface{}{"sectorName": "Energy", "sectorDescription": "Oil and gas"},
		},
		{
			name:  "asset",
			path:  "/asset",
			body:  fmt.Sprintf(`{"TickerSymbol":"MSFT","AssetName":"Microsoft","AssetType":"Stock","CurrentPrice":"412.25","sectorID":%d}`, sectorID),
			idKey: "assetID",
			expect: map[string]interface{}{
				"TickerSymbol": "MSFT", "AssetName": "Microsoft", "AssetType": "Stock",
				"CurrentPrice": 412.25, "sectorID": float64(sectorID), "sectorName": "Technology",
			},
		},
		{
			name:   "portfolio",
			path:   "/portfolio",
			body:   fmt.Sprintf(`{"Name":"Income","Description":"dividends","userID":%d}`, userID),
			idKey:  "portfolioID",
			expect: map[string]interface{}{"Name": "Income", "Description": "dividends", "userID": float64(userID), "userName": "Ada Analyst"},
		},
		{
			name:  "position",
			path:  "/position",
			body:  fmt.Sprintf(`{"portfolioID":%d,"assetID":%d,"Quantity":10,"AvgCostBasis":100.5}`, portfolioID, assetID),
			idKey: "positionID",
			expect: map[string]interface{}{
				"portfolioID": float64(portfolioID), "assetID": float64(assetID),
				"Quantity": 10.0, "AvgCostBasis": 100.5, "TickerSymbol": "AAPL", "portfolioName": "Growth",
			},
		},
		{
			name:  "transaction",
			path:  "/transaction",
			body:  fmt.Sprintf(`{"portfolioID":%d,"assetID":%d,"transactionType":"BUY","quantity":5,"price":190.25,"transactionDate":"2024-10-25","notes":"first lot"}`, portfolioID, assetID),
			idKey: "transactionID",
			expect: map[string]interface{}{
				"portfolioID": float64(portfolioID), "assetID": float64(assetID), "transactionType": "buy",
				"quantity": 5.0, "price": 190.25, "transactionDate": "2024-10-25T00:00:00Z", "notes": "first lot",
			},
		},
		{
			name:   "watchlist",
			path:   "/watchlist",
			body:   fmt.Sprintf(`{"userID":%d,"assetID":"%d"}`, userID, assetID),
			idKey:  "watchlistID",
			expect: map[string]interface{}{"userID": float64(userID), "assetID": float64(assetID)},
		},
		{
			name:  "alert",
			path:  "/alert",
			body:  fmt.Sprintf(`{"name":"Drawdown","alertType":"risk","severity":"high","portfolioID":%d,"message":"Down 10%%"}`, portfolioID),
			idKey: "alertID",
			expect: map[string]interface{}{
				"name": "Drawdown", "alertType": "risk", "severity": "high", "portfolioID": float64(portfolioID), "message": "Down 10%",
			},
		},
		{
			name:  "scenario",
			path:  "/scenario",
			body:  fmt.Sprintf(`{"name":"Rate shock","scenarioType":"stress","portfolioID":%d,"impactPct":-12.5}`, portfolioID),
			idKey: "scenarioID",
			expect: map[string]interface{}{
				"name": "Rate shock", "scenarioType": "stress", "portfolioID": float64(portfolioID), "impactPct": -12.5,
			},
		},
		{
			name:   "audit event",
			path:   "/audit/events",
			body:   fmt.Sprintf(`{"eventType":"login","userID":%d,"details":{"ip":"10.0.0.1"}}`, userID),
			idKey:  "auditID",
			expect: map[string]interface{}{"eventType": "login", "userID": float64(userID), "details": map[string]interface{}{"ip": "10.0.0.1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := s.create(t, tt.path, tt.body, tt.idKey)
			got := s.get(t, fmt.Sprintf("%s/%d", tt.path, id))
			assert.Equal(t, float64(id), got[tt.idKey])
			for key, want := range tt.expect {
				assert.Equal(t, want, got[key], key)
			}
		})
	}
}

func TestCreate_ReportsFirstMissingField(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/position", `{"assetID":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required field: portfolioID", env.Error)

	code, env = s.do(t, http.MethodPost, "/position", `{"portfolioID":1,"assetID":1,"AvgCostBasis":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required field: Quantity", env.Error)
}

func TestCreate_Validation(t *testing.T) {
	s := newTestServer(t)
	userID, _, _ := s.basics(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"malformed json", "/portfolio", `{"Name":`, http.StatusBadRequest, "Invalid JSON body"},
		{"bad id", "/portfolio", `{"Name":"x","userID":"abc"}`, http.StatusBadRequest, "Invalid value for field: userID"},
		{"empty name", "/portfolio", fmt.Sprintf(`{"Name":"","userID":%d}`, userID), http.StatusBadRequest, "Invalid value for field: Name"},
		{"unknown user", "/portfolio", `{"Name":"x","userID":999}`, http.StatusNotFound, "User not found"},
		{"bad email", "/user", `{"Name":"x","Email":"nope"}`, http.StatusBadRequest, "Invalid value for field: Email"},
		{"bad side", "/transaction", `{"portfolioID":1,"assetID":1,"transactionType":"hold","quantity":1,"price":1}`, http.StatusBadRequest, "Invalid value for field: transactionType"},
		{"bad decimal", "/position", `{"portfolioID":1,"assetID":1,"Quantity":"ten","AvgCostBasis":1}`, http.StatusBadRequest, "Invalid value for field: Quantity"},
		{"unknown sector", "/asset", `{"TickerSymbol":"T","AssetName":"T","AssetType":"Stock","CurrentPrice":1,"sectorID":77}`, http.StatusNotFound, "Sector not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
			assert.Equal(t, tt.wantStatus, env.StatusCode)
		})
	}
}

func TestList_Filters(t *testing.T) {
	s := newTestServer(t)
	userID, sectorID, assetID := s.basics(t)
	otherSector := s.create(t, "/sector", `{"sectorName":"Energy"}`, "sectorID")
	s.create(t, "/asset", fmt.Sprintf(`{"TickerSymbol":"XOM","AssetName":"Exxon","AssetType":"Stock","CurrentPrice":118,"sectorID":%d}`, otherSector), "assetID")
	s.create(t, "/asset", fmt.Sprintf(`{"TickerSymbol":"ADBE","AssetName":"Adobe","AssetType":"Stock","CurrentPrice":500,"sectorID":%d}`, sectorID), "assetID")

	assets := s.list(t, fmt.Sprintf("/asset?sectorID=%d", sectorID))
	require.Len(t, assets, 2)
	assert.Equal(t, "ADBE", assets[0]["TickerSymbol"], "ordered by ticker")
	assert.Equal(t, "AAPL", assets[1]["TickerSymbol"])

	assert.Len(t, s.list(t, "/asset?ticker=XOM"), 1)

	portfolioID := s.create(t, "/portfolio", fmt.Sprintf(`{"Name":"Growth","userID":%d}`, userID), "portfolioID")
	for _, tx := range []string{
		`{"transactionType":"buy","transactionDate":"2024-01-05"}`,
		`{"transactionType":"sell","transactionDate":"2024-02-05"}`,
		`{"transactionType":"buy","transactionDate":"2024-03-05"}`,
	} {
		body := fmt.Sprintf(`{"portfolioID":%d,"assetID":%d,"quantity":1,"price":1,`, portfolioID, assetID) + tx[1:]
		s.create(t, "/transaction", body, "transactionID")
	}

	assert.Len(t, s.list(t, "/transaction?transactionType=buy"), 2)
	ranged := s.list(t, "/transaction?startDate=2024-02-01&endDate=2024-03-05")
	require.Len(t, ranged, 2)
	assert.Equal(t, "2024-03-05T00:00:00Z", ranged[0]["transactionDate"], "newest first")

	for _, path := range []string{"/asset?sectorID=abc", "/transaction?startDate=yesterday", "/transaction?transactionType=hold", "/position?portfolioID=-1"} {
		code, env := s.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, code, path)
		assert.False(t, env.Success)
	}
}

func TestTransactionDoesNotMovePosition(t *testing.T) {
	s := newTestServer(t)
	userID, _, assetID := s.basics(t)
	portfolioID := s.create(t, "/portfolio", fmt.Sprintf(`{"Name":"Growth","userID":%d}`, userID), "portfolioID")
	positionID := s.create(t, "/position", fmt.Sprintf(`{"portfolioID":%d,"assetID":%d,"Quantity":10,"AvgCostBasis":100}`, portfolioID, assetID), "positionID")

	s.create(t, "/transaction", fmt.Sprintf(`{"portfolioID":%d,"assetID":%d,"transactionType":"sell","quantity":4,"price":150}`, portfolioID, assetID), "transactionID")

	position := s.get(t, fmt.Sprintf("/position/%d", positionID))
	assert.Equal(t, 10.0, position["Quantity"])
	assert.Equal(t, 100.0, position["AvgCostBasis"])
}

func TestPortfolioDetailIncludesPositions(t *testing.T) {
	s := newTestServer(t)
	userID, _, assetID := s.basics(t)
	portfolioID := s.create(t, "/portfolio", fmt.Sprintf(`{"Name":"Growth","userID":%d}`, userID), "portfolioID")
	s.create(t, "/position", fmt.Sprintf(`{"portfolioID":%d,"assetID":%d,"Quantity":3,"AvgCostBasis":50}`, portfolioID, assetID), "positionID")

	detail := s.get(t, fmt.Sprintf("/portfolio/%d", portfolioID))
	positions, ok := detail["positions"].([]interface{})
	require.True(t, ok)
	require.Len(t, positions, 1)
	assert.Equal(t, "AAPL", positions[0].(map[string]interface{})["TickerSymbol"])

	code, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/portfolio/%d", portfolioID), "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, s.list(t, fmt.Sprintf("/position?portfolioID=%d", portfolioID)), 1, "positions are not cascaded")
}

func TestUserRoleAndActivity(t *testing.T) {
	s := newTestServer(t)
	userID, _, _ := s.basics(t)
	path := fmt.Sprintf("/user/%d", userID)

	code, env := s.do(t, http.MethodPut, path+"/role", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required field: role", env.Error)

	code, _ = s.do(t, http.MethodPut, "/user/999/role", `{"role":"director"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPut, path+"/role", `{"role":"director"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "director", s.get(t, path)["Role"])

	activity := s.list(t, path+"/activity")
	require.Len(t, activity, 1)
	assert.Equal(t, "role_change", activity[0]["activityType"])

	assert.Len(t, s.list(t, path+"/activity?endDate=2000-01-01"), 0)
}

func TestAssetExtras(t *testing.T) {
	s := newTestServer(t)
	_, sectorID, assetID := s.basics(t)

	bySector := s.get(t, fmt.Sprintf("/asset/sector/%d", sectorID))
	assert.Equal(t, "Technology", bySector["sector"].(map[string]interface{})["sectorName"])
	assert.Len(t, bySector["assets"], 1)

	assert.Empty(t, s.list(t, fmt.Sprintf("/asset/%d/price-history?start_date=2024-01-01", assetID)))

	code, _ := s.do(t, http.MethodGet, "/asset/999/price-history", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(t, http.MethodGet, "/asset/sector/999", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouting_Envelope(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/asset/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid id: abc", env.Error)

	code, env = s.do(t, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)

	code, env = s.do(t, http.MethodPut, "/alert/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.False(t, env.Success)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	data := s.get(t, "/healthz")
	assert.Equal(t, "ok", data["database"])
	assert.Equal(t, "ok", data["cache"])
}

func TestCachedPortfolio_FollowsAssetAndUserWrites(t *testing.T) {
	s := newCachedTestServer(t)
	userID, _, assetID := s.basics(t)
	portfolioID := s.create(t, "/portfolio", fmt.Sprintf(`{"Name":"Growth","userID":%d}`, userID), "portfolioID")
	s.create(t, "/position", fmt.Sprintf(`{"portfolioID":%d,"assetID":%d,"Quantity":10,"AvgCostBasis":100}`, portfolioID, assetID), "positionID")
	path := fmt.Sprintf("/portfolio/%d", portfolioID)

	position := func(detail map[string]interface{}) map[string]interface{} {
		positions, ok := detail["positions"].([]interface{})
		require.True(t, ok)
		require.Len(t, positions, 1)
		return positions[0].(map[string]interface{})
	}
	assert.Equal(t, 189.5, position(s.get(t, path))["CurrentPrice"])

	code, _ := s.do(t, http.MethodPut, fmt.Sprintf("/asset/%d", assetID), `{"CurrentPrice":250}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPut, fmt.Sprintf("/user/%d", userID), `{"Name":"Renamed"}`)
	require.Equal(t, http.StatusOK, code)

	detail := s.get(t, path)
	assert.Equal(t, 250.0, position(detail)["CurrentPrice"])
	assert.Equal(t, "Renamed", detail["userName"])

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/asset/%d", assetID), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "", position(s.get(t, path))["TickerSymbol"])
}

func TestCreateTransaction_NullDateDefaultsToNow(t *testing.T) {
	s := newTestServer(t)
	userID, _, assetID := s.basics(t)
	portfolioID := s.create(t, "/portfolio", fmt.Sprintf(`{"Name":"Growth","userID":%d}`, userID), "portfolioID")

	before := time.Now().UTC().Add(-time.Second)
	id := s.create(t, "/transaction", fmt.Sprintf(
		`{"portfolioID":%d,"assetID":%d,"transactionType":"buy","quantity":1,"price":1,"transactionDate":null}`, portfolioID, assetID), "transactionID")

	tx := s.get(t, fmt.Sprintf("/transaction/%d", id))
	date, err := time.Parse(time.RFC3339, tx["transactionDate"].(string))
	require.NoError(t, err)
	assert.False(t, date.Before(before.Truncate(time.Second)))
}

func TestUpdate_RejectsBlankRequiredText(t *testing.T) {
	s := newTestServer(t)
	userID, _, assetID := s.basics(t)
	portfolioID := s.create(t, "/portfolio", fmt.Sprintf(`{"Name":"Growth","userID":%d}`, userID), "portfolioID")

	tests := []struct {
		name      string
		path      string
		body      string
		wantError string
	}{
		{"empty ticker", fmt.Sprintf("/asset/%d", assetID), `{"TickerSymbol":""}`, "Invalid value for field: TickerSymbol"},
		{"blank asset name", fmt.Sprintf("/asset/%d", assetID), `{"AssetName":"   "}`, "Invalid value for field: AssetName"},
		{"null user name", fmt.Sprintf("/user/%d", userID), `{"Name":null}`, "Invalid value for field: Name"},
		{"bad email", fmt.Sprintf("/user/%d", userID), `{"Email":"nope"}`, "Invalid value for field: Email"},
		{"empty portfolio name", fmt.Sprintf("/portfolio/%d", portfolioID), `{"Name":""}`, "Invalid value for field: Name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(t, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.wantError, env.Error)
		})
	}

	assert.Equal(t, "AAPL", s.get(t, fmt.Sprintf("/asset/%d", assetID))["TickerSymbol"])
	assert.Equal(t, "Ada Analyst", s.get(t, fmt.Sprintf("/user/%d", userID))["Name"])

	code, _ := s.do(t, http.MethodPut, fmt.Sprintf("/asset/%d", assetID), `{"TickerSymbol":"  AAPL.O  "}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "AAPL.O", s.get(t, fmt.Sprintf("/asset/%d", assetID))["TickerSymbol"])
}
