package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stratify/internal/cache"
	"stratify/internal/db/dbtest"
	apperrors "stratify/internal/errors"
	"stratify/internal/model"
	"stratify/internal/repository"
)

type fixture struct {
	svc       *Services
	db        *gorm.DB
	user      model.User
	sector    model.Sector
	asset     model.Asset
	portfolio model.Portfolio
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCache(t, nil, 0)
}

func newFixtureWithCache(t *testing.T, cacheClient *cache.Client, ttl time.Duration) *fixture {
	t.Helper()
	ctx := context.Background()
	gdb := dbtest.New(t)
	svc := New(repository.New(gdb), cacheClient, ttl)

	f := &fixture{svc: svc, db: gdb}
	f.user = model.User{Name: "Ada Analyst", Email: "ada@example.com", Role: "analyst"}
	require.NoError(t, svc.Users.Create(ctx, &f.user))
	f.sector = model.Sector{Name: "Technology", Description: "Software and hardware"}
	require.NoError(t, svc.Sectors.Create(ctx, &f.sector))
	f.asset = model.Asset{
		TickerSymbol: "AAPL",
		AssetName:    "Apple Inc.",
		AssetType:    "Stock",
		CurrentPrice: decimal.RequireFromString("189.5"),
		SectorID:     f.sector.ID,
	}
	require.NoError(t, svc.Assets.Create(ctx, &f.asset))
	f.portfolio = model.Portfolio{Name: "Growth", UserID: f.user.ID}
	require.NoError(t, svc.Portfolios.Create(ctx, &f.portfolio))
	return f
}

func rawBody(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var b map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &b))
	return b
}

func TestPortfolioService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.NotZero(t, f.portfolio.ID)
	assert.False(t, f.portfolio.DateCreated.IsZero())

	err := f.svc.Portfolios.Create(ctx, &model.Portfolio{Name: "Orphan", UserID: 999})
	assert.Equal(t, apperrors.ErrUserNotFound, err)
}

func TestPortfolioService_GetAttachesPositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Positions.Create(ctx, &model.Position{
		PortfolioID:  f.portfolio.ID,
		AssetID:      f.asset.ID,
		Quantity:     decimal.NewFromInt(10),
		AvgCostBasis: decimal.RequireFromString("100"),
	}))

	detail, err := f.svc.Portfolios.Get(ctx, f.portfolio.ID)
	require.NoError(t, err)
	assert.Equal(t, "Growth", detail.Name)
	assert.Equal(t, "Ada Analyst", detail.UserName)
	require.Len(t, detail.Positions, 1)
	assert.Equal(t, "AAPL", detail.Positions[0].TickerSymbol)
	assert.True(t, decimal.NewFromInt(10).Equal(detail.Positions[0].Quantity))

	_, err = f.svc.Portfolios.Get(ctx, 999)
	assert.Equal(t, apperrors.ErrPortfolioNotFound, err)
}

func TestPortfolioService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.Portfolios.Update(ctx, f.portfolio.ID, rawBody(t, `{"userID": 7, "colour": "red"}`))
	assert.ErrorIs(t, err, apperrors.ErrNoValidFields)

	detail, err := f.svc.Portfolios.Get(ctx, f.portfolio.ID)
	require.NoError(t, err)
	assert.Equal(t, "Growth", detail.Name)
	assert.Equal(t, f.user.ID, detail.UserID)

	err = f.svc.Portfolios.Update(ctx, 999, rawBody(t, `{"colour": "red"}`))
	assert.Equal(t, apperrors.ErrPortfolioNotFound, err, "existence is checked before the field list")

	require.NoError(t, f.svc.Portfolios.Update(ctx, f.portfolio.ID, rawBody(t, `{"Description": "long horizon"}`)))
	detail, err = f.svc.Portfolios.Get(ctx, f.portfolio.ID)
	require.NoError(t, err)
	assert.Equal(t, "Growth", detail.Name)
	assert.Equal(t, "long horizon", detail.Description)
}

func TestPortfolioService_DeleteLeavesPositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	position := model.Position{PortfolioID: f.portfolio.ID, AssetID: f.asset.ID, Quantity: decimal.NewFromInt(1), AvgCostBasis: decimal.NewFromInt(1)}
	require.NoError(t, f.svc.Positions.Create(ctx, &position))

	require.NoError(t, f.svc.Portfolios.Delete(ctx, f.portfolio.ID))
	assert.Equal(t, apperrors.ErrPortfolioNotFound, f.svc.Portfolios.Delete(ctx, f.portfolio.ID))

	got, err := f.svc.Positions.Get(ctx, position.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PortfolioName)
}

func TestPositionService_Create(t *testing.T) {
	tests := []struct {
		name          string
		position      func(f *fixture) model.Position
		expectedError error
	}{
		{
			name: "unknown portfolio",
			position: func(f *fixture) model.Position {
				return model.Position{PortfolioID: 999, AssetID: f.asset.ID}
			},
			expectedError: apperrors.ErrPortfolioNotFound,
		},
		{
			name: "unknown asset",
			position: func(f *fixture) model.Position {
				return model.Position{PortfolioID: f.portfolio.ID, AssetID: 999}
			},
			expectedError: apperrors.ErrAssetNotFound,
		},
		{
			name: "valid",
			position: func(f *fixture) model.Position {
				return model.Position{PortfolioID: f.portfolio.ID, AssetID: f.asset.ID, Quantity: decimal.NewFromInt(10), AvgCostBasis: decimal.NewFromInt(100)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			position := tt.position(f)
			err := f.svc.Positions.Create(context.Background(), &position)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				return
			}
			assert.NoError(t, err)
			assert.NotZero(t, position.ID)
		})
	}
}

func TestPositionService_CreateDuplicatePair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := model.Position{PortfolioID: f.portfolio.ID, AssetID: f.asset.ID, Quantity: decimal.NewFromInt(10), AvgCostBasis: decimal.NewFromInt(100)}
	require.NoError(t, f.svc.Positions.Create(ctx, &first))

	second := first
	second.ID = 0
	err := f.svc.Positions.Create(ctx, &second)
	assert.Equal(t, apperrors.ErrPositionExists, err)

	var count int64
	require.NoError(t, f.db.Model(&model.Position{}).
		Where("portfolio_id = ? AND asset_id = ?", f.portfolio.ID, f.asset.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPositionService_UniqueIndexMapsToExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Create(&model.Position{PortfolioID: f.portfolio.ID, AssetID: f.asset.ID}).Error)
	err := f.db.Create(&model.Position{PortfolioID: f.portfolio.ID, AssetID: f.asset.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	dup := model.Position{PortfolioID: f.portfolio.ID, AssetID: f.asset.ID}
	assert.Equal(t, apperrors.ErrPositionExists, f.svc.Positions.Create(ctx, &dup))
}

func TestPositionService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	position := model.Position{PortfolioID: f.portfolio.ID, AssetID: f.asset.ID, Quantity: decimal.NewFromInt(10), AvgCostBasis: decimal.NewFromInt(100)}
	require.NoError(t, f.svc.Positions.Create(ctx, &position))

	require.NoError(t, f.svc.Positions.Update(ctx, position.ID, rawBody(t, `{"Quantity": 12.5, "assetID": 42}`)))
	got, err := f.svc.Positions.Get(ctx, position.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.Quantity))
	assert.Equal(t, f.asset.ID, got.AssetID)
	assert.Equal(t, "Growth", got.PortfolioName)

	assert.Equal(t, apperrors.ErrPositionNotFound, f.svc.Positions.Update(ctx, 999, rawBody(t, `{"Quantity": 1}`)))
}

func TestTransactionService_CreateDoesNotTouchPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	position := model.Position{PortfolioID: f.portfolio.ID, AssetID: f.asset.ID, Quantity: decimal.NewFromInt(10), AvgCostBasis: decimal.NewFromInt(100)}
	require.NoError(t, f.svc.Positions.Create(ctx, &position))

	transaction := model.Transaction{
		PortfolioID: f.portfolio.ID,
		AssetID:     f.asset.ID,
		Type:        model.TransactionTypeBuy,
		Quantity:    decimal.NewFromInt(5),
		Price:       decimal.RequireFromString("190.25"),
	}
	require.NoError(t, f.svc.Transactions.Create(ctx, &transaction))
	assert.WithinDuration(t, time.Now(), transaction.TransactionDate, time.Minute)

	got, err := f.svc.Positions.Get(ctx, position.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(got.Quantity))
	assert.True(t, decimal.NewFromInt(100).Equal(got.AvgCostBasis))
}

func TestTransactionService_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dates := []string{"2024-01-10", "2024-02-10", "2024-03-10"}
	for i, d := range dates {
		when, err := model.ParseTime(d)
		require.NoError(t, err)
		txType := model.TransactionTypeBuy
		if i == 1 {
			txType = model.TransactionTypeSell
		}
		require.NoError(t, f.svc.Transactions.Create(ctx, &model.Transaction{
			PortfolioID:     f.portfolio.ID,
			AssetID:         f.asset.ID,
			Type:            txType,
			Quantity:        decimal.NewFromInt(1),
			Price:           decimal.NewFromInt(1),
			TransactionDate: when,
		}))
	}

	all, err := f.svc.Transactions.List(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, int(all[0].TransactionDate.Month()), "newest first")

	buys, err := f.svc.Transactions.List(ctx, model.TransactionFilter{Type: model.TransactionTypeBuy})
	require.NoError(t, err)
	assert.Len(t, buys, 2)

	from, _ := model.ParseTime("2024-02-10")
	to, _ := model.ParseTime("2024-03-01")
	ranged, err := f.svc.Transactions.List(ctx, model.TransactionFilter{Date: model.DateRange{From: &from, To: &to}})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, model.TransactionTypeSell, ranged[0].Type)
}

func TestAssetService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.Assets.Update(ctx, f.asset.ID, rawBody(t, `{"sectorID": 999}`))
	assert.Equal(t, apperrors.ErrSectorNotFound, err)

	require.NoError(t, f.svc.Assets.Update(ctx, f.asset.ID, rawBody(t, `{"CurrentPrice": "201.75"}`)))
	got, err := f.svc.Assets.Get(ctx, f.asset.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("201.75").Equal(got.CurrentPrice))
	assert.Equal(t, "Technology", got.SectorName)
	assert.Equal(t, "Software and hardware", got.SectorDescription)
}

func TestAssetService_DeleteThenGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Assets.Delete(ctx, f.asset.ID))
	_, err := f.svc.Assets.Get(ctx, f.asset.ID)
	assert.Equal(t, apperrors.ErrAssetNotFound, err)
}

func TestUserService_UpdateRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var verr *apperrors.ValidationError
	assert.ErrorAs(t, f.svc.Users.UpdateRole(ctx, f.user.ID, "  "), &verr)
	assert.Equal(t, apperrors.ErrUserNotFound, f.svc.Users.UpdateRole(ctx, 999, "director"))

	require.NoError(t, f.svc.Users.UpdateRole(ctx, f.user.ID, "director"))

	user, err := f.svc.Users.Get(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "director", user.Role)

	activity, err := f.svc.Users.Activity(ctx, f.user.ID, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, ActivityRoleChange, activity[0].ActivityType)
}

func TestWatchlistService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, apperrors.ErrAssetNotFound, f.svc.Watchlists.Create(ctx, &model.Watchlist{UserID: f.user.ID, AssetID: 999}))

	item := model.Watchlist{UserID: f.user.ID, AssetID: f.asset.ID}
	require.NoError(t, f.svc.Watchlists.Create(ctx, &item))
	assert.False(t, item.AddedDate.IsZero())

	err := f.svc.Watchlists.Update(ctx, item.ID, rawBody(t, `{"assetID": 999}`))
	assert.Equal(t, apperrors.ErrAssetNotFound, err)
}

func TestAuditService_Record(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing := uint(999)
	assert.Equal(t, apperrors.ErrUserNotFound, f.svc.AuditEvents.Record(ctx, &model.AuditEvent{EventType: "login", UserID: &missing}))

	system := model.AuditEvent{EventType: "backup", Details: []byte(`{"ok":true}`)}
	require.NoError(t, f.svc.AuditEvents.Record(ctx, &system))

	userEvent := model.AuditEvent{EventType: "login", UserID: &f.user.ID}
	require.NoError(t, f.svc.AuditEvents.Record(ctx, &userEvent))

	events, err := f.svc.AuditEvents.List(ctx, model.AuditFilter{UserID: &f.user.ID})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "login", events[0].EventType)

	got, err := f.svc.AuditEvents.Get(ctx, system.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(got.Details))
}
