package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratify/internal/db/dbtest"
	"stratify/internal/model"
	"stratify/internal/repository"
)

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(dbtest.New(t))

	ds, err := Default()
	require.NoError(t, err)

	first, err := Apply(ctx, repos, ds)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Sectors), first.SectorsCreated)
	assert.Equal(t, len(ds.Users), first.UsersCreated)
	assert.Equal(t, len(ds.Assets), first.AssetsCreated)
	assert.Equal(t, 5, first.PriceBars)

	second, err := Apply(ctx, repos, ds)
	require.NoError(t, err)
	assert.Zero(t, second.SectorsCreated)
	assert.Zero(t, second.UsersCreated)
	assert.Zero(t, second.AssetsCreated)
	assert.Zero(t, second.PriceBars)
	assert.Equal(t, len(ds.Users), second.UsersUpdated)
	assert.Equal(t, len(ds.Assets), second.AssetsUpdated)

	assets, err := repos.Assets.List(ctx, model.AssetFilter{Ticker: "AAPL"})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Technology", assets[0].SectorName)

	bars, err := repos.Assets.ListPriceHistory(ctx, assets[0].ID, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, 23, bars[0].Date.Day(), "newest bar first")
}

func TestApply_UnknownSectorRollsBack(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(dbtest.New(t))

	ds := &Dataset{
		Users:  []model.User{{Name: "Kim", Email: "kim@example.com"}},
		Assets: []Asset{{Asset: model.Asset{TickerSymbol: "ZZZ"}, Sector: "Nowhere"}},
	}
	_, err := Apply(ctx, repos, ds)
	assert.ErrorContains(t, err, `unknown sector "Nowhere"`)

	users, err := repos.Users.List(ctx, model.UserFilter{})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sectors":[{"sectorName":"Utilities"}]}`), 0o600))

	ds, err := Fetch(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, ds.Sectors, 1)
	assert.Equal(t, "Utilities", ds.Sectors[0].Name)

	_, err = Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
