// Package seed loads the demo dataset into the database.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"stratify/internal/model"
	"stratify/internal/repository"
)

//go:embed dataset.json
var defaultDataset []byte

// Asset is a dataset asset. It names its sector instead of referencing an id.
type Asset struct {
	model.Asset
	Sector       string               `json:"sector"`
	PriceHistory []model.PriceHistory `json:"priceHistory"`
}

// Dataset is the demo data applied by Apply.
type Dataset struct {
	Sectors []model.Sector `json:"sectors"`
	Users   []model.User   `json:"users"`
	Assets  []Asset        `json:"assets"`
}

// Stats counts what Apply changed.
type Stats struct {
	SectorsCreated int
	UsersCreated   int
	UsersUpdated   int
	AssetsCreated  int
	AssetsUpdated  int
	PriceBars      int
}

// Default returns the embedded demo dataset.
func Default() (*Dataset, error) {
	return Parse(defaultDataset)
}

// Parse decodes a dataset document.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return &ds, nil
}

// Fetch reads a dataset from an http(s) URL or a local file.
func Fetch(ctx context.Context, location string) (*Dataset, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
		return Parse(data)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset server returned status code: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return Parse(data)
}

// Apply upserts the dataset in one transaction. Sectors are matched by name,
// users by email and assets by ticker, so applying the same dataset twice
// changes nothing. Price history is only loaded for newly created assets.
func Apply(ctx context.Context, repos *repository.Repositories, ds *Dataset) (Stats, error) {
	var stats Stats
	err := repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		stats = Stats{}
		sectorIDs, err := applySectors(ctx, tx, ds.Sectors, &stats)
		if err != nil {
			return err
		}
		if err := applyUsers(ctx, tx, ds.Users, &stats); err != nil {
			return err
		}
		return applyAssets(ctx, tx, ds.Assets, sectorIDs, &stats)
	})
	return stats, err
}

func applySectors(ctx context.Context, tx *repository.Repositories, sectors []model.Sector, stats *Stats) (map[string]uint, error) {
	ids := make(map[string]uint, len(sectors))
	for _, item := range sectors {
		sector := item
		existing, err := tx.Sectors.FindByName(ctx, sector.Name)
		switch {
		case err == nil:
			ids[sector.Name] = existing.ID
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("error checking sector %s: %w", sector.Name, err)
		}

		sector.ID = 0
		if err := tx.Sectors.Create(ctx, &sector); err != nil {
			return nil, fmt.Errorf("error creating sector %s: %w", sector.Name, err)
		}
		ids[sector.Name] = sector.ID
		stats.SectorsCreated++
	}
	return ids, nil
}

func applyUsers(ctx context.Context, tx *repository.Repositories, users []model.User, stats *Stats) error {
	for _, item := range users {
		user := item
		existing, err := tx.Users.FindByEmail(ctx, user.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error checking user %s: %w", user.Email, err)
		}

		if existing != nil {
			cols := map[string]interface{}{"name": user.Name, "role": user.Role}
			if err := tx.Users.Updates(ctx, existing.ID, cols); err != nil {
				return fmt.Errorf("error updating user %s: %w", user.Email, err)
			}
			stats.UsersUpdated++
			continue
		}

		user.ID = 0
		if err := tx.Users.Create(ctx, &user); err != nil {
			return fmt.Errorf("error creating user %s: %w", user.Email, err)
		}
		stats.UsersCreated++
	}
	return nil
}

func applyAssets(ctx context.Context, tx *repository.Repositories, assets []Asset, sectorIDs map[string]uint, stats *Stats) error {
	for _, item := range assets {
		asset := item.Asset
		sectorID, err := resolveSector(ctx, tx, item.Sector, sectorIDs)
		if err != nil {
			return fmt.Errorf("asset %s: %w", asset.TickerSymbol, err)
		}
		asset.SectorID = sectorID

		existing, err := tx.Assets.FindByTicker(ctx, asset.TickerSymbol)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error checking asset %s: %w", asset.TickerSymbol, err)
		}

		if existing != nil {
			cols := map[string]interface{}{
				"asset_name":    asset.AssetName,
				"asset_type":    asset.AssetType,
				"current_price": asset.CurrentPrice,
				"sector_id":     asset.SectorID,
			}
			if err := tx.Assets.Updates(ctx, existing.ID, cols); err != nil {
				return fmt.Errorf("error updating asset %s: %w", asset.TickerSymbol, err)
			}
			stats.AssetsUpdated++
			continue
		}

		asset.ID = 0
		if err := tx.Assets.Create(ctx, &asset); err != nil {
			return fmt.Errorf("error creating asset %s: %w", asset.TickerSymbol, err)
		}
		stats.AssetsCreated++

		if len(item.PriceHistory) == 0 {
			continue
		}
		bars := make([]model.PriceHistory, len(item.PriceHistory))
		for i, bar := range item.PriceHistory {
			bar.ID = 0
			bar.AssetID = asset.ID
			bars[i] = bar
		}
		if err := tx.Assets.CreatePriceHistory(ctx, bars); err != nil {
			return fmt.Errorf("error loading price history for %s: %w", asset.TickerSymbol, err)
		}
		stats.PriceBars += len(bars)
	}
	return nil
}

// resolveSector maps a sector name to its id, looking in the database when
// the dataset itself does not define the sector.
func resolveSector(ctx context.Context, tx *repository.Repositories, name string, known map[string]uint) (uint, error) {
	if id, ok := known[name]; ok {
		return id, nil
	}
	sector, err := tx.Sectors.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("unknown sector %q", name)
		}
		return 0, err
	}
	known[name] = sector.ID
	return sector.ID, nil
}
