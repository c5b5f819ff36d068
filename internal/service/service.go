package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stratify/internal/cache"
	"stratify/internal/repository"
)

// Services bundles every domain service the HTTP layer depends on.
type Services struct {
	Assets       AssetService
	Sectors      SectorService
	Portfolios   PortfolioService
	Positions    PositionService
	Transactions TransactionService
	Users        UserService
	Watchlists   WatchlistService
	Alerts       AlertService
	Scenarios    ScenarioService
	AuditEvents  AuditService
}

// New builds all services over the same repositories and cache.
// A zero ttl disables caching of detail reads.
func New(repos *repository.Repositories, cacheClient *cache.Client, ttl time.Duration) *Services {
	return &Services{
		Assets:       NewAssetService(repos, cacheClient, ttl),
		Sectors:      NewSectorService(repos),
		Portfolios:   NewPortfolioService(repos, cacheClient, ttl),
		Positions:    NewPositionService(repos, cacheClient, ttl),
		Transactions: NewTransactionService(repos),
		Users:        NewUserService(repos, cacheClient, ttl),
		Watchlists:   NewWatchlistService(repos),
		Alerts:       NewAlertService(repos),
		Scenarios:    NewScenarioService(repos),
		AuditEvents:  NewAuditService(repos),
	}
}

// notFound replaces gorm.ErrRecordNotFound with the entity sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// mustExist returns sentinel when exists reports no row for id.
func mustExist(ctx context.Context, exists func(context.Context, uint) (bool, error), id uint, sentinel error) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return sentinel
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

const (
	assetKeyPrefix     = "asset"
	portfolioKeyPrefix = "portfolio"
)

// detailCache is a read-through cache for single-entity detail reads.
type detailCache struct {
	client *cache.Client
	ttl    time.Duration
}

func cacheKey(prefix string, id uint) string {
	return fmt.Sprintf("%s:%d", prefix, id)
}

func (c detailCache) enabled() bool {
	return c.ttl > 0 && c.client != nil
}

// affectedPortfolios runs lookup only when caching is on. Callers run it inside
// the write transaction so a failed lookup rolls the write back.
func (c detailCache) affectedPortfolios(ctx context.Context, lookup func(context.Context, uint) ([]uint, error), id uint) ([]uint, error) {
	if !c.enabled() {
		return nil, nil
	}
	return lookup(ctx, id)
}

func (c detailCache) invalidate(ctx context.Context, prefix string, ids ...uint) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(prefix, id)
	}
	_ = c.client.Delete(ctx, keys...)
}

// readThrough returns the cached value under key or loads and caches it.
func readThrough[T any](ctx context.Context, c detailCache, key string, load func() (*T, error)) (*T, error) {
	if c.ttl > 0 {
		if data, _ := c.client.Get(ctx, key); data != nil {
			var cached T
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	if c.ttl > 0 {
		if payload, err := json.Marshal(value); err == nil {
			_ = c.client.Set(ctx, key, payload, c.ttl)
		}
	}
	return value, nil
}
