// internal/store/cache.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/models"
)

const (
	profileKeyPrefix = "user:profile:"
	catalogKeyPrefix = "loans:catalog:"
	catalogAllKey    = catalogKeyPrefix + "all"
)

// ProfileKey is the cache key of one profile.
func ProfileKey(profileID string) string {
	return profileKeyPrefix + profileID
}

// CatalogKey is the cache key of the catalog, or of one loan type.
func CatalogKey(loanType string) string {
	if loanType == "" {
		return catalogAllKey
	}
	return catalogKeyPrefix + loanType
}

// readThrough serves key from Redis, falling back to load and caching its
// result. Cache failures never fail the read. A nil client disables caching.
func readThrough[T any](ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if rdb == nil {
		return load(ctx)
	}

	if cached, err := rdb.Get(ctx, key).Bytes(); err == nil {
		var v T
		if json.Unmarshal(cached, &v) == nil {
			return v, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		rdb.Set(ctx, key, data, ttl)
	}
	return v, nil
}

// Profiles is the users table behind a read-through cache.
type Profiles struct {
	*ProfileRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewProfiles(db *sql.DB, rdb *redis.Client, ttl time.Duration) *Profiles {
	return &Profiles{ProfileRepository: NewProfileRepository(db), redis: rdb, ttl: ttl}
}

// Get returns the profile, from cache when possible.
func (p *Profiles) Get(ctx context.Context, profileID string) (models.UserProfile, error) {
	return readThrough(ctx, p.redis, ProfileKey(profileID), p.ttl, func(ctx context.Context) (models.UserProfile, error) {
		return p.GetProfile(ctx, profileID)
	})
}

// Invalidate drops the cached copy of the profile.
func (p *Profiles) Invalidate(ctx context.Context, profileID string) error {
	if p.redis == nil {
		return nil
	}
	return p.redis.Del(ctx, ProfileKey(profileID)).Err()
}

// Catalog is the loans table behind a read-through cache.
type Catalog struct {
	*CatalogRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewCatalog(db *sql.DB, rdb *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{CatalogRepository: NewCatalogRepository(db), redis: rdb, ttl: ttl}
}

// Loans returns the full catalog, or only loanType when it is set.
func (c *Catalog) Loans(ctx context.Context, loanType string) ([]models.LoanProduct, error) {
	return readThrough(ctx, c.redis, CatalogKey(loanType), c.ttl, func(ctx context.Context) ([]models.LoanProduct, error) {
		if loanType == "" {
			return c.ListLoans(ctx)
		}
		return c.LoansByType(ctx, loanType)
	})
}
