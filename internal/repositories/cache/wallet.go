package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"daswos/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// cachedWallet keeps the fields the public JSON shape hides.
type cachedWallet struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"last_updated"`
	Version     uint64          `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
}

// setIfNewer stores ARGV[1] at KEYS[1] unless the cached entry already
// carries a version >= ARGV[2]. ARGV[3] is the TTL in milliseconds, 0 for
// none.
var setIfNewer = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current then
	local ok, cached = pcall(cjson.decode, current)
	if ok and type(cached) == "table" then
		local version = tonumber(cached["version"])
		if version and version >= tonumber(ARGV[2]) then
			return 0
		end
	end
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// WalletCache caches wallet rows under wallet:user:<id>.
type WalletCache struct {
	service *CacheService
}

func NewWalletCache(service *CacheService) *WalletCache {
	return &WalletCache{service: service}
}

func WalletKey(userID uint) string {
	return GenerateKey("wallet", "user", userID)
}

func (c *WalletCache) GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool, error) {
	var cached cachedWallet
	found, err := c.service.Get(ctx, WalletKey(userID), &cached)
	if err != nil || !found {
		return nil, false, err
	}
	return &models.Wallet{
		ID:          cached.ID,
		UserID:      cached.UserID,
		Balance:     cached.Balance,
		LastUpdated: cached.LastUpdated,
		Version:     cached.Version,
		CreatedAt:   cached.CreatedAt,
	}, true, nil
}

// SetWallet caches wallet unless the cache already holds the same or a
// newer version of it, so a slow reader cannot overwrite a committed write.
func (c *WalletCache) SetWallet(ctx context.Context, wallet *models.Wallet) error {
	data, err := json.Marshal(cachedWallet{
		ID:          wallet.ID,
		UserID:      wallet.UserID,
		Balance:     wallet.Balance,
		LastUpdated: wallet.LastUpdated,
		Version:     wallet.Version,
		CreatedAt:   wallet.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	keys := []string{WalletKey(wallet.UserID)}
	err = setIfNewer.Run(ctx, c.service.client, keys, data, wallet.Version, c.service.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("failed to set cache value: %w", err)
	}
	return nil
}

func (c *WalletCache) DeleteWallet(ctx context.Context, userID uint) error {
	return c.service.Delete(ctx, WalletKey(userID))
}

func (c *WalletCache) Ping(ctx context.Context) error {
	return c.service.Ping(ctx)
}

// NoopWalletCache never hits. Used when redis is disabled.
type NoopWalletCache struct{}

func (NoopWalletCache) GetWallet(context.Context, uint) (*models.Wallet, bool, error) {
	return nil, false, nil
}
func (NoopWalletCache) SetWallet(context.Context, *models.Wallet) error { return nil }
func (NoopWalletCache) DeleteWallet(context.Context, uint) error        { return nil }
func (NoopWalletCache) Ping(context.Context) error                      { return nil }
