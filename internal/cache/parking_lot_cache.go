package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parking-lot-service/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type ParkingLotCache interface {
	// 取得：快取命中時回傳 true
	Get(ctx context.Context, id uuid.UUID) (*model.DetailParkingLot, bool, error)
	// 版本：讀資料庫前先取得目前版本
	Version(ctx context.Context, id uuid.UUID) (int64, error)
	// 寫入：版本未變時才保存，回傳是否寫入 (使用Lua腳本確保原子性)
	Set(ctx context.Context, id uuid.UUID, version int64, detail *model.DetailParkingLot) (bool, error)
	// 失效：停車場更新後遞增版本並刪除快取 (使用Lua腳本確保原子性)
	Invalidate(ctx context.Context, id uuid.UUID) error
}

type RedisParkingLotCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisParkingLotCache(client redis.UniversalClient, ttl time.Duration) ParkingLotCache {
	return &RedisParkingLotCache{
		client: client,
		ttl:    ttl,
	}
}

// detail key
func (c *RedisParkingLotCache) getDetailKey(id uuid.UUID) string {
	return fmt.Sprintf("parking_lot:%s:detail", id)
}

// version key；不設 TTL，過期會讓舊版本重新生效
func (c *RedisParkingLotCache) getVersionKey(id uuid.UUID) string {
	return fmt.Sprintf("parking_lot:%s:version", id)
}

var setIfVersionScript = redis.NewScript(`
	-- 1. 取得參數
	local detail_key = KEYS[1]
	local version_key = KEYS[2]
	local expected = ARGV[1]
	local payload = ARGV[2]
	local ttl_ms = tonumber(ARGV[3])

	-- 2. 版本已被更新：放棄寫入
	local current = redis.call('GET', version_key) or '0'
	if current ~= expected then
		return 0
	end

	-- 3. 寫入快取
	if ttl_ms > 0 then
		redis.call('SET', detail_key, payload, 'PX', ttl_ms)
	else
		redis.call('SET', detail_key, payload)
	end
	return 1
`)

var invalidateScript = redis.NewScript(`
	local detail_key = KEYS[1]
	local version_key = KEYS[2]

	redis.call('INCR', version_key)
	redis.call('DEL', detail_key)
	return 1
`)

func (c *RedisParkingLotCache) Get(ctx context.Context, id uuid.UUID) (*model.DetailParkingLot, bool, error) {
	raw, err := c.client.Get(ctx, c.getDetailKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "get cached detail")
	}

	var detail model.DetailParkingLot
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, false, errors.Wrap(err, "decode cached detail")
	}
	if detail.Keepers == nil {
		detail.Keepers = make([]model.KeeperOnDetailParkingLot, 0)
	}

	return &detail, true, nil
}

func (c *RedisParkingLotCache) Version(ctx context.Context, id uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, c.getVersionKey(id)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "get detail version")
	}
	return version, nil
}

func (c *RedisParkingLotCache) Set(ctx context.Context, id uuid.UUID, version int64, detail *model.DetailParkingLot) (bool, error) {
	raw, err := json.Marshal(detail)
	if err != nil {
		return false, errors.Wrap(err, "encode detail")
	}

	stored, err := setIfVersionScript.Run(ctx, c.client,
		[]string{c.getDetailKey(id), c.getVersionKey(id)},
		version, raw, c.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, errors.Wrap(err, "set cached detail")
	}

	return stored == 1, nil
}

func (c *RedisParkingLotCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	err := invalidateScript.Run(ctx, c.client,
		[]string{c.getDetailKey(id), c.getVersionKey(id)},
	).Err()
	return errors.Wrap(err, "invalidate cached detail")
}

// NoopParkingLotCache never stores anything; used when caching is disabled.
type NoopParkingLotCache struct{}

func NewNoopParkingLotCache() ParkingLotCache {
	return NoopParkingLotCache{}
}

func (NoopParkingLotCache) Get(context.Context, uuid.UUID) (*model.DetailParkingLot, bool, error) {
	return nil, false, nil
}

func (NoopParkingLotCache) Version(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (NoopParkingLotCache) Set(context.Context, uuid.UUID, int64, *model.DetailParkingLot) (bool, error) {
	return false, nil
}

func (NoopParkingLotCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}
