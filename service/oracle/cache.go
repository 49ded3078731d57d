package oracle

import (
	"context"
	"fmt"
	"time"

	"dealer/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/go-redis/redis"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Cache keep the prices of oracle for ttl. Prices are shared through redis
// across instances when client is not nil.
func Cache(oracle core.IOracle, key string, ttl time.Duration, client *redis.Client) core.IOracle {
	return &cacheOracle{
		IOracle: oracle,
		key:     key,
		ttl:     ttl,
		cache:   gcache.New(8).LRU().Build(),
		sf:      &singleflight.Group{},
		redis:   client,
	}
}

type cacheOracle struct {
	core.IOracle
	key   string
	ttl   time.Duration
	cache gcache.Cache
	sf    *singleflight.Group
	redis *redis.Client
}

func (o *cacheOracle) Price(ctx context.Context) (decimal.Decimal, error) {
	if v, err := o.cache.Get(o.key); err == nil {
		if price, ok := v.(decimal.Decimal); ok {
			return price, nil
		}
	}

	v, err, _ := o.sf.Do(o.key, func() (interface{}, error) {
		if price, ok := o.shared(ctx); ok {
			_ = o.cache.SetWithExpire(o.key, price, o.ttl)
			return price, nil
		}

		price, err := o.IOracle.Price(ctx)
		if err != nil {
			return nil, err
		}

		_ = o.cache.SetWithExpire(o.key, price, o.ttl)
		if o.redis != nil {
			if err := o.redis.Set(o.redisKey(), price.String(), o.ttl).Err(); err != nil {
				logger.FromContext(ctx).WithError(err).Warnln("redis.Set", o.redisKey())
			}
		}

		return price, nil
	})

	if err != nil {
		return decimal.Zero, err
	}

	return v.(decimal.Decimal), nil
}

func (o *cacheOracle) shared(ctx context.Context) (decimal.Decimal, bool) {
	if o.redis == nil {
		return decimal.Zero, false
	}

	bs, err := o.redis.Get(o.redisKey()).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.FromContext(ctx).WithError(err).Warnln("redis.Get", o.redisKey())
		}
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(string(bs))
	if err != nil {
		return decimal.Zero, false
	}

	return price, true
}

func (o *cacheOracle) redisKey() string {
	return fmt.Sprintf("dealer:oracle:price:%s", o.key)
}
