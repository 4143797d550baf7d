package slotlock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
)

const (
	defaultTTL   = 5 * time.Second
	retryBackoff = 25 * time.Millisecond
)

// Снимаем блокировку, только если она всё ещё наша.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis блокировка через SET NX PX, общая для всех процессов с одним redis.
// TTL ограничивает время удержания, если процесс упал, не сняв блокировку.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    *slog.Logger
}

// NewRedis создаёт блокировку поверх клиента redis.
func NewRedis(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{rdb: rdb, ttl: ttl, prefix: "barbershop:lock:", log: log}
}

// Lock повторяет SET NX, пока ключ не освободится или не отменится контекст.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	const op = "slotlock.Redis.Lock"

	redisKey := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(retryBackoff)
	defer ticker.Stop()

	for {
		ok, err := r.rdb.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w: %w", op, ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}

	return func() {
		// Контекст запроса к этому моменту может быть уже отменён.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, r.rdb, []string{redisKey}, token).Err(); err != nil {
			// Ключ останется занятым до истечения TTL.
			r.log.Error("failed to release slot lock",
				slog.String("key", redisKey),
				slog.Duration("ttl", r.ttl),
				sl.Err(err),
			)
		}
	}, nil
}
