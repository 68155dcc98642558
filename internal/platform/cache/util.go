package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"twstock/internal/shared/twtime"
)

// refreshHour は日足データが確定したとみなす台湾時間の時刻です。
const refreshHour = 8

// TimeUntilNext8AM は次の午前8時（台湾時間）までの期間を返します。
func TimeUntilNext8AM() time.Duration {
	return twtime.UntilNext(time.Now(), refreshHour)
}

// deleteByPattern はSCANでpatternに一致するキーをすべて削除し、削除件数を返します。
func deleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) (int, error) {
	var cursor uint64
	total := 0
	for {
		keys, cur, err := rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return total, err
		}
		if len(keys) > 0 {
			n, err := rdb.Del(ctx, keys...).Result()
			total += int(n)
			if err != nil {
				return total, err
			}
		}
		cursor = cur
		if cursor == 0 {
			return total, nil
		}
	}
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}

func noopObserve(string) {}

// loadJSON はkeyの値をTとして読みます。壊れた値は削除してミス扱いにします。
func loadJSON[T any](ctx context.Context, rdb *redis.Client, key string, observe func(string)) (T, bool) {
	var out T
	b, err := rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		if err != nil && !errors.Is(err, redis.Nil) {
			slog.Debug("cache get failed", "key", key, "error", err)
		}
		observe("miss")
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		observe("error")
		_ = rdb.Del(ctx, key).Err()
		return out, false
	}
	observe("hit")
	return out, true
}

// storeJSON はvをttl付きで保存します。失敗してもログに残すだけです。
func storeJSON(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}
