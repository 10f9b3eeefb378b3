package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/hybridrec/core"
)

// RedisStore 是 Redis 实现的 Store。
// 生产环境常用，数据集由 import 命令写入，服务进程通过 dataset.StoreLoader 读取。
type RedisStore struct {
	client *redis.Client
}

var _ core.Store = (*RedisStore)(nil)

func NewRedisStore(addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, core.WrapDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "store: redis "+addr+" unreachable", err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) HGet(ctx context.Context, key, field string) ([]byte, error) {
	val, err := r.client.HGet(ctx, key, field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrStoreNotFound
	}
	return val, err
}

// HSet 通过 pipeline 分批写入，避免单条命令参数过多。
func (r *RedisStore) HSet(ctx context.Context, key string, fields map[string][]byte) error {
	if len(fields) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	queueHSet(ctx, pipe, key, fields)
	_, err := pipe.Exec(ctx)
	return err
}

func queueHSet(ctx context.Context, pipe redis.Pipeliner, key string, fields map[string][]byte) {
	const batch = 500

	args := make([]any, 0, 2*batch)
	for f, v := range fields {
		args = append(args, f, v)
		if len(args) == 2*batch {
			pipe.HSet(ctx, key, args...)
			args = make([]any, 0, 2*batch)
		}
	}
	if len(args) > 0 {
		pipe.HSet(ctx, key, args...)
	}
}

// ReplaceHashes 先把新数据写入临时 key，再在 MULTI/EXEC 中统一 RENAME 到目标 key。
// 写入临时 key 失败时目标 key 保持不变。
func (r *RedisStore) ReplaceHashes(ctx context.Context, hashes map[string]map[string][]byte) error {
	if len(hashes) == 0 {
		return nil
	}
	suffix := ":staging:" + strconv.FormatInt(time.Now().UnixNano(), 36)

	// 1. 写入临时 key
	staged := make(map[string]string, len(hashes))
	pipe := r.client.Pipeline()
	for key, fields := range hashes {
		if len(fields) == 0 {
			continue
		}
		tmp := key + suffix
		staged[key] = tmp
		pipe.Del(ctx, tmp)
		queueHSet(ctx, pipe, tmp, fields)
	}
	if len(staged) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			r.dropStaged(staged)
			return err
		}
	}

	// 2. 原子切换
	_, err := r.client.TxPipelined(ctx, func(tx redis.Pipeliner) error {
		for key := range hashes {
			if tmp, ok := staged[key]; ok {
				tx.Rename(ctx, tmp, key)
			} else {
				tx.Del(ctx, key)
			}
		}
		return nil
	})
	if err != nil {
		r.dropStaged(staged)
	}
	return err
}

func (r *RedisStore) dropStaged(staged map[string]string) {
	if len(staged) == 0 {
		return
	}
	keys := make([]string, 0, len(staged))
	for _, tmp := range staged {
		keys = append(keys, tmp)
	}
	_ = r.client.Del(context.Background(), keys...).Err()
}

func (r *RedisStore) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	vals, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(vals))
	for f, v := range vals {
		out[f] = []byte(v)
	}
	return out, nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
