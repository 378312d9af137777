// Package repo provides the session-scoped course cache behind the
// pipeline's memoization.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coursegen-poc/server/internal/course/model"
	errx "github.com/coursegen-poc/server/internal/core/error"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) courseKey(sessionID, fingerprint string) string {
	return fmt.Sprintf("session:%s:course:%s", sessionID, fingerprint)
}

func (r *RedisSessionRepository) indexKey(sessionID string) string {
	return fmt.Sprintf("session:%s:courses", sessionID)
}

func (r *RedisSessionRepository) Lookup(ctx context.Context, sessionID, fingerprint string) (*model.GeneratedCourse, error) {
	key := r.courseKey(sessionID, fingerprint)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load cached course from redis")
		return nil, errx.WrapRedis(err)
	}

	var course model.GeneratedCourse
	if err := json.Unmarshal([]byte(raw), &course); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to unmarshal cached course")
		return nil, fmt.Errorf("unmarshal cached course: %w", err)
	}
	return &course, nil
}

func (r *RedisSessionRepository) Store(ctx context.Context, sessionID, fingerprint string, course *model.GeneratedCourse) error {
	b, err := json.Marshal(course)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal course")
		return fmt.Errorf("marshal course: %w", err)
	}
	key := r.courseKey(sessionID, fingerprint)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store course in redis")
		return errx.WrapRedis(err)
	}

	// track keys per session so Clear can remove them in one pass
	idx := r.indexKey(sessionID)
	if err := r.rdb.SAdd(ctx, idx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", idx).Msg("failed to index session course key")
		return errx.WrapRedis(err)
	}
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, idx, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", idx).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", idx).Dur("ttl", r.ttl).Msg("failed to set TTL on session index key")
		}
	}
	return nil
}

func (r *RedisSessionRepository) Clear(ctx context.Context, sessionID string) error {
	idx := r.indexKey(sessionID)

	keys, err := r.rdb.SMembers(ctx, idx).Result()
	if err != nil && err != redis.Nil {
		logx.Error().Err(err).Str("key", idx).Msg("failed to list session course keys")
		return errx.WrapRedis(err)
	}

	keys = append(keys, idx)
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logx.Error().Err(err).Str("key", idx).Msg("failed to clear session courses from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
