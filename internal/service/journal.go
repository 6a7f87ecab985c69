package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/mealmate/backend/internal/model"
)

// ErrSuggestionNotFound is returned when a journal has no record for an id
var ErrSuggestionNotFound = errors.New("suggestion not found")

// Journal keeps a record of resolved suggestions. It is write-behind only:
// records are never used to answer a suggestion request.
type Journal interface {
	Record(ctx context.Context, s *model.Suggestion) error
	Get(ctx context.Context, id uuid.UUID) (*model.Suggestion, error)
	Recent(ctx context.Context, limit int) ([]*model.Suggestion, error)
}

// GormJournal stores suggestions in a SQL database
type GormJournal struct {
	db *gorm.DB
}

// NewGormJournal creates a new GormJournal instance
func NewGormJournal(db *gorm.DB) *GormJournal {
	return &GormJournal{db: db}
}

// Record inserts a suggestion
func (j *GormJournal) Record(ctx context.Context, s *model.Suggestion) error {
	if err := j.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("failed to insert suggestion: %w", err)
	}
	return nil
}

// Get retrieves a suggestion by id
func (j *GormJournal) Get(ctx context.Context, id uuid.UUID) (*model.Suggestion, error) {
	var s model.Suggestion
	err := j.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSuggestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}
	return &s, nil
}

// Recent lists the newest suggestions first
func (j *GormJournal) Recent(ctx context.Context, limit int) ([]*model.Suggestion, error) {
	out := []*model.Suggestion{}
	err := j.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return out, nil
}

const (
	redisSuggestionKey = "suggestion:%s"
	redisRecentKey     = "suggestion:recent"
	redisRecentMax     = 1000
)

// RedisJournal stores suggestions in Redis with a TTL and keeps a capped
// list of recent ids.
type RedisJournal struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisJournal creates a new RedisJournal instance
func NewRedisJournal(client *redis.Client, ttl time.Duration) *RedisJournal {
	return &RedisJournal{redis: client, ttl: ttl}
}

// Record saves a suggestion and pushes its id onto the recent list
func (j *RedisJournal) Record(ctx context.Context, s *model.Suggestion) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion: %w", err)
	}

	pipe := j.redis.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(redisSuggestionKey, s.ID), data, j.ttl)
	pipe.LPush(ctx, redisRecentKey, s.ID.String())
	pipe.LTrim(ctx, redisRecentKey, 0, redisRecentMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save suggestion to Redis: %w", err)
	}
	return nil
}

// Get retrieves a suggestion by id
func (j *RedisJournal) Get(ctx context.Context, id uuid.UUID) (*model.Suggestion, error) {
	data, err := j.redis.Get(ctx, fmt.Sprintf(redisSuggestionKey, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSuggestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion from Redis: %w", err)
	}

	var s model.Suggestion
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestion: %w", err)
	}
	return &s, nil
}

// Recent lists the newest suggestions first. Expired records are skipped.
func (j *RedisJournal) Recent(ctx context.Context, limit int) ([]*model.Suggestion, error) {
	ids, err := j.redis.LRange(ctx, redisRecentKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions from Redis: %w", err)
	}
	if len(ids) == 0 {
		return []*model.Suggestion{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf(redisSuggestionKey, id)
	}
	values, err := j.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions from Redis: %w", err)
	}

	out := make([]*model.Suggestion, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var s model.Suggestion
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal suggestion: %w", err)
		}
		out = append(out, &s)
	}
	return out, nil
}
