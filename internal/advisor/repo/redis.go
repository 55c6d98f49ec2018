package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
	errx "github.com/petrolito-ai/advisor/internal/core/error"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) stateKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

func (r *RedisSessionRepository) messagesKey(sessionID string) string {
	return fmt.Sprintf("session:%s:messages", sessionID)
}

func (r *RedisSessionRepository) LoadState(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	key := r.stateKey(sessionID)
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Error().Err(err).Str("key", key).Msg("failed to load session state from redis")
		}
		return nil, errx.WrapRedis(err)
	}

	var st model.ConversationState
	if err := json.Unmarshal(raw, &st); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to unmarshal session state")
		return nil, fmt.Errorf("%w: unmarshal: %w", errx.ErrCorruptSession, err)
	}
	return &st, nil
}

func (r *RedisSessionRepository) SaveState(ctx context.Context, sessionID string, state *model.ConversationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	key := r.stateKey(sessionID)
	// zero ttl keeps the key without expiry
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save session state to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// SaveTurn writes the state and the transcript rows in one MULTI/EXEC
// transaction, so a dropped connection cannot leave a turn half stored.
func (r *RedisSessionRepository) SaveTurn(ctx context.Context, sessionID string, state *model.ConversationState, messages ...*schema.Message) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	rows := make([]any, 0, len(messages))
	for _, m := range messages {
		row, err := json.Marshal(m)
		if err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal message")
			return fmt.Errorf("marshal message: %w", err)
		}
		rows = append(rows, row)
	}

	stateKey, messagesKey := r.stateKey(sessionID), r.messagesKey(sessionID)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, stateKey, b, r.ttl)
		if len(rows) > 0 {
			pipe.RPush(ctx, messagesKey, rows...)
			if r.ttl > 0 {
				pipe.Expire(ctx, messagesKey, r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to save turn to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) AddMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.messagesKey(sessionID)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on transcript key")
		}
	}
	return nil
}

func (r *RedisSessionRepository) LoadHistory(ctx context.Context, sessionID string) (*model.SessionHistory, error) {
	key := r.messagesKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.SessionHistory{SessionID: sessionID, Messages: []*schema.Message{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load transcript from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return &model.SessionHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *RedisSessionRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, r.stateKey(sessionID), r.messagesKey(sessionID)).Err(); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) GetMessageCount(ctx context.Context, sessionID string) (int, error) {
	key := r.messagesKey(sessionID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get message count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
