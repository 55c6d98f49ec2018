package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRedis(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))

	notFound := WrapRedis(redis.Nil)
	assert.ErrorIs(t, notFound, ErrSessionNotFound)
	assert.ErrorIs(t, notFound, redis.Nil)
	assert.Equal(t, http.StatusNotFound, Status(notFound))

	boom := errors.New("connection refused")
	failed := WrapRedis(boom)
	assert.ErrorIs(t, failed, boom)
	assert.NotErrorIs(t, failed, ErrSessionNotFound)
	assert.Equal(t, http.StatusBadGateway, Status(failed))
	assert.Contains(t, failed.Error(), RedisErrorMessage)
}

func TestConfig(t *testing.T) {
	assert.NoError(t, Config())

	p1 := errors.New("topic macro: missing")
	p2 := errors.New("footers: more and max are required")
	err := Config(p1, p2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidKnowledge)
	assert.ErrorIs(t, err, p2)
	assert.Equal(t, http.StatusInternalServerError, Status(err))

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ConfigErrorMessage, appErr.Message)
}

func TestStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("x")))
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, SystemErrorMessage, New(nil, 500, SystemErrorMessage).Error())
	assert.Equal(t, "session not found: gone", New(errors.New("gone"), 404, SessionNotFoundMessage).Error())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, SystemErrorMessage, UserMessage(errors.New("dial tcp: connection refused")))
	assert.Equal(t, RedisErrorMessage, UserMessage(WrapRedis(errors.New("timeout"))))
	assert.Equal(t, SystemErrorMessage, UserMessage(New(errors.New("x"), 500, "")))
}
