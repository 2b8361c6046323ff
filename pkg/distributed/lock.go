package distributed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

// Lock is a best-effort distributed mutex on redis SET NX, used to keep
// periodic jobs from running on every instance at once. With a nil client
// (redis disabled) acquisition always succeeds: a single-server deployment
// has no contention to arbitrate.
type Lock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

func NewLock(client *redis.Client, key string, ttl time.Duration) *Lock {
	return &Lock{client: client, key: key, ttl: ttl}
}

// TryLock attempts a non-blocking acquisition. The token ties the lock to
// this acquisition so a later Unlock cannot release someone else's hold.
func (l *Lock) TryLock(ctx context.Context) (bool, error) {
	if l.client == nil {
		return true, nil
	}

	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", l.key, err)
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Unlock releases the lock if this instance still holds it. The check and
// delete run atomically in a redis script.
func (l *Lock) Unlock(ctx context.Context) error {
	if l.client == nil || l.token == "" {
		return nil
	}

	script := `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`
	result, err := l.client.Eval(ctx, script, []string{l.key}, l.token).Result()
	l.token = ""
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	if result == int64(0) {
		logger.Warnf("Lock %s expired before release", l.key)
	}
	return nil
}
