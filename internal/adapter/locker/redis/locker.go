package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Lock release only deletes the key when the stored token is still ours, so
// an expired lock reacquired by somebody else is never released from here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// ScopeLocker serializes finalization per (event, service) with a Redis
// SET NX lock. The TTL only bounds damage from a crashed holder; the happy
// path always releases explicitly.
type ScopeLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
}

func NewScopeLocker(client *redis.Client, ttl time.Duration) *ScopeLocker {
	return &ScopeLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: 50 * time.Millisecond,
	}
}

func (l *ScopeLocker) Acquire(ctx context.Context, eventID uuid.UUID, service string) (func(), error) {
	key := fmt.Sprintf("bidlock:%s:%s", eventID.String(), service)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}

	return release, nil
}
