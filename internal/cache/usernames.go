package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ClaimedUsernamesKey is the Redis set of usernames known to be taken.
const ClaimedUsernamesKey = "usernames:claimed"

// UsernameIndex is a best-effort Redis mirror of claimed usernames.
// Claims are always confirmed against the database before a username is
// reported taken, so a stale or empty index is harmless.
// A nil *UsernameIndex or one without a client behaves as always-empty.
type UsernameIndex struct {
	rdb *redis.Client
}

// NewUsernameIndex wraps rdb, which may be nil.
func NewUsernameIndex(rdb *redis.Client) *UsernameIndex {
	return &UsernameIndex{rdb: rdb}
}

func (i *UsernameIndex) enabled() bool {
	return i != nil && i.rdb != nil
}

// Claimed reports whether username is recorded as taken. Errors report false
// so callers fall through to the database.
func (i *UsernameIndex) Claimed(ctx context.Context, username string) bool {
	if !i.enabled() {
		return false
	}
	ok, err := i.rdb.SIsMember(ctx, ClaimedUsernamesKey, username).Result()
	if err != nil {
		return false
	}
	return ok
}

// Claim records username as taken.
func (i *UsernameIndex) Claim(ctx context.Context, username string) {
	if !i.enabled() {
		return
	}
	i.rdb.SAdd(ctx, ClaimedUsernamesKey, username)
}

// Release removes username, used when its account is deleted.
func (i *UsernameIndex) Release(ctx context.Context, username string) {
	if !i.enabled() {
		return
	}
	i.rdb.SRem(ctx, ClaimedUsernamesKey, username)
}

// Warm replaces the index with usernames in one transaction, dropping any
// claims the database no longer backs.
func (i *UsernameIndex) Warm(ctx context.Context, usernames []string) error {
	if !i.enabled() {
		return nil
	}
	members := make([]interface{}, len(usernames))
	for n, u := range usernames {
		members[n] = u
	}
	_, err := i.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, ClaimedUsernamesKey)
		if len(members) > 0 {
			p.SAdd(ctx, ClaimedUsernamesKey, members...)
		}
		return nil
	})
	return err
}

// Reset drops every claim.
func (i *UsernameIndex) Reset(ctx context.Context) error {
	if !i.enabled() {
		return nil
	}
	return i.rdb.Del(ctx, ClaimedUsernamesKey).Err()
}
