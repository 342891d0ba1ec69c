package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) (*UsernameIndex, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewUsernameIndex(rdb), mr
}

func TestUsernameIndex_ClaimAndRelease(t *testing.T) {
	idx, mr := newTestIndex(t)
	ctx := context.Background()

	assert.False(t, idx.Claimed(ctx, "alice"))

	idx.Claim(ctx, "alice")
	assert.True(t, idx.Claimed(ctx, "alice"))
	ok, err := mr.SIsMember(ClaimedUsernamesKey, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	idx.Release(ctx, "alice")
	assert.False(t, idx.Claimed(ctx, "alice"))
}

func TestUsernameIndex_Warm(t *testing.T) {
	idx, mr := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Warm(ctx, []string{"a_1", "b-2", "c3c"}))
	members, err := mr.Members(ClaimedUsernamesKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a_1", "b-2", "c3c"}, members)

	require.NoError(t, idx.Warm(ctx, nil))
	assert.False(t, mr.Exists(ClaimedUsernamesKey))
}

func TestUsernameIndex_WarmDropsStaleClaims(t *testing.T) {
	idx, mr := newTestIndex(t)
	ctx := context.Background()

	idx.Claim(ctx, "gone_user")
	require.NoError(t, idx.Warm(ctx, []string{"alice"}))

	members, err := mr.Members(ClaimedUsernamesKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, members)
}

func TestUsernameIndex_Reset(t *testing.T) {
	idx, mr := newTestIndex(t)
	ctx := context.Background()

	idx.Claim(ctx, "alice")
	require.NoError(t, idx.Reset(ctx))
	assert.False(t, mr.Exists(ClaimedUsernamesKey))
	assert.False(t, idx.Claimed(ctx, "alice"))

	var nilIdx *UsernameIndex
	assert.NoError(t, nilIdx.Reset(ctx))
}

func TestUsernameIndex_NilSafe(t *testing.T) {
	ctx := context.Background()

	var nilIdx *UsernameIndex
	assert.False(t, nilIdx.Claimed(ctx, "alice"))
	nilIdx.Claim(ctx, "alice")
	nilIdx.Release(ctx, "alice")
	assert.NoError(t, nilIdx.Warm(ctx, []string{"alice"}))

	noClient := NewUsernameIndex(nil)
	assert.False(t, noClient.Claimed(ctx, "alice"))
	noClient.Claim(ctx, "alice")
}

func TestUsernameIndex_UnreachableRedisReportsUnclaimed(t *testing.T) {
	idx, mr := newTestIndex(t)
	ctx := context.Background()

	idx.Claim(ctx, "alice")
	mr.Close()

	assert.False(t, idx.Claimed(ctx, "alice"))
}

func TestNewClient_ParsesURL(t *testing.T) {
	rdb, err := NewClient("redis://localhost:6380/2")
	require.NoError(t, err)
	defer rdb.Close()

	assert.Equal(t, "localhost:6380", rdb.Options().Addr)
	assert.Equal(t, 2, rdb.Options().DB)

	_, err = NewClient("redis://%zz")
	assert.Error(t, err)
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	InitRedis(mr.Addr())
	first := GetClient()
	require.NotNil(t, first)
	t.Cleanup(func() { _ = first.Close() })

	InitRedis("redis://%zz")
	assert.Nil(t, GetClient())
}
