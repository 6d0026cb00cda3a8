package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/store"
)

func newStore(t *testing.T, prefix string) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, prefix), mr
}

func TestStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t, "")

	_, err := s.Get(ctx, store.KeyAccessToken)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, s.Set(ctx, store.KeyAccessToken, "tok"))
	got, err := mr.Get(DefaultPrefix + store.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "tok", got)

	v, err := s.Get(ctx, store.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "tok", v)

	require.NoError(t, s.Delete(ctx, store.KeyAccessToken))
	require.False(t, mr.Exists(DefaultPrefix+store.KeyAccessToken))
	require.NoError(t, s.Delete(ctx, store.KeyAccessToken))
}

func TestStore_PrefixIsolation(t *testing.T) {
	ctx := context.Background()
	a, mr := newStore(t, "alice:")
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	b := New(rdb, "bob:")

	require.NoError(t, a.Set(ctx, store.KeyLanguage, "nl"))
	_, err := b.Get(ctx, store.KeyLanguage)
	require.ErrorIs(t, err, errs.ErrNotFound)

	lang, err := store.Language(ctx, a)
	require.NoError(t, err)
	require.Equal(t, "nl", lang)
}

func TestStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t, "")
	mr.Close()
	_, err := s.Get(ctx, store.KeyAccessToken)
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrNotFound)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := Dial(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = Dial(context.Background(), "://bad")
	require.Error(t, err)
}
