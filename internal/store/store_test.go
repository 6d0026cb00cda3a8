package store

import (
	"context"
	"testing"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestLanguage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemory()

	lang, err := Language(ctx, s)
	require.NoError(t, err)
	require.Equal(t, "en", lang)

	require.NoError(t, SetLanguage(ctx, s, "nl"))
	lang, err = Language(ctx, s)
	require.NoError(t, err)
	require.Equal(t, "nl", lang)

	require.ErrorIs(t, SetLanguage(ctx, s, "de"), errs.ErrValidation)

	// a stale or hand-edited value falls back to the default
	require.NoError(t, s.Set(ctx, KeyLanguage, "fr"))
	lang, err = Language(ctx, s)
	require.NoError(t, err)
	require.Equal(t, DefaultLanguage, lang)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemory()
	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, s.Set(ctx, "k", "v"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
