package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
)

func TestStore_PutAndGet(t *testing.T) {
	t.Parallel()

	s := NewStore()
	key := s.Put(Entry{URL: "https://example.com", Scores: score.ScoreSet{"a": 3}, Record: scan.NewRecord()})

	require.NotEmpty(t, key)
	got, err := s.Get(key)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", got.URL)
	require.False(t, got.CreatedAt.IsZero())
}

func TestStore_PutGeneratesUniqueKeys(t *testing.T) {
	t.Parallel()

	s := NewStore()
	k1 := s.Put(Entry{URL: "a"})
	k2 := s.Put(Entry{URL: "b"})

	require.NotEqual(t, k1, k2)
	require.Equal(t, 2, s.Len())
}

func TestStore_SetReplacesExisting(t *testing.T) {
	t.Parallel()

	s := NewStore()
	key := s.Put(Entry{URL: "old"})
	s.Set(key, Entry{URL: "new"})

	got, err := s.Get(key)
	require.NoError(t, err)
	require.Equal(t, "new", got.URL)
	require.Equal(t, 1, s.Len())
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	s := NewStore()
	_, err := s.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	s := NewStore()
	key := s.Put(Entry{URL: "x"})
	s.Delete(key)
	s.Delete("missing")

	_, err := s.Get(key)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, s.Len())
}
