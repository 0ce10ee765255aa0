// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deedparse/pkg/types"
)

func testStore(t *testing.T, limit int) *Store {
	t.Helper()
	cfg := types.HistoryConfig{
		Path:  filepath.Join(t.TempDir(), "history", "history.db"),
		Limit: limit,
	}
	store, err := NewStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	base := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return store
}

func texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, 5)

	for _, text := range []string{"first", "second", "third"} {
		_, added, err := s.Add(ctx, text)
		require.NoError(t, err)
		assert.True(t, added)
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, texts(entries))
	assert.NotEmpty(t, entries[0].ID)
	assert.True(t, entries[0].CreatedAt.After(entries[2].CreatedAt))
}

func TestAddIgnoresBlankAndRepeats(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, 5)

	tests := []struct {
		text      string
		wantAdded bool
	}{
		{"", false},
		{"   \n\t", false},
		{"Buyer is Jane.", true},
		{"Buyer is Jane.", false},
		{"  Buyer is Jane.  ", false},
		{"Seller is John.", true},
		{"Buyer is Jane.", true},
	}
	for _, tt := range tests {
		_, added, err := s.Add(ctx, tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.wantAdded, added, "text %q", tt.text)
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Buyer is Jane.", "Seller is John.", "Buyer is Jane."}, texts(entries))
}

func TestAddCapsList(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, 0) // zero uses the default cap

	for _, text := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"} {
		_, _, err := s.Add(ctx, text)
		require.NoError(t, err)
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a7", "a6", "a5", "a4", "a3"}, texts(entries))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT count(*) FROM entries`).Scan(&count))
	assert.Equal(t, defaultLimit, count)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, 5)

	_, _, err := s.Add(ctx, "something")
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, 5)

	var empty bytes.Buffer
	require.NoError(t, s.Export(ctx, &empty))
	assert.Equal(t, "[]\n", empty.String())

	for _, text := range []string{"older", "newer"} {
		_, _, err := s.Add(ctx, text)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, s.ExportFile(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []Entry
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, []string{"newer", "older"}, texts(got))
	assert.Equal(t, time.Date(2026, time.October, 18, 9, 2, 0, 0, time.UTC), got[0].CreatedAt)
}

func TestStorePersists(t *testing.T) {
	ctx := context.Background()
	cfg := types.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db"), Limit: 5}

	s, err := NewStore(cfg)
	require.NoError(t, err)
	_, _, err = s.Add(ctx, "kept across restarts")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewStore(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept across restarts"}, texts(entries))
}
