package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/kastle/internal/dsl"
	"github.com/tatianab/kastle/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "kastle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return store
}

func world(name string) *models.GameConfiguration {
	return dsl.Game("start", func(g *dsl.GameScope) {
		g.Metadata(func(m *dsl.MetadataScope) { m.Name = name })
		g.Room("start", func(r *dsl.RoomScope) {
			r.West("garden", func(d *dsl.DirectionScope) { d.State = models.LinkClosed })
			r.Item("lamp", func(i *dsl.ItemScope) { i.Storable = true })
			r.Character("owl", func(c *dsl.CharacterScope) {
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.FirstQuestion("hoot", func(q *dsl.QuestionScope) { q.Reward("feather", nil) })
				})
			})
		})
		g.Room("garden", nil)
	})
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	cfg := world("Owl House")
	require.NoError(t, store.Save(ctx, "owl", cfg))

	loaded, err := store.Load(ctx, "owl")
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("loaded world mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestStore_ListAndOverwrite(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, "first", world("First")))
	require.NoError(t, store.Save(ctx, "second", world("Second")))
	require.NoError(t, store.Save(ctx, "first", world("First again")))

	worlds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, worlds, 2)
	require.Equal(t, "first", worlds[0].Name)
	require.Equal(t, "First again", worlds[0].Title)
	require.Equal(t, 2, worlds[0].RoomCount)
	require.Equal(t, 2, worlds[0].ItemCount)
	require.Equal(t, 1, worlds[0].CharacterCount)
	require.Equal(t, "second", worlds[1].Name)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.Load(ctx, "ghost")
	require.True(t, errors.Is(err, ErrNotFound))
	require.True(t, errors.Is(store.Delete(ctx, "ghost"), ErrNotFound))

	require.NoError(t, store.Save(ctx, "real", world("Real")))
	require.NoError(t, store.Delete(ctx, "real"))
	_, err = store.Load(ctx, "real")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kastle.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "kept", world("Kept")))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.Load(context.Background(), "kept")
	require.NoError(t, err)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestExtractUpMigration(t *testing.T) {
	got := extractUpMigration("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n")
	require.Equal(t, "CREATE TABLE a (x);", got)
	require.Equal(t, "SELECT 1;", extractUpMigration("SELECT 1;"))
}
