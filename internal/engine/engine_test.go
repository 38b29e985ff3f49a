package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tatianab/kastle/internal/dsl"
	"github.com/tatianab/kastle/internal/models"
)

type fakeGenerator struct {
	prompts []string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.prompts = append(f.prompts, prompt)
	return `  "generated"  `, nil
}

func sampleWorld() *models.GameConfiguration {
	return dsl.Game("hut", func(g *dsl.GameScope) {
		g.Metadata(func(m *dsl.MetadataScope) { m.Name = "Swamp" })
		g.Room("hut", func(r *dsl.RoomScope) {
			r.Description = "Already written."
			r.Item("pot", nil)
		})
		g.Room("bog", func(r *dsl.RoomScope) {
			r.North("hut", func(d *dsl.DirectionScope) { d.State = models.LinkClosed })
			r.Item("reed", func(i *dsl.ItemScope) { i.Storable = true })
			r.Character("toad", func(c *dsl.CharacterScope) {
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.FirstQuestion("croak", func(q *dsl.QuestionScope) { q.Text = "Ribbit?" })
				})
			})
		})
	})
}

func TestFillDescriptions(t *testing.T) {
	gen := &fakeGenerator{}
	cfg := sampleWorld()

	out, err := New(gen).FillDescriptions(context.Background(), cfg)
	require.NoError(t, err)

	require.Equal(t, "Already written.", *out.Rooms[0].Description)
	require.Equal(t, "generated", *out.Rooms[1].Description)
	for _, i := range out.Items {
		require.Equal(t, "generated", *i.Description)
	}
	require.Equal(t, "generated", *out.Characters[0].Description)

	// one room, two items, one character
	require.Len(t, gen.prompts, 4)
	require.Contains(t, gen.prompts[0], `"Swamp"`)
	require.Contains(t, gen.prompts[0], "reed, toad")
	require.Contains(t, gen.prompts[0], "north (closed)")
	require.True(t, strings.Contains(gen.prompts[2], "pick it up"))
	require.Contains(t, gen.prompts[3], "Ribbit?")

	// the input is left untouched
	require.Nil(t, cfg.Rooms[1].Description)
	require.Nil(t, cfg.Items[0].Description)
	require.Nil(t, cfg.Characters[0].Description)
}

func TestFillDescriptions_GeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := New(&fakeGenerator{err: boom}).FillDescriptions(context.Background(), sampleWorld())
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "describe room bog")
}
