package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tatianab/kastle/internal/dsl"
	"github.com/tatianab/kastle/internal/models"
)

func kinds(r Report) []Kind {
	var out []Kind
	for _, i := range r.Issues {
		out = append(out, i.Kind)
	}
	return out
}

func TestCheck_ConsistentWorld(t *testing.T) {
	cfg := dsl.Game("start", func(g *dsl.GameScope) {
		g.Room("start", func(r *dsl.RoomScope) {
			r.North("end", func(d *dsl.DirectionScope) {
				d.State = models.LinkLocked
				d.Triggers("key")
			})
			r.Item("key", nil)
			r.Character("sage", func(c *dsl.CharacterScope) {
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.FirstQuestion("a", func(q *dsl.QuestionScope) {
						q.Answer(func(a *dsl.AnswerScope) { a.NextQuestion = "b" })
						q.Answer(nil)
					})
					d.Question("b", func(q *dsl.QuestionScope) {
						q.Reward("scroll", nil)
					})
				})
			})
		})
		g.Room("end", nil)
		g.WinIf(func(w *dsl.WinningConditionsScope) {
			w.PlayerOwns = "scroll"
			w.PlayerEnters = "end"
		})
	})

	report := Check(cfg)
	require.True(t, report.OK(), "unexpected issues: %v", report.Issues)
	require.NoError(t, report.Err())
}

func TestCheck_DanglingReferences(t *testing.T) {
	cfg := dsl.Game("nowhere", func(g *dsl.GameScope) {
		g.Room("start", func(r *dsl.RoomScope) {
			r.East("void", func(d *dsl.DirectionScope) { d.Triggers("ghost") })
			r.Character("npc", func(c *dsl.CharacterScope) {
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.FirstQuestion("q", func(q *dsl.QuestionScope) {
						q.Answer(func(a *dsl.AnswerScope) { a.NextQuestion = "missing" })
					})
				})
			})
		})
		g.WinIf(func(w *dsl.WinningConditionsScope) {
			w.PlayerOwns = "grail"
			w.PlayerEnters = "heaven"
		})
	})

	report := Check(cfg)
	require.Equal(t, []Kind{
		UnknownRoom,     // initial room
		UnknownRoom,     // east exit
		UnknownItem,     // trigger
		UnknownQuestion, // answer target
		UnknownItem,     // win item
		UnknownRoom,     // win room
	}, kinds(report))

	err := report.Err()
	require.Error(t, err)
	var issue Issue
	require.True(t, errors.As(err, &issue))
	require.Equal(t, UnknownRoom, issue.Kind)
}

func TestCheck_Duplicates(t *testing.T) {
	cfg := dsl.Game("a", func(g *dsl.GameScope) {
		g.Room("a", func(r *dsl.RoomScope) {
			r.Item("coin", nil)
			r.Character("twin", nil)
		})
		g.Room("a", func(r *dsl.RoomScope) {
			r.Character("twin", func(c *dsl.CharacterScope) {
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.FirstQuestion("q", func(q *dsl.QuestionScope) { q.Reward("coin", nil) })
					d.Question("q", nil)
				})
			})
		})
	})

	report := Check(cfg)
	require.Equal(t, []Kind{DuplicateID, DuplicateID, DuplicateID, DuplicateID}, kinds(report))
}

func TestCheck_ReservedQuestionID(t *testing.T) {
	cfg := dsl.Game("a", func(g *dsl.GameScope) {
		g.Room("a", func(r *dsl.RoomScope) {
			r.Character("npc", func(c *dsl.CharacterScope) {
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.Question(models.DefaultQuestionID, nil)
				})
			})
		})
	})

	report := Check(cfg)
	require.Equal(t, []Kind{ReservedQuestion}, kinds(report))
}

func TestCheck_QuestionsWithoutFirst(t *testing.T) {
	cfg := dsl.Game("a", func(g *dsl.GameScope) {
		g.Room("a", func(r *dsl.RoomScope) {
			r.Character("npc", func(c *dsl.CharacterScope) {
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.Question("orphan", nil)
				})
			})
		})
	})

	report := Check(cfg)
	require.Equal(t, []Kind{UnknownQuestion}, kinds(report))
}
