package dsl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/kastle/internal/models"
)

func TestItemScope_Defaults(t *testing.T) {
	item := NewItemScope("lamp").Build()

	require.Equal(t, "lamp", item.ID)
	require.Equal(t, "lamp", item.Name)
	require.Nil(t, item.Description)
	require.Nil(t, item.Use)
	require.NotNil(t, item.Matchers)
	require.Empty(t, item.Matchers)
}

func TestItemScope_BuildIsIdempotent(t *testing.T) {
	s := NewItemScope("lamp")
	s.Storable = true
	s.Matchers("lamp", "light")

	first := s.Build()
	second := s.Build()
	require.Equal(t, first, second)

	first.Matchers[0] = "changed"
	*first.Use = "changed"
	require.Equal(t, "lamp", second.Matchers[0])
	require.Equal(t, "", *second.Use)
}

func TestItemScope_MatchersReplace(t *testing.T) {
	words := []string{"a", "b"}
	s := NewItemScope("x")
	s.Matchers(words...)
	s.Matchers("c")
	words[0] = "z"

	require.Equal(t, []string{"c"}, s.Build().Matchers)
	require.Panics(t, func() { s.Matchers("late") })
}

func TestDirectionScope(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		d := NewDirectionScope("hall").Build()
		want := models.Direction{
			RoomID: "hall",
			State:  models.DirectionState{State: models.LinkOpen, Behavior: models.LinkConstant, Triggers: []string{}},
		}
		if diff := cmp.Diff(want, d); diff != "" {
			t.Errorf("direction mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("configured", func(t *testing.T) {
		s := NewDirectionScope("vault")
		s.State = models.LinkLocked
		s.Behavior = models.LinkToggle
		s.Triggers("gold-key", "silver-key")

		first, second := s.Build(), s.Build()
		require.Equal(t, first, second)
		first.State.Triggers[0] = "changed"
		require.Equal(t, []string{"gold-key", "silver-key"}, second.State.Triggers)
	})
}

func TestRoomScope_MissingDirectionsAreAbsent(t *testing.T) {
	s := NewRoomScope("cell")
	s.South("corridor", nil)
	res := s.Build()

	require.Nil(t, res.Room.Links.North)
	require.Nil(t, res.Room.Links.East)
	require.Nil(t, res.Room.Links.West)
	require.NotNil(t, res.Room.Links.South)
	require.Equal(t, "corridor", res.Room.Links.South.RoomID)
	require.Equal(t, "cell", res.Room.Name)
}

func TestRoomScope_DirectionReplaced(t *testing.T) {
	s := NewRoomScope("cell")
	s.West("a", nil)
	s.West("b", nil)
	require.Equal(t, "b", s.Build().Room.Links.West.RoomID)
}

func TestRoomScope_Result(t *testing.T) {
	s := NewRoomScope("tavern")
	s.Name = "The Tavern"
	s.Description = "Smoky."
	s.Character("barkeep", func(c *CharacterScope) {
		c.Dialogue(func(d *DialogueScope) {
			d.FirstQuestion("q", func(q *QuestionScope) {
				q.Reward("ale", nil)
			})
		})
	})
	s.Item("stool", nil)
	res := s.Build()

	require.Equal(t, "The Tavern", res.Room.Name)
	require.Equal(t, "Smoky.", *res.Room.Description)
	require.Equal(t, []string{"stool", "ale"}, res.Room.Items)
	require.Equal(t, []string{"barkeep"}, res.Room.Characters)
	require.Equal(t, []string{"stool", "ale"}, itemIDs(res.Items))
	require.Len(t, res.Characters, 1)

	require.Panics(t, func() { s.Build() })
	require.Panics(t, func() { s.Item("late", nil) })
	require.Panics(t, func() { s.North("late", nil) })
}

func TestCharacterScope(t *testing.T) {
	t.Run("without dialogue", func(t *testing.T) {
		res := NewCharacterScope("cat").Build()
		require.Equal(t, "cat", res.Character.Name)
		require.Nil(t, res.Character.Dialogue)
		require.Empty(t, res.Items)
	})

	t.Run("dialogue replaced", func(t *testing.T) {
		s := NewCharacterScope("cat")
		s.Dialogue(func(d *DialogueScope) {
			d.Question("old", func(q *QuestionScope) { q.Reward("old-item", nil) })
		})
		s.Dialogue(func(d *DialogueScope) {
			d.Question("new", func(q *QuestionScope) { q.Reward("new-item", nil) })
		})
		res := s.Build()

		require.Equal(t, "new", res.Character.Dialogue.Questions[0].ID)
		require.Equal(t, []string{"new-item"}, itemIDs(res.Items))
	})
}

func TestDialogueScope_Defaults(t *testing.T) {
	s := NewDialogueScope()
	s.Question("q", func(q *QuestionScope) {
		q.Answer(nil)
	})
	res := s.Build()

	require.Equal(t, models.DefaultQuestionID, res.Dialogue.FirstQuestion)
	q := res.Dialogue.Questions[0]
	require.Equal(t, "Default question", q.Text)
	require.Nil(t, q.Reward)
	require.Equal(t, []models.Answer{{Text: "Default answer", NextQuestion: models.DefaultQuestionID}}, q.Answers)
	require.Empty(t, res.Items)
}

func TestDialogueScope_QuestionsInAnyOrder(t *testing.T) {
	s := NewDialogueScope()
	s.Question("end", func(q *QuestionScope) { q.Text = "Farewell" })
	s.FirstQuestion("start", func(q *QuestionScope) {
		q.Answer(func(a *AnswerScope) { a.NextQuestion = "middle" })
	})
	s.Question("middle", func(q *QuestionScope) {
		q.Reward("map", nil)
		q.Answer(func(a *AnswerScope) { a.NextQuestion = "end" })
	})
	s.Question("side", func(q *QuestionScope) {
		q.Reward("compass", nil)
		q.Answer(func(a *AnswerScope) { a.NextQuestion = "end" })
	})
	res := s.Build()

	require.Equal(t, "start", res.Dialogue.FirstQuestion)
	var ids []string
	for _, q := range res.Dialogue.Questions {
		ids = append(ids, q.ID)
	}
	require.Equal(t, []string{"end", "start", "middle", "side"}, ids)
	require.Equal(t, []string{"map", "compass"}, itemIDs(res.Items))
	// converging edges
	require.Equal(t, "end", res.Dialogue.Questions[2].Answers[0].NextQuestion)
	require.Equal(t, "end", res.Dialogue.Questions[3].Answers[0].NextQuestion)
}

func TestQuestionScope_RewardReplaced(t *testing.T) {
	s := NewQuestionScope("q")
	s.Reward("a", nil)
	s.Reward("b", func(i *ItemScope) { i.Description = "shiny" })
	res := s.Build()

	require.Equal(t, "b", *res.Question.Reward)
	require.Equal(t, "b", res.Reward.ID)
	require.Equal(t, "shiny", *res.Reward.Description)
	require.Panics(t, func() { s.Answer(nil) })
}

func TestAnswerAndWinIfAreIdempotent(t *testing.T) {
	a := NewAnswerScope()
	a.Text = "ok"
	require.Equal(t, a.Build(), a.Build())

	w := NewWinningConditionsScope()
	w.PlayerOwns = "crown"
	first, second := w.Build(), w.Build()
	require.Equal(t, first, second)
	*first.PlayerOwns = "changed"
	require.Equal(t, "crown", *second.PlayerOwns)
	require.Nil(t, second.PlayerEnters)
}

func TestLifecycleError(t *testing.T) {
	err := &LifecycleError{Scope: "dialogue", Op: "Question"}
	require.Equal(t, "dsl: dialogue scope: Question called after Build", err.Error())
}

func TestSealedScopesPanicAfterBuild(t *testing.T) {
	room := NewRoomScope("hall")
	room.Build()
	requireLifecyclePanic(t, "Build", func() { room.Build() })
	requireLifecyclePanic(t, "Item", func() { room.Item("late", nil) })
	requireLifecyclePanic(t, "North", func() { room.North("yard", nil) })

	character := NewCharacterScope("guard")
	character.Build()
	requireLifecyclePanic(t, "Dialogue", func() { character.Dialogue(nil) })

	dialogue := NewDialogueScope()
	dialogue.Build()
	requireLifecyclePanic(t, "Question", func() { dialogue.Question("q", nil) })

	question := NewQuestionScope("q")
	question.Build()
	requireLifecyclePanic(t, "Answer", func() { question.Answer(nil) })

	item := NewItemScope("key")
	item.Build()
	requireLifecyclePanic(t, "Matchers", func() { item.Matchers("key") })
	require.NotPanics(t, func() { item.Build() })
}

func requireLifecyclePanic(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(*LifecycleError)
		require.True(t, ok, "expected *LifecycleError panic, got %v", r)
		require.Equal(t, op, err.Op)
	}()
	fn()
}

func TestLeafScopes_FirstBuildFixesRecord(t *testing.T) {
	item := NewItemScope("lamp")
	first := item.Build()
	item.Name = "changed"
	item.Storable = true
	require.Equal(t, first, item.Build())
	require.Nil(t, item.Build().Use)

	dir := NewDirectionScope("yard")
	before := dir.Build()
	dir.State = models.LinkLocked
	require.Equal(t, before, dir.Build())

	meta := NewMetadataScope()
	meta.Name = "Castle"
	m := meta.Build()
	meta.Name = "Other"
	require.Equal(t, m, meta.Build())

	player := NewPlayerScope()
	p := player.Build()
	player.Name = "Other"
	require.Equal(t, p, player.Build())

	answer := NewAnswerScope()
	a := answer.Build()
	answer.NextQuestion = "q2"
	require.Equal(t, a, answer.Build())

	win := NewWinningConditionsScope()
	w := win.Build()
	win.PlayerOwns = "crown"
	require.Equal(t, w, win.Build())
}
