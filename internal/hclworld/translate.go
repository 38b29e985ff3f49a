package hclworld

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tatianab/kastle/internal/ctxlog"
	"github.com/tatianab/kastle/internal/dsl"
	"github.com/tatianab/kastle/internal/models"
)

const dateLayout = "2006-01-02"

// translator replays decoded blocks through the dsl scopes. Errors found
// while replaying are collected because scope init functions cannot
// return them.
type translator struct {
	logger *slog.Logger
	errs   []error
	seen   map[string]map[string]bool
}

func newTranslator(ctx context.Context) *translator {
	return &translator{
		logger: ctxlog.FromContext(ctx),
		seen: map[string]map[string]bool{
			"room":      {},
			"item":      {},
			"character": {},
		},
	}
}

func (t *translator) fail(err error) {
	t.errs = append(t.errs, err)
}

// track warns about identifiers declared more than once. They are kept: the
// consumer indexing by id will see the last one.
func (t *translator) track(kind, id string) {
	if t.seen[kind][id] {
		t.logger.Warn("Duplicate definition found, later entries will shadow earlier ones.", "kind", kind, "id", id)
	}
	t.seen[kind][id] = true
}

func (t *translator) game(g *gameBlock) (*models.GameConfiguration, error) {
	t.logger.Debug("Translating game block.", "initial_room", g.InitialRoom, "rooms", len(g.Rooms))

	cfg := dsl.Game(g.InitialRoom, func(s *dsl.GameScope) {
		if g.Preface != nil {
			s.Preface = *g.Preface
		}
		if g.Metadata != nil {
			s.Metadata(t.metadata(g.Metadata))
		}
		if g.Player != nil {
			s.Player(func(p *dsl.PlayerScope) {
				setString(&p.Name, g.Player.Name)
				setString(&p.Description, g.Player.Description)
			})
		}
		for _, r := range g.Rooms {
			s.Room(r.ID, t.room(r))
		}
		if g.WinIf != nil {
			s.WinIf(func(w *dsl.WinningConditionsScope) {
				setString(&w.PlayerOwns, g.WinIf.PlayerOwns)
				setString(&w.PlayerEnters, g.WinIf.PlayerEnters)
			})
		}
	})

	if len(t.errs) > 0 {
		return nil, errors.Join(t.errs...)
	}
	return cfg, nil
}

func (t *translator) metadata(m *metadataBlock) func(*dsl.MetadataScope) {
	return func(s *dsl.MetadataScope) {
		setString(&s.Author, m.Author)
		setString(&s.Version, m.Version)
		setString(&s.Name, m.Name)
		if m.Versions != nil {
			s.EngineVersions(m.Versions...)
		}
		if m.Published != nil {
			published, err := time.Parse(dateLayout, *m.Published)
			if err != nil {
				t.fail(fmt.Errorf("metadata: published date %q must use the YYYY-MM-DD layout", *m.Published))
				return
			}
			s.Published = published
		}
	}
}

func (t *translator) room(r *roomBlock) func(*dsl.RoomScope) {
	t.track("room", r.ID)
	logger := t.logger.With("room", r.ID)

	return func(s *dsl.RoomScope) {
		logger.Debug("Translating room.", "items", len(r.Items), "characters", len(r.Characters))
		setString(&s.Name, r.Name)
		setString(&s.Description, r.Description)

		if r.North != nil {
			s.North(r.North.RoomID, t.direction(r.ID, "north", r.North))
		}
		if r.South != nil {
			s.South(r.South.RoomID, t.direction(r.ID, "south", r.South))
		}
		if r.East != nil {
			s.East(r.East.RoomID, t.direction(r.ID, "east", r.East))
		}
		if r.West != nil {
			s.West(r.West.RoomID, t.direction(r.ID, "west", r.West))
		}
		for _, i := range r.Items {
			t.track("item", i.ID)
			s.Item(i.ID, item(i))
		}
		for _, c := range r.Characters {
			t.track("character", c.ID)
			s.Character(c.ID, t.character(c))
		}
	}
}

func (t *translator) direction(roomID, side string, d *directionBlock) func(*dsl.DirectionScope) {
	return func(s *dsl.DirectionScope) {
		if d.State != nil {
			state, err := models.ParseLinkState(*d.State)
			if err != nil {
				t.fail(fmt.Errorf("room %q, %s exit: %w", roomID, side, err))
			}
			s.State = state
		}
		if d.Behavior != nil {
			behavior, err := models.ParseLinkBehavior(*d.Behavior)
			if err != nil {
				t.fail(fmt.Errorf("room %q, %s exit: %w", roomID, side, err))
			}
			s.Behavior = behavior
		}
		if d.Triggers != nil {
			s.Triggers(d.Triggers...)
		}
	}
}

func item(i *itemBlock) func(*dsl.ItemScope) {
	return func(s *dsl.ItemScope) {
		setString(&s.Name, i.Name)
		setString(&s.Description, i.Description)
		if i.Storable != nil {
			s.Storable = *i.Storable
		}
		if i.Matchers != nil {
			s.Matchers(i.Matchers...)
		}
	}
}

func (t *translator) character(c *characterBlock) func(*dsl.CharacterScope) {
	return func(s *dsl.CharacterScope) {
		setString(&s.Name, c.Name)
		setString(&s.Description, c.Description)
		if c.Matchers != nil {
			s.Matchers(c.Matchers...)
		}
		if c.Dialogue != nil {
			s.Dialogue(t.dialogue(c.Dialogue))
		}
	}
}

func (t *translator) dialogue(d *dialogueBlock) func(*dsl.DialogueScope) {
	return func(s *dsl.DialogueScope) {
		for _, q := range d.Questions {
			if q.First != nil && *q.First {
				s.FirstQuestion(q.ID, t.question(q))
			} else {
				s.Question(q.ID, t.question(q))
			}
		}
	}
}

func (t *translator) question(q *questionBlock) func(*dsl.QuestionScope) {
	return func(s *dsl.QuestionScope) {
		setString(&s.Text, q.Text)
		for _, a := range q.Answers {
			s.Answer(func(as *dsl.AnswerScope) {
				setString(&as.Text, a.Text)
				setString(&as.NextQuestion, a.Next)
			})
		}
		if q.Reward != nil {
			t.track("item", q.Reward.ID)
			s.Reward(q.Reward.ID, item(q.Reward))
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
