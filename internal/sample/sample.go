// Package sample holds a small demonstration world written with the dsl
// package.
package sample

import (
	"time"

	"github.com/tatianab/kastle/internal/dsl"
	"github.com/tatianab/kastle/internal/models"
)

// Name is the name the demo world is stored under.
const Name = "castle-demo"

// World builds the demo castle. The player wins by carrying the crown out
// through the gate.
func World() *models.GameConfiguration {
	return dsl.Game("gate", func(g *dsl.GameScope) {
		g.Preface = "The old castle has been quiet for a hundred years. Tonight the gate stands open."

		g.Metadata(func(m *dsl.MetadataScope) {
			m.Name = "The Quiet Castle"
			m.Author = "Kastle"
			m.Version = "1.0.0"
			m.Published = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
			m.EngineVersions("0.1.0")
		})

		g.Player(func(p *dsl.PlayerScope) {
			p.Name = "Wanderer"
			p.Description = "A traveller looking for shelter from the rain."
		})

		g.Room("gate", func(r *dsl.RoomScope) {
			r.Name = "Castle Gate"
			r.Description = "A rusted portcullis hangs above a muddy path."
			r.North("hall", nil)
			r.Item("portcullis", func(i *dsl.ItemScope) {
				i.Name = "Portcullis"
				i.Matchers("portcullis", "gate")
			})
		})

		g.Room("hall", func(r *dsl.RoomScope) {
			r.Name = "Great Hall"
			r.Description = "Long tables lie under a blanket of dust."
			r.South("gate", nil)
			r.East("kitchen", nil)
			r.North("throne", func(d *dsl.DirectionScope) {
				d.State = models.LinkLocked
				d.Triggers("brass-key")
			})
			r.Item("candle", func(i *dsl.ItemScope) {
				i.Name = "Candle"
				i.Storable = true
				i.Matchers("candle", "light")
			})
			r.Character("steward", func(c *dsl.CharacterScope) {
				c.Name = "Old Steward"
				c.Description = "A thin man in a coat two sizes too large."
				c.Matchers("steward", "man")
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.FirstQuestion("greet", func(q *dsl.QuestionScope) {
						q.Text = "A guest? Have you come for the crown?"
						q.Answer(func(a *dsl.AnswerScope) {
							a.Text = "I have."
							a.NextQuestion = "key"
						})
						q.Answer(func(a *dsl.AnswerScope) {
							a.Text = "Only for shelter."
						})
					})
					d.Question("key", func(q *dsl.QuestionScope) {
						q.Text = "Then you will need this. The throne room has been locked since the king left."
						q.Reward("brass-key", func(i *dsl.ItemScope) {
							i.Name = "Brass Key"
							i.Storable = true
							i.Matchers("key", "brass key")
						})
						q.Answer(func(a *dsl.AnswerScope) {
							a.Text = "Thank you."
						})
					})
				})
			})
		})

		g.Room("kitchen", func(r *dsl.RoomScope) {
			r.Name = "Kitchen"
			r.Description = "Copper pots still hang above a cold hearth."
			r.West("hall", nil)
			r.Item("pot", func(i *dsl.ItemScope) {
				i.Name = "Copper Pot"
				i.Matchers("pot")
			})
			r.Character("cat", func(c *dsl.CharacterScope) {
				c.Name = "Kitchen Cat"
				c.Matchers("cat")
				c.Dialogue(func(d *dsl.DialogueScope) {
					d.FirstQuestion("meow", func(q *dsl.QuestionScope) {
						q.Text = "Meow."
						q.Reward("fish-bone", func(i *dsl.ItemScope) {
							i.Name = "Fish Bone"
							i.Storable = true
						})
						q.Answer(func(a *dsl.AnswerScope) { a.Text = "Good cat." })
					})
				})
			})
		})

		g.Room("throne", func(r *dsl.RoomScope) {
			r.Name = "Throne Room"
			r.Description = "Moonlight falls on an empty throne."
			r.South("hall", nil)
			r.Item("crown", func(i *dsl.ItemScope) {
				i.Name = "Crown"
				i.Storable = true
				i.Matchers("crown")
			})
		})

		g.WinIf(func(w *dsl.WinningConditionsScope) {
			w.PlayerOwns = "crown"
		})
	})
}
