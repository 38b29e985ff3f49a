// Package validate checks the referential integrity of a compiled
// configuration. It runs after the dsl has produced the configuration and
// never modifies it.
package validate

import (
	"errors"
	"fmt"

	"github.com/tatianab/kastle/internal/models"
)

// Kind classifies an Issue.
type Kind string

const (
	DuplicateID      Kind = "duplicate_id"
	UnknownRoom      Kind = "unknown_room"
	UnknownItem      Kind = "unknown_item"
	UnknownCharacter Kind = "unknown_character"
	UnknownQuestion  Kind = "unknown_question"
	ReservedQuestion Kind = "reserved_question"
)

// Issue is a single integrity problem.
type Issue struct {
	Kind    Kind
	Subject string
	Message string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.Subject, i.Message)
}

// Report lists every issue found, in the order the configuration was walked.
type Report struct {
	Issues []Issue
}

// OK reports whether no issues were found.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

// Err joins all issues into one error, or returns nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Issues))
	for _, i := range r.Issues {
		errs = append(errs, i)
	}
	return errors.Join(errs...)
}

type checker struct {
	report     Report
	rooms      map[string]bool
	items      map[string]bool
	characters map[string]bool
}

func (c *checker) add(kind Kind, subject, format string, args ...any) {
	c.report.Issues = append(c.report.Issues, Issue{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Check walks cfg and reports duplicate identifiers and dangling references.
func Check(cfg *models.GameConfiguration) Report {
	c := &checker{
		rooms:      map[string]bool{},
		items:      map[string]bool{},
		characters: map[string]bool{},
	}

	for _, r := range cfg.Rooms {
		if c.rooms[r.ID] {
			c.add(DuplicateID, "room "+r.ID, "declared more than once, the last declaration shadows the others")
		}
		c.rooms[r.ID] = true
	}
	for _, i := range cfg.Items {
		if c.items[i.ID] {
			c.add(DuplicateID, "item "+i.ID, "declared more than once, the last declaration shadows the others")
		}
		c.items[i.ID] = true
	}
	for _, ch := range cfg.Characters {
		if c.characters[ch.ID] {
			c.add(DuplicateID, "character "+ch.ID, "declared more than once, the last declaration shadows the others")
		}
		c.characters[ch.ID] = true
	}

	if !c.rooms[cfg.InitialRoomID] {
		c.add(UnknownRoom, "game", "initial room %q is not declared", cfg.InitialRoomID)
	}

	for _, r := range cfg.Rooms {
		c.checkRoom(r)
	}
	for _, ch := range cfg.Characters {
		if ch.Dialogue != nil {
			c.checkDialogue(ch.ID, *ch.Dialogue)
		}
	}

	if w := cfg.WinningConditions; w != nil {
		if w.PlayerOwns != nil && !c.items[*w.PlayerOwns] {
			c.add(UnknownItem, "winning conditions", "item %q is not declared", *w.PlayerOwns)
		}
		if w.PlayerEnters != nil && !c.rooms[*w.PlayerEnters] {
			c.add(UnknownRoom, "winning conditions", "room %q is not declared", *w.PlayerEnters)
		}
	}
	return c.report
}

func (c *checker) checkRoom(r models.Room) {
	subject := "room " + r.ID
	r.Links.Each(func(side string, d models.Direction) {
		if !c.rooms[d.RoomID] {
			c.add(UnknownRoom, subject, "%s exit leads to undeclared room %q", side, d.RoomID)
		}
		for _, trigger := range d.State.Triggers {
			if !c.items[trigger] {
				c.add(UnknownItem, subject, "%s exit is triggered by undeclared item %q", side, trigger)
			}
		}
	})
	for _, id := range r.Items {
		if !c.items[id] {
			c.add(UnknownItem, subject, "contains undeclared item %q", id)
		}
	}
	for _, id := range r.Characters {
		if !c.characters[id] {
			c.add(UnknownCharacter, subject, "contains undeclared character %q", id)
		}
	}
}

func (c *checker) checkDialogue(characterID string, d models.Dialogue) {
	subject := "character " + characterID
	questions := map[string]bool{}
	for _, q := range d.Questions {
		if q.ID == models.DefaultQuestionID {
			c.add(ReservedQuestion, subject, "question id %q is reserved for the end of a dialogue", q.ID)
		}
		if questions[q.ID] {
			c.add(DuplicateID, subject, "question %q declared more than once", q.ID)
		}
		questions[q.ID] = true
	}

	if d.FirstQuestion == models.DefaultQuestionID {
		if len(d.Questions) > 0 {
			c.add(UnknownQuestion, subject, "dialogue has questions but no first question")
		}
	} else if !questions[d.FirstQuestion] {
		c.add(UnknownQuestion, subject, "first question %q is not declared", d.FirstQuestion)
	}

	for _, q := range d.Questions {
		if q.Reward != nil && !c.items[*q.Reward] {
			c.add(UnknownItem, subject, "question %q rewards undeclared item %q", q.ID, *q.Reward)
		}
		for _, a := range q.Answers {
			if a.NextQuestion != models.DefaultQuestionID && !questions[a.NextQuestion] {
				c.add(UnknownQuestion, subject, "question %q answer %q leads to undeclared question %q", q.ID, a.Text, a.NextQuestion)
			}
		}
	}
}
