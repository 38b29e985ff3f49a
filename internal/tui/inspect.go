package tui

import (
	"fmt"
	"strings"

	"github.com/tatianab/kastle/internal/models"
)

// execute runs one inspector command and returns the text to show.
func (m *model) execute(input string) string {
	verb, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "rooms":
		return listRooms(m.cfg)
	case "room":
		if arg == "" {
			arg = m.current
		}
		r, ok := m.cfg.Room(arg)
		if !ok {
			return fmt.Sprintf("No room %q is declared.", arg)
		}
		m.current = r.ID
		return describeRoom(r)
	case "go":
		r, ok := m.cfg.Room(m.current)
		if !ok {
			return fmt.Sprintf("The current room %q is not declared.", m.current)
		}
		var target *models.Direction
		r.Links.Each(func(side string, d models.Direction) {
			if side == strings.ToLower(arg) {
				target = &d
			}
		})
		if target == nil {
			return fmt.Sprintf("There is no exit %s.", arg)
		}
		next, ok := m.cfg.Room(target.RoomID)
		if !ok {
			return fmt.Sprintf("The %s exit leads to undeclared room %q.", arg, target.RoomID)
		}
		m.current = next.ID
		return describeRoom(next)
	case "items":
		return listItems(m.cfg)
	case "item":
		i, ok := m.cfg.Item(arg)
		if !ok {
			return fmt.Sprintf("No item %q is declared.", arg)
		}
		return describeItem(i)
	case "characters":
		return listCharacters(m.cfg)
	case "character":
		c, ok := m.cfg.Character(arg)
		if !ok {
			return fmt.Sprintf("No character %q is declared.", arg)
		}
		return describeCharacter(c)
	case "talk":
		c, ok := m.cfg.Character(arg)
		if !ok {
			return fmt.Sprintf("No character %q is declared.", arg)
		}
		if c.Dialogue == nil {
			return fmt.Sprintf("%s has nothing to say.", c.Name)
		}
		return describeDialogue(*c.Dialogue)
	case "issues":
		if m.report.OK() {
			return "No integrity issues found."
		}
		var b strings.Builder
		for _, i := range m.report.Issues {
			fmt.Fprintf(&b, "- %s\n", i.Error())
		}
		return strings.TrimRight(b.String(), "\n")
	case "help":
		return helpText
	default:
		return fmt.Sprintf("Unknown command %q. %s", verb, helpText)
	}
}

func listRooms(cfg *models.GameConfiguration) string {
	if len(cfg.Rooms) == 0 {
		return "No rooms declared."
	}
	var b strings.Builder
	for _, r := range cfg.Rooms {
		marker := ""
		if r.ID == cfg.InitialRoomID {
			marker = " (start)"
		}
		fmt.Fprintf(&b, "- %s: %s%s\n", r.ID, r.Name, marker)
	}
	return strings.TrimRight(b.String(), "\n")
}

func listItems(cfg *models.GameConfiguration) string {
	if len(cfg.Items) == 0 {
		return "No items declared."
	}
	var b strings.Builder
	for _, i := range cfg.Items {
		kind := "scenery"
		if i.Storable() {
			kind = "storable"
		}
		fmt.Fprintf(&b, "- %s: %s [%s]\n", i.ID, i.Name, kind)
	}
	return strings.TrimRight(b.String(), "\n")
}

func listCharacters(cfg *models.GameConfiguration) string {
	if len(cfg.Characters) == 0 {
		return "No characters declared."
	}
	var b strings.Builder
	for _, c := range cfg.Characters {
		fmt.Fprintf(&b, "- %s: %s\n", c.ID, c.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeRoom(r models.Room) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", r.Name, r.ID)
	if r.Description != nil {
		b.WriteString(*r.Description + "\n")
	}
	if len(r.Items) > 0 {
		fmt.Fprintf(&b, "Items: %s\n", strings.Join(r.Items, ", "))
	}
	if len(r.Characters) > 0 {
		fmt.Fprintf(&b, "Characters: %s\n", strings.Join(r.Characters, ", "))
	}

	exits := 0
	r.Links.Each(func(side string, d models.Direction) {
		exits++
		fmt.Fprintf(&b, "Exit %s -> %s (%s, %s", side, d.RoomID, d.State.State, d.State.Behavior)
		if len(d.State.Triggers) > 0 {
			fmt.Fprintf(&b, ", triggers: %s", strings.Join(d.State.Triggers, ", "))
		}
		b.WriteString(")\n")
	})
	if exits == 0 {
		b.WriteString("No exits.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeItem(i models.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", i.Name, i.ID)
	if i.Description != nil {
		b.WriteString(*i.Description + "\n")
	}
	if i.Storable() {
		b.WriteString("Can be picked up.\n")
	} else {
		b.WriteString("Part of the scenery.\n")
	}
	if len(i.Matchers) == 0 {
		b.WriteString("No matchers: players cannot refer to it.")
	} else {
		fmt.Fprintf(&b, "Matchers: %s", strings.Join(i.Matchers, ", "))
	}
	return b.String()
}

func describeCharacter(c models.Character) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", c.Name, c.ID)
	if c.Description != nil {
		b.WriteString(*c.Description + "\n")
	}
	if len(c.Matchers) > 0 {
		fmt.Fprintf(&b, "Matchers: %s\n", strings.Join(c.Matchers, ", "))
	}
	if c.Dialogue != nil {
		fmt.Fprintf(&b, "Dialogue: %d questions, type 'talk %s'", len(c.Dialogue.Questions), c.ID)
	} else {
		b.WriteString("No dialogue.")
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeDialogue(d models.Dialogue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Starts at %s\n", d.FirstQuestion)
	for _, q := range d.Questions {
		fmt.Fprintf(&b, "\n[%s] %s\n", q.ID, q.Text)
		if q.Reward != nil {
			fmt.Fprintf(&b, "  grants %s\n", *q.Reward)
		}
		for _, a := range q.Answers {
			next := a.NextQuestion
			if next == models.DefaultQuestionID {
				next = "end"
			}
			fmt.Fprintf(&b, "  - %s -> %s\n", a.Text, next)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
