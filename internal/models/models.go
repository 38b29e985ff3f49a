package models

import (
	"slices"
	"time"
)

// DefaultQuestionID is the conventional question id used when a dialogue
// never sets its first question and when an answer never sets its next
// question. Runtimes treat a reference to it as the end of the dialogue.
const DefaultQuestionID = "d-default-question"

// GameConfiguration is the compiled, cross-referenced world definition.
// Relationships between entities are expressed only through identifiers.
type GameConfiguration struct {
	InitialRoomID     string             `yaml:"initial_room_id" json:"initialRoomId"`
	Player            Player             `yaml:"player" json:"player"`
	Metadata          *Metadata          `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Rooms             []Room             `yaml:"rooms" json:"rooms"`
	Items             []Item             `yaml:"items" json:"items"`
	Characters        []Character        `yaml:"characters" json:"characters"`
	WinningConditions *WinningConditions `yaml:"winning_conditions,omitempty" json:"winningConditions,omitempty"`
	Preface           *string            `yaml:"preface,omitempty" json:"preface,omitempty"`
}

// Metadata carries descriptive information about the game.
type Metadata struct {
	Author         *string    `yaml:"author,omitempty" json:"author,omitempty"`
	Version        *string    `yaml:"version,omitempty" json:"version,omitempty"`
	Published      *time.Time `yaml:"published,omitempty" json:"published,omitempty"`
	EngineVersions []string   `yaml:"engine_versions,omitempty" json:"engineVersions,omitempty"`
	Name           *string    `yaml:"name,omitempty" json:"name,omitempty"`
}

// Player describes the player character.
type Player struct {
	Name        string  `yaml:"name" json:"name"`
	Description *string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Room is a location. Items and characters are referenced by id.
type Room struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description *string  `yaml:"description,omitempty" json:"description,omitempty"`
	Items       []string `yaml:"items" json:"items"`
	Characters  []string `yaml:"characters" json:"characters"`
	Links       Links    `yaml:"links" json:"links"`
}

// Links holds the exits of a room. A nil direction means there is no exit.
type Links struct {
	North *Direction `yaml:"north,omitempty" json:"north,omitempty"`
	South *Direction `yaml:"south,omitempty" json:"south,omitempty"`
	East  *Direction `yaml:"east,omitempty" json:"east,omitempty"`
	West  *Direction `yaml:"west,omitempty" json:"west,omitempty"`
}

// Direction is a link from a room to the room identified by RoomID.
type Direction struct {
	RoomID string         `yaml:"room_id" json:"roomId"`
	State  DirectionState `yaml:"state" json:"state"`
}

// DirectionState describes whether a link can be traversed and how it changes.
type DirectionState struct {
	State    LinkState    `yaml:"state" json:"state"`
	Behavior LinkBehavior `yaml:"behavior" json:"behavior"`
	Triggers []string     `yaml:"triggers" json:"triggers"`
}

// Item is an object that can be found in a room or granted by a dialogue.
// A non-nil Use marks the item as storable.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description *string  `yaml:"description,omitempty" json:"description,omitempty"`
	Matchers    []string `yaml:"matchers" json:"matchers"`
	Use         *string  `yaml:"use,omitempty" json:"use,omitempty"`
}

// Storable reports whether the item can be picked up.
func (i Item) Storable() bool {
	return i.Use != nil
}

// Character is a non-player character.
type Character struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description *string   `yaml:"description,omitempty" json:"description,omitempty"`
	Matchers    []string  `yaml:"matchers" json:"matchers"`
	Dialogue    *Dialogue `yaml:"dialogue,omitempty" json:"dialogue,omitempty"`
}

// Dialogue is a graph of questions rooted at FirstQuestion.
type Dialogue struct {
	FirstQuestion string     `yaml:"first_question" json:"firstQuestion"`
	Questions     []Question `yaml:"questions" json:"questions"`
}

// Question is a dialogue node. Reward is the id of the item granted when
// the question is reached.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Answers []Answer `yaml:"answers" json:"answers"`
	Reward  *string  `yaml:"reward,omitempty" json:"reward,omitempty"`
}

// Answer is an edge to the question identified by NextQuestion.
type Answer struct {
	Text         string `yaml:"text" json:"text"`
	NextQuestion string `yaml:"next_question" json:"nextQuestion"`
}

// WinningConditions are evaluated by the runtime, never by the builder.
type WinningConditions struct {
	PlayerOwns   *string `yaml:"player_owns,omitempty" json:"playerOwns,omitempty"`
	PlayerEnters *string `yaml:"player_enters,omitempty" json:"playerEnters,omitempty"`
}

// Room returns the first room with the given id.
func (c *GameConfiguration) Room(id string) (Room, bool) {
	for _, r := range c.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// Item returns the first item with the given id.
func (c *GameConfiguration) Item(id string) (Item, bool) {
	for _, i := range c.Items {
		if i.ID == id {
			return i, true
		}
	}
	return Item{}, false
}

// Character returns the first character with the given id.
func (c *GameConfiguration) Character(id string) (Character, bool) {
	for _, ch := range c.Characters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Character{}, false
}

// Each calls fn for every direction that is present, in north, south,
// east, west order.
func (l Links) Each(fn func(name string, d Direction)) {
	for _, e := range []struct {
		name string
		d    *Direction
	}{{"north", l.North}, {"south", l.South}, {"east", l.East}, {"west", l.West}} {
		if e.d != nil {
			fn(e.name, *e.d)
		}
	}
}

// Clone returns a deep copy of the configuration that shares no slices or
// pointers with c.
func (c *GameConfiguration) Clone() *GameConfiguration {
	if c == nil {
		return nil
	}
	out := &GameConfiguration{
		InitialRoomID: c.InitialRoomID,
		Player:        c.Player.Clone(),
		Preface:       cloneString(c.Preface),
	}
	if c.Metadata != nil {
		m := c.Metadata.Clone()
		out.Metadata = &m
	}
	if c.WinningConditions != nil {
		w := c.WinningConditions.Clone()
		out.WinningConditions = &w
	}
	out.Rooms = cloneEach(c.Rooms, Room.Clone)
	out.Items = cloneEach(c.Items, Item.Clone)
	out.Characters = cloneEach(c.Characters, Character.Clone)
	return out
}

func (m Metadata) Clone() Metadata {
	out := Metadata{
		Author:         cloneString(m.Author),
		Version:        cloneString(m.Version),
		EngineVersions: slices.Clone(m.EngineVersions),
		Name:           cloneString(m.Name),
	}
	if m.Published != nil {
		p := *m.Published
		out.Published = &p
	}
	return out
}

func (p Player) Clone() Player {
	return Player{Name: p.Name, Description: cloneString(p.Description)}
}

func (r Room) Clone() Room {
	return Room{
		ID:          r.ID,
		Name:        r.Name,
		Description: cloneString(r.Description),
		Items:       cloneStrings(r.Items),
		Characters:  cloneStrings(r.Characters),
		Links:       r.Links.Clone(),
	}
}

func (l Links) Clone() Links {
	return Links{
		North: l.North.clone(),
		South: l.South.clone(),
		East:  l.East.clone(),
		West:  l.West.clone(),
	}
}

func (d *Direction) clone() *Direction {
	if d == nil {
		return nil
	}
	c := d.Clone()
	return &c
}

func (d Direction) Clone() Direction {
	return Direction{
		RoomID: d.RoomID,
		State: DirectionState{
			State:    d.State.State,
			Behavior: d.State.Behavior,
			Triggers: cloneStrings(d.State.Triggers),
		},
	}
}

func (i Item) Clone() Item {
	return Item{
		ID:          i.ID,
		Name:        i.Name,
		Description: cloneString(i.Description),
		Matchers:    cloneStrings(i.Matchers),
		Use:         cloneString(i.Use),
	}
}

func (c Character) Clone() Character {
	out := Character{
		ID:          c.ID,
		Name:        c.Name,
		Description: cloneString(c.Description),
		Matchers:    cloneStrings(c.Matchers),
	}
	if c.Dialogue != nil {
		d := c.Dialogue.Clone()
		out.Dialogue = &d
	}
	return out
}

func (d Dialogue) Clone() Dialogue {
	return Dialogue{
		FirstQuestion: d.FirstQuestion,
		Questions:     cloneEach(d.Questions, Question.Clone),
	}
}

func (q Question) Clone() Question {
	return Question{
		ID:      q.ID,
		Text:    q.Text,
		Answers: cloneEach(q.Answers, func(a Answer) Answer { return a }),
		Reward:  cloneString(q.Reward),
	}
}

func (w WinningConditions) Clone() WinningConditions {
	return WinningConditions{
		PlayerOwns:   cloneString(w.PlayerOwns),
		PlayerEnters: cloneString(w.PlayerEnters),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// cloneStrings keeps empty lists non-nil so records serialize as [].
func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneEach[T any](in []T, fn func(T) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
