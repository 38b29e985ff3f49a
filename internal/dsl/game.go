package dsl

import "github.com/tatianab/kastle/internal/models"

// Game declares a whole game and returns its compiled configuration.
// initialRoomID is the room the player starts in; it is not checked
// against the declared rooms.
func Game(initialRoomID string, init func(*GameScope)) *models.GameConfiguration {
	return run(NewGameScope(initialRoomID), init).Build()
}

// GameScope is the root scope. It collects every room, item and character
// declared in the tree.
type GameScope struct {
	lc lifecycle

	// Preface is shown before the game starts. Empty leaves it unset.
	Preface string

	metadata          models.Metadata
	player            models.Player
	rooms             []models.Room
	items             []models.Item
	characters        []models.Character
	winningConditions *models.WinningConditions
}

func NewGameScope(initialRoomID string) *GameScope {
	return &GameScope{
		lc:         newLifecycle("game", initialRoomID),
		player:     defaultPlayer(),
		rooms:      []models.Room{},
		items:      []models.Item{},
		characters: []models.Character{},
	}
}

// Metadata declares the game metadata, replacing any previous declaration.
func (s *GameScope) Metadata(init func(*MetadataScope)) {
	s.lc.mustBeOpen("Metadata")
	s.metadata = run(NewMetadataScope(), init).Build()
}

// Player overrides the default player.
func (s *GameScope) Player(init func(*PlayerScope)) {
	s.lc.mustBeOpen("Player")
	s.player = run(NewPlayerScope(), init).Build()
}

// Room declares a room. Its items and characters, including dialogue
// rewards, are appended to the game's collections.
func (s *GameScope) Room(roomID string, init func(*RoomScope)) {
	s.lc.mustBeOpen("Room")
	s.AddRoom(run(NewRoomScope(roomID), init).Build())
}

// AddRoom folds an already built room into the game. It lets callers build
// sibling rooms independently and merge them in declaration order.
func (s *GameScope) AddRoom(res RoomResult) {
	s.lc.mustBeOpen("AddRoom")
	s.rooms = append(s.rooms, res.Room)
	s.items = append(s.items, res.Items...)
	s.characters = append(s.characters, res.Characters...)
}

// WinIf declares the winning conditions, replacing any previous declaration.
func (s *GameScope) WinIf(init func(*WinningConditionsScope)) {
	s.lc.mustBeOpen("WinIf")
	w := run(NewWinningConditionsScope(), init).Build()
	s.winningConditions = &w
}

func (s *GameScope) Build() *models.GameConfiguration {
	s.lc.seal()
	metadata := s.metadata
	return &models.GameConfiguration{
		InitialRoomID:     s.lc.id,
		Player:            s.player,
		Metadata:          &metadata,
		Rooms:             s.rooms,
		Items:             s.items,
		Characters:        s.characters,
		WinningConditions: s.winningConditions,
		Preface:           optional(s.Preface),
	}
}
