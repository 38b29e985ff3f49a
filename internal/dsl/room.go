package dsl

import "github.com/tatianab/kastle/internal/models"

// RoomScope configures a room, its exits and the items and characters it
// contains.
type RoomScope struct {
	lc lifecycle

	// Name defaults to the room id.
	Name        string
	Description string

	links      models.Links
	items      []models.Item
	rewards    []models.Item
	characters []models.Character
}

// RoomResult is the room record together with every item and character
// declared inside it. Items lists the room's own items first, then the
// dialogue rewards of its characters in character declaration order.
type RoomResult struct {
	Room       models.Room
	Items      []models.Item
	Characters []models.Character
}

func NewRoomScope(roomID string) *RoomScope {
	return &RoomScope{
		lc:         newLifecycle("room", roomID),
		Name:       roomID,
		items:      []models.Item{},
		rewards:    []models.Item{},
		characters: []models.Character{},
	}
}

// North declares the exit to the north. init may be nil for an open,
// constant link. A later call replaces the exit.
func (s *RoomScope) North(roomID string, init func(*DirectionScope)) {
	s.lc.mustBeOpen("North")
	s.links.North = direction(roomID, init)
}

func (s *RoomScope) South(roomID string, init func(*DirectionScope)) {
	s.lc.mustBeOpen("South")
	s.links.South = direction(roomID, init)
}

func (s *RoomScope) East(roomID string, init func(*DirectionScope)) {
	s.lc.mustBeOpen("East")
	s.links.East = direction(roomID, init)
}

func (s *RoomScope) West(roomID string, init func(*DirectionScope)) {
	s.lc.mustBeOpen("West")
	s.links.West = direction(roomID, init)
}

func direction(roomID string, init func(*DirectionScope)) *models.Direction {
	d := run(NewDirectionScope(roomID), init).Build()
	return &d
}

// Item declares an item lying in the room.
func (s *RoomScope) Item(itemID string, init func(*ItemScope)) {
	s.lc.mustBeOpen("Item")
	s.items = append(s.items, run(NewItemScope(itemID), init).Build())
}

// Character declares a character standing in the room. Items granted by
// its dialogue count as room contents, after the directly declared items.
func (s *RoomScope) Character(characterID string, init func(*CharacterScope)) {
	s.lc.mustBeOpen("Character")
	res := run(NewCharacterScope(characterID), init).Build()
	s.characters = append(s.characters, res.Character)
	s.rewards = append(s.rewards, res.Items...)
}

func (s *RoomScope) Build() RoomResult {
	s.lc.seal()

	itemIDs := make([]string, 0, len(s.items)+len(s.rewards))
	for _, item := range s.items {
		itemIDs = append(itemIDs, item.ID)
	}
	for _, item := range s.rewards {
		itemIDs = append(itemIDs, item.ID)
	}
	characterIDs := make([]string, 0, len(s.characters))
	for _, c := range s.characters {
		characterIDs = append(characterIDs, c.ID)
	}

	items := make([]models.Item, 0, len(s.items)+len(s.rewards))
	items = append(items, s.items...)
	items = append(items, s.rewards...)

	return RoomResult{
		Room: models.Room{
			ID:          s.lc.id,
			Name:        s.Name,
			Description: optional(s.Description),
			Items:       itemIDs,
			Characters:  characterIDs,
			Links:       s.links,
		},
		Items:      items,
		Characters: s.characters,
	}
}
