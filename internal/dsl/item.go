package dsl

import "github.com/tatianab/kastle/internal/models"

// ItemScope configures an item declared in a room or granted as a
// dialogue reward.
type ItemScope struct {
	lc lifecycle

	// Name defaults to the item id.
	Name        string
	Description string
	// Storable items can be picked up and carried by the player.
	Storable bool

	matchers []string
	built    *models.Item
}

func NewItemScope(itemID string) *ItemScope {
	return &ItemScope{
		lc:       newLifecycle("item", itemID),
		Name:     itemID,
		matchers: []string{},
	}
}

// Matchers sets the words a player can use to refer to the item, replacing
// any previous set.
func (s *ItemScope) Matchers(words ...string) {
	s.lc.mustBeOpen("Matchers")
	s.matchers = copyStrings(words)
}

// Build returns the item record. Storable items carry an empty use marker.
// The record is fixed by the first call; later calls return copies of it.
func (s *ItemScope) Build() models.Item {
	s.lc.freeze()
	if s.built != nil {
		return s.built.Clone()
	}
	item := models.Item{
		ID:          s.lc.id,
		Name:        s.Name,
		Description: optional(s.Description),
		Matchers:    copyStrings(s.matchers),
	}
	if s.Storable {
		use := ""
		item.Use = &use
	}
	s.built = &item
	return item.Clone()
}
