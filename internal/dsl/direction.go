package dsl

import "github.com/tatianab/kastle/internal/models"

// DirectionScope configures the link from a room towards another room.
type DirectionScope struct {
	lc lifecycle

	State    models.LinkState
	Behavior models.LinkBehavior

	triggers []string
	built    *models.Direction
}

// NewDirectionScope returns an open, constant link to roomID with no triggers.
func NewDirectionScope(roomID string) *DirectionScope {
	return &DirectionScope{
		lc:       newLifecycle("direction", roomID),
		State:    models.LinkOpen,
		Behavior: models.LinkConstant,
		triggers: []string{},
	}
}

// Triggers sets the items that can change the state of the link, replacing
// any previous set.
func (s *DirectionScope) Triggers(itemIDs ...string) {
	s.lc.mustBeOpen("Triggers")
	s.triggers = copyStrings(itemIDs)
}

// Build returns the link. The record is fixed by the first call; later
// calls return copies of it.
func (s *DirectionScope) Build() models.Direction {
	s.lc.freeze()
	if s.built != nil {
		return s.built.Clone()
	}
	d := models.Direction{
		RoomID: s.lc.id,
		State: models.DirectionState{
			State:    s.State,
			Behavior: s.Behavior,
			Triggers: copyStrings(s.triggers),
		},
	}
	s.built = &d
	return d.Clone()
}
