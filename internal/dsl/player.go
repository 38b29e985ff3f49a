package dsl

import "github.com/tatianab/kastle/internal/models"

const (
	defaultPlayerName        = "Player"
	defaultPlayerDescription = "Default player"
)

// PlayerScope configures the player character.
type PlayerScope struct {
	Name        string
	Description string

	built *models.Player
}

func NewPlayerScope() *PlayerScope {
	return &PlayerScope{Name: defaultPlayerName}
}

func (s *PlayerScope) Build() models.Player {
	if s.built == nil {
		s.built = &models.Player{
			Name:        s.Name,
			Description: optional(s.Description),
		}
	}
	return s.built.Clone()
}

func defaultPlayer() models.Player {
	d := defaultPlayerDescription
	return models.Player{Name: defaultPlayerName, Description: &d}
}
