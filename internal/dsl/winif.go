package dsl

import "github.com/tatianab/kastle/internal/models"

// WinningConditionsScope configures the predicates the runtime checks to
// decide the player has won. Empty fields are left unset.
type WinningConditionsScope struct {
	PlayerOwns   string
	PlayerEnters string

	built *models.WinningConditions
}

func NewWinningConditionsScope() *WinningConditionsScope {
	return &WinningConditionsScope{}
}

func (s *WinningConditionsScope) Build() models.WinningConditions {
	if s.built == nil {
		s.built = &models.WinningConditions{
			PlayerOwns:   optional(s.PlayerOwns),
			PlayerEnters: optional(s.PlayerEnters),
		}
	}
	return s.built.Clone()
}
