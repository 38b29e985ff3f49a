package dsl

import "github.com/tatianab/kastle/internal/models"

// CharacterScope configures a non-player character and its dialogue.
type CharacterScope struct {
	lc lifecycle

	// Name defaults to the character id.
	Name        string
	Description string

	matchers []string
	dialogue *models.Dialogue
	items    []models.Item
}

// CharacterResult is a character together with the reward items declared in
// its dialogue.
type CharacterResult struct {
	Character models.Character
	Items     []models.Item
}

func NewCharacterScope(characterID string) *CharacterScope {
	return &CharacterScope{
		lc:       newLifecycle("character", characterID),
		Name:     characterID,
		matchers: []string{},
		items:    []models.Item{},
	}
}

// Matchers sets the words a player can use to refer to the character,
// replacing any previous set.
func (s *CharacterScope) Matchers(words ...string) {
	s.lc.mustBeOpen("Matchers")
	s.matchers = copyStrings(words)
}

// Dialogue declares the character's dialogue. A later call replaces both
// the dialogue and its reward items.
func (s *CharacterScope) Dialogue(init func(*DialogueScope)) {
	s.lc.mustBeOpen("Dialogue")
	res := run(NewDialogueScope(), init).Build()
	s.dialogue = &res.Dialogue
	s.items = res.Items
}

func (s *CharacterScope) Build() CharacterResult {
	s.lc.seal()
	return CharacterResult{
		Character: models.Character{
			ID:          s.lc.id,
			Name:        s.Name,
			Description: optional(s.Description),
			Matchers:    s.matchers,
			Dialogue:    s.dialogue,
		},
		Items: s.items,
	}
}
