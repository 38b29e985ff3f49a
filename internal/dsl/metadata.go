package dsl

import (
	"time"

	"github.com/tatianab/kastle/internal/models"
)

// MetadataScope configures descriptive information about the game.
type MetadataScope struct {
	lc lifecycle

	Author  string
	Version string
	Name    string
	// Published is the release date. The zero time leaves it unset.
	Published time.Time

	engineVersions []string
	built          *models.Metadata
}

func NewMetadataScope() *MetadataScope {
	return &MetadataScope{lc: newLifecycle("metadata", "")}
}

// EngineVersions sets the runtime versions the game supports, replacing any
// previous set.
func (s *MetadataScope) EngineVersions(versions ...string) {
	s.lc.mustBeOpen("EngineVersions")
	s.engineVersions = copyStrings(versions)
}

func (s *MetadataScope) Build() models.Metadata {
	s.lc.freeze()
	if s.built != nil {
		return s.built.Clone()
	}
	m := models.Metadata{
		Author:  optional(s.Author),
		Version: optional(s.Version),
		Name:    optional(s.Name),
	}
	if s.engineVersions != nil {
		m.EngineVersions = copyStrings(s.engineVersions)
	}
	if !s.Published.IsZero() {
		p := s.Published
		m.Published = &p
	}
	s.built = &m
	return m.Clone()
}
