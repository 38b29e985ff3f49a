package models

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func strPtr(s string) *string { return &s }

func sampleConfiguration() *GameConfiguration {
	return &GameConfiguration{
		InitialRoomID: "start",
		Player:        Player{Name: "Player", Description: strPtr("Default player")},
		Rooms: []Room{{
			ID:         "start",
			Name:       "Start",
			Items:      []string{"key"},
			Characters: []string{},
			Links: Links{North: &Direction{
				RoomID: "hall",
				State:  DirectionState{State: LinkLocked, Behavior: LinkToggle, Triggers: []string{"key"}},
			}},
		}},
		Items:      []Item{{ID: "key", Name: "key", Matchers: []string{"key"}, Use: strPtr("")}},
		Characters: []Character{},
	}
}

func TestGameConfigurationYAML(t *testing.T) {
	cfg := sampleConfiguration()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal configuration: %v", err)
	}
	if !strings.Contains(string(data), "state: LOCKED") {
		t.Errorf("Expected link state to be written by name, got:\n%s", data)
	}
	if !strings.Contains(string(data), "behavior: TOGGLE") {
		t.Errorf("Expected link behavior to be written by name, got:\n%s", data)
	}

	cfg2, err := DecodeYAML(data)
	if err != nil {
		t.Fatalf("Failed to unmarshal configuration: %v", err)
	}

	north := cfg2.Rooms[0].Links.North
	if north == nil || north.State.State != LinkLocked || north.State.Behavior != LinkToggle {
		t.Errorf("Expected locked toggle link, got %+v", north)
	}
	if cfg2.Rooms[0].Links.South != nil {
		t.Errorf("Expected no south link, got %+v", cfg2.Rooms[0].Links.South)
	}
	if !cfg2.Items[0].Storable() {
		t.Errorf("Expected item %s to be storable after decoding", cfg2.Items[0].ID)
	}
}

func TestLinkStateRejectsUnknownName(t *testing.T) {
	var s LinkState
	if err := s.UnmarshalText([]byte("AJAR")); err == nil {
		t.Fatalf("Expected error for unknown link state")
	}
	if _, err := ParseLinkBehavior("SOMETIMES"); err == nil {
		t.Fatalf("Expected error for unknown link behavior")
	}
}

func TestCloneSharesNothing(t *testing.T) {
	cfg := sampleConfiguration()
	clone := cfg.Clone()

	clone.Rooms[0].Items[0] = "changed"
	clone.Rooms[0].Links.North.State.Triggers[0] = "changed"
	*clone.Items[0].Use = "changed"
	*clone.Player.Description = "changed"

	if cfg.Rooms[0].Items[0] != "key" {
		t.Errorf("Expected room items to be untouched, got %v", cfg.Rooms[0].Items)
	}
	if cfg.Rooms[0].Links.North.State.Triggers[0] != "key" {
		t.Errorf("Expected triggers to be untouched, got %v", cfg.Rooms[0].Links.North.State.Triggers)
	}
	if *cfg.Items[0].Use != "" {
		t.Errorf("Expected use marker to be untouched, got %q", *cfg.Items[0].Use)
	}
	if *cfg.Player.Description != "Default player" {
		t.Errorf("Expected player description to be untouched, got %q", *cfg.Player.Description)
	}
}

func TestStoreSaveLoadList(t *testing.T) {
	store := NewStore(t.TempDir())

	names, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("Expected no worlds, got %v", names)
	}

	if err := store.Save("castle", sampleConfiguration()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load("castle")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.InitialRoomID != "start" {
		t.Errorf("Expected initial room start, got %s", loaded.InitialRoomID)
	}

	names, err = store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 1 || names[0] != "castle" {
		t.Errorf("Expected [castle], got %v", names)
	}

	if _, err := store.Load("missing"); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("Expected ErrWorldNotFound, got %v", err)
	}
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, sampleConfiguration()); err != nil {
		t.Fatalf("EncodeYAML failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "initial_room_id: start") {
		t.Errorf("Expected document to start with the initial room, got:\n%s", buf.String())
	}
}

func TestStoreRejectsNamesOutsideDir(t *testing.T) {
	root := t.TempDir()
	store := NewStore(filepath.Join(root, "saves"))

	for _, name := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		if err := store.Save(name, sampleConfiguration()); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q): expected ErrInvalidName, got %v", name, err)
		}
		if _, err := store.Load(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Load(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "escape")); !os.IsNotExist(err) {
		t.Errorf("Expected nothing written outside the save directory, got %v", err)
	}
}

func TestStoreSaveWritesEncodedYAML(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("castle", sampleConfiguration()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var want bytes.Buffer
	if err := EncodeYAML(&want, sampleConfiguration()); err != nil {
		t.Fatalf("EncodeYAML failed: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(store.Dir, "castle", worldFile))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != want.String() {
		t.Errorf("Expected saved file to match EncodeYAML output, got:\n%s", got)
	}
	if !strings.Contains(string(got), "\n  - id: start\n") {
		t.Errorf("Expected two-space indentation, got:\n%s", got)
	}
}
