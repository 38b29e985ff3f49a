package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSaveDir is where compiled worlds are written when no directory is configured.
const DefaultSaveDir = ".saves"

const worldFile = "world.yaml"

// ErrWorldNotFound is returned by Store.Load when no world with that name was saved.
var ErrWorldNotFound = errors.New("world not found")

// Store keeps compiled configurations as YAML files, one directory per world.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir, or at DefaultSaveDir if dir is empty.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &Store{Dir: dir}
}

// ErrInvalidName is returned for world names that are not a single path
// element.
var ErrInvalidName = errors.New("invalid world name")

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

func (s *Store) Save(name string, cfg *GameConfiguration) error {
	if err := checkName(name); err != nil {
		return err
	}
	dir := filepath.Join(s.Dir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, cfg); err != nil {
		return fmt.Errorf("marshal world %s: %w", name, err)
	}
	return os.WriteFile(filepath.Join(dir, worldFile), buf.Bytes(), 0644)
}

func (s *Store) Load(name string) (*GameConfiguration, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name, worldFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrWorldNotFound)
		}
		return nil, err
	}
	return DecodeYAML(data)
}

func (s *Store) List() ([]string, error) {
	if _, err := os.Stat(s.Dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	var worlds []string
	for _, entry := range entries {
		if entry.IsDir() {
			// world.yaml marks a valid save
			path := filepath.Join(s.Dir, entry.Name(), worldFile)
			if _, err := os.Stat(path); err == nil {
				worlds = append(worlds, entry.Name())
			}
		}
	}
	return worlds, nil
}

// EncodeYAML writes cfg to w as a YAML document.
func EncodeYAML(w io.Writer, cfg *GameConfiguration) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// DecodeYAML parses a YAML document produced by EncodeYAML or Store.Save.
func DecodeYAML(data []byte) (*GameConfiguration, error) {
	var cfg GameConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal world: %w", err)
	}
	return &cfg, nil
}
