package toml

import (
	"fmt"
	"time"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Day     string        `toml:"day"`
	Entries []entrySchema `toml:"entries"`
}

type entrySchema struct {
	Account string    `toml:"account"`
	Target  string    `toml:"target"`
	Type    string    `toml:"type"`
	At      time.Time `toml:"at"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported greetings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
