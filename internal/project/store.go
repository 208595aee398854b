package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save persists the settings as indented JSON, creating the parent directory.
func Save(s *Settings, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create project dir: %w", err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write project file: %w", err)
	}
	return nil
}

// Load reads and parses a project file. Fields missing from the file keep
// the values from Default.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}

	s := Default()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	if s.VerilogFiles == nil {
		s.VerilogFiles = []string{}
	}
	if s.OpenFiles == nil {
		s.OpenFiles = []EditorFile{}
	}

	return s, nil
}

// LoadResolved loads a project and resolves its relative paths against the
// project file's directory.
func LoadResolved(path string) (*Settings, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return s.Resolve(filepath.Dir(path)), nil
}
