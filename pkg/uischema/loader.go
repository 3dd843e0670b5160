package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{apps: make(map[string]Overlay)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single overlay file from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("uischema: read %s: %w", path, err)
	}
	store := &Store{apps: make(map[string]Overlay)}
	if err := store.add(data, filepath.Base(path)); err != nil {
		return nil, err
	}
	return store, nil
}

// Overlay returns the overrides for the named app.
func (s *Store) Overlay(app string) (Overlay, bool) {
	if s == nil {
		return Overlay{}, false
	}
	overlay, ok := s.apps[app]
	return overlay, ok
}

// Apps lists the app names with an overlay, sorted.
func (s *Store) Apps() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.apps))
	for name := range s.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.apps) == 0
}

type documentFile struct {
	Apps map[string]overlayFile `json:"apps" yaml:"apps"`
}

type overlayFile struct {
	Page    PageConfig              `json:"page" yaml:"page"`
	Fields  map[string]FieldConfig  `json:"fields" yaml:"fields"`
	Buttons map[string]ButtonConfig `json:"buttons" yaml:"buttons"`
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	for name, raw := range doc.Apps {
		app := strings.TrimSpace(name)
		if app == "" {
			return fmt.Errorf("uischema: file %s defines an empty app name", source)
		}
		if _, exists := s.apps[app]; exists {
			return fmt.Errorf("uischema: duplicate app %q (file %s)", app, source)
		}
		overlay, err := normaliseOverlay(raw, app, source)
		if err != nil {
			return err
		}
		s.apps[app] = overlay
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normaliseOverlay(raw overlayFile, app, source string) (Overlay, error) {
	overlay := Overlay{
		App:     app,
		Source:  source,
		Page:    raw.Page,
		Fields:  make(map[string]FieldConfig, len(raw.Fields)),
		Buttons: make(map[string]ButtonConfig, len(raw.Buttons)),
	}

	for key, cfg := range raw.Fields {
		id := strings.TrimSpace(key)
		if id == "" {
			return Overlay{}, fmt.Errorf("uischema: app %q (file %s) has an empty field id", app, source)
		}
		if cfg.Lines < 0 {
			return Overlay{}, fmt.Errorf("uischema: app %q (file %s) field %q: lines must not be negative", app, source, id)
		}
		overlay.Fields[id] = cfg
	}

	for key, cfg := range raw.Buttons {
		id := strings.TrimSpace(key)
		if id == "" {
			return Overlay{}, fmt.Errorf("uischema: app %q (file %s) has an empty button id", app, source)
		}
		cfg.Icon = sanitizeIconMarkup(cfg.Icon)
		overlay.Buttons[id] = cfg
	}

	return overlay, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
