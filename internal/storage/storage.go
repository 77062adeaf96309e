package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/folio/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrUnknownBackend is returned by Open for an unsupported storage setting.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage defines the interface for persisting the portfolio catalog.
type Storage interface {
	Load() (*model.Catalog, error)
	Save(catalog *model.Catalog) error
}

// YAMLStorage implements Storage using a hand-editable YAML file.
type YAMLStorage struct {
	path string
}

// NewYAMLStorage creates a new YAMLStorage with the given file path.
func NewYAMLStorage(path string) *YAMLStorage {
	return &YAMLStorage{path: path}
}

// Path returns the storage file path.
func (s *YAMLStorage) Path() string {
	return s.path
}

// Load reads the catalog from the YAML file.
// Returns an empty catalog if the file doesn't exist.
func (s *YAMLStorage) Load() (*model.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewCatalog(), nil
		}
		return nil, err
	}

	var catalog model.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	// Ensure slices are not nil
	if catalog.Projects == nil {
		catalog.Projects = []model.Project{}
	}
	for i := range catalog.Projects {
		catalog.Projects[i].Tags = model.NormalizeTags(catalog.Projects[i].Tags)
	}

	return &catalog, nil
}

// Save writes the catalog to the YAML file.
// Creates the directory if it doesn't exist.
func (s *YAMLStorage) Save(catalog *model.Catalog) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(catalog)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Open opens the storage backend selected by cfg.
// "auto" prefers SQLite if the database file exists, otherwise falls back to YAML.
func Open(cfg *Config) (Storage, error) {
	catalogPath, err := cfg.ResolveCatalogPath()
	if err != nil {
		return nil, err
	}
	dbPath, err := cfg.ResolveDatabasePath()
	if err != nil {
		return nil, err
	}

	switch cfg.Storage {
	case "yaml":
		return NewYAMLStorage(catalogPath), nil
	case "sqlite":
		return NewSQLiteStorage(dbPath)
	case "", "auto":
		if _, err := os.Stat(dbPath); err == nil {
			return NewSQLiteStorage(dbPath)
		}
		return NewYAMLStorage(catalogPath), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage)
	}
}

// Close closes s if it holds resources.
func Close(s Storage) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
