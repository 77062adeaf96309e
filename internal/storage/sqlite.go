package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/folio/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL DEFAULT '',
			headline TEXT NOT NULL DEFAULT '',
			about TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			repo TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			year INTEGER NOT NULL DEFAULT 0,
			featured INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_projects_url ON projects(url);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds gallery ordering and profile links.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE projects ADD COLUMN position INTEGER NOT NULL DEFAULT 0;

		CREATE TABLE IF NOT EXISTS links (
			position INTEGER PRIMARY KEY,
			label TEXT NOT NULL,
			url TEXT NOT NULL
		);

		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the catalog from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Catalog, error) {
	catalog := model.NewCatalog()

	err := s.db.QueryRow(`
		SELECT name, headline, about, email FROM profile WHERE id = 1
	`).Scan(&catalog.Profile.Name, &catalog.Profile.Headline, &catalog.Profile.About, &catalog.Profile.Email)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	links, err := s.loadLinks()
	if err != nil {
		return nil, err
	}
	catalog.Profile.Links = links

	rows, err := s.db.Query(`
		SELECT id, title, summary, description, url, repo, tags, year, featured, created_at
		FROM projects
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Project
		var tagsJSON string
		var createdAtStr string
		var featured int

		if err := rows.Scan(
			&p.ID, &p.Title, &p.Summary, &p.Description, &p.URL, &p.Repo,
			&tagsJSON, &p.Year, &featured, &createdAtStr,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil || p.Tags == nil {
			p.Tags = []string{}
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		p.Featured = featured == 1

		catalog.Projects = append(catalog.Projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return catalog, nil
}

func (s *SQLiteStorage) loadLinks() ([]model.Link, error) {
	rows, err := s.db.Query("SELECT label, url FROM links ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []model.Link
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(&l.Label, &l.URL); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// Save writes the catalog to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(catalog *model.Catalog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM projects", "DELETE FROM links", "DELETE FROM profile"} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	p := catalog.Profile
	if _, err := tx.Exec(`
		INSERT INTO profile (id, name, headline, about, email) VALUES (1, ?, ?, ?, ?)
	`, p.Name, p.Headline, p.About, p.Email); err != nil {
		return err
	}

	for i, l := range p.Links {
		if _, err := tx.Exec("INSERT INTO links (position, label, url) VALUES (?, ?, ?)", i, l.Label, l.URL); err != nil {
			return err
		}
	}

	projectStmt, err := tx.Prepare(`
		INSERT INTO projects (id, title, summary, description, url, repo, tags, year, featured, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer projectStmt.Close()

	for i, pr := range catalog.Projects {
		tagsJSON, _ := json.Marshal(pr.Tags)
		if pr.Tags == nil {
			tagsJSON = []byte("[]")
		}

		featured := 0
		if pr.Featured {
			featured = 1
		}

		if _, err := projectStmt.Exec(
			pr.ID, pr.Title, pr.Summary, pr.Description, pr.URL, pr.Repo,
			string(tagsJSON), pr.Year, featured, pr.CreatedAt.Format(time.RFC3339), i,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
