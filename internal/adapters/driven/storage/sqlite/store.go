package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "passman.db"

// Store is a SQLite-backed document store. It exposes each collection
// through a wrapper type.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.passman/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".passman", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CredentialStore returns the credentials collection.
func (s *Store) CredentialStore() driven.CredentialStore {
	return &credentialStore{store: s}
}

// GroupStore returns the groups collection.
func (s *Store) GroupStore() driven.GroupStore {
	return &groupStore{store: s}
}

// migrate runs every *.up.sql file newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Credential Store ====================

// credentialStore implements driven.CredentialStore.
type credentialStore struct {
	store *Store
}

var _ driven.CredentialStore = (*credentialStore)(nil)

// Save upserts a credential document.
func (s *credentialStore) Save(ctx context.Context, doc domain.CredentialDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling credential: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO credentials (id, kind, doc, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			doc = excluded.doc,
			updated_at = excluded.updated_at
	`, doc.ID, doc.Kind, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// List returns every credential document ordered by id.
func (s *credentialStore) List(ctx context.Context) ([]domain.CredentialDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT doc FROM credentials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying credentials: %w", err)
	}
	defer rows.Close()

	var docs []domain.CredentialDocument
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning credential: %w", err)
		}
		var doc domain.CredentialDocument
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("unmarshalling credential: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Clear deletes every credential document.
func (s *credentialStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// ==================== Group Store ====================

// groupStore implements driven.GroupStore.
type groupStore struct {
	store *Store
}

var _ driven.GroupStore = (*groupStore)(nil)

// Save upserts a group document.
func (s *groupStore) Save(ctx context.Context, doc domain.GroupDocument) error {
	if doc.MemberKeys == nil {
		doc.MemberKeys = []string{}
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling group: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO groups (id, name, doc, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			doc = excluded.doc,
			updated_at = excluded.updated_at
	`, doc.ID, doc.Name, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	return nil
}

// List returns every group document ordered by id.
func (s *groupStore) List(ctx context.Context) ([]domain.GroupDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT doc FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	var docs []domain.GroupDocument
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		var doc domain.GroupDocument
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("unmarshalling group: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes a group document. A missing id is not an error.
func (s *groupStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	return nil
}

// Clear deletes every group document.
func (s *groupStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM groups`); err != nil {
		return fmt.Errorf("clearing groups: %w", err)
	}
	return nil
}
