// Package canonical persists cleaned and merged tables by stable name. The
// store is the contract between the ETL stage and the graph builder: the
// builder consumes only what the store holds, never the raw sources.
package canonical

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/dd0wney/orggraph/pkg/table"
)

// ErrTableNotFound is returned when a named table is not in the store
var ErrTableNotFound = errors.New("canonical table not found")

// Stable table names consumed by the graph builder
const (
	TableEmployees          = "employees"
	TableCourseParticipation = "course_participation"
	TableQualifications     = "qualifications"
	TableOrgStructure       = "org_structure"
	TableSkillDictionary    = "skill_dictionary"
	TableSkillMapping       = "skill_mapping"
	TableRoleQualifications = "role_qualifications"
	TableLearningEvents     = "learning_events"
	TableLearningCatalog    = "learning_catalog"
	TableLearningProfile    = "employee_learning_profile"
	TableSkillsMatrix       = "skills_matrix"
	TableCompliance         = "compliance_tracking"
	TableUnified            = "global_unified"
)

// Store is a SQLite-backed canonical table store
type Store struct {
	db *sql.DB
}

// New opens (or creates) the store at the given path
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open canonical store: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate canonical store: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS canonical_tables (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		row_count INTEGER NOT NULL,
		col_count INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put stores (or replaces) a table under a stable name
func (s *Store) Put(ctx context.Context, name string, t *table.Table) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode table %q: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO canonical_tables (name, payload, row_count, col_count, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			row_count = excluded.row_count,
			col_count = excluded.col_count,
			updated_at = CURRENT_TIMESTAMP`,
		name, payload, t.NumRows(), t.NumCols())
	if err != nil {
		return fmt.Errorf("failed to store table %q: %w", name, err)
	}
	return nil
}

// Get retrieves a table by name
func (s *Store) Get(ctx context.Context, name string) (*table.Table, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM canonical_tables WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read table %q: %w", name, err)
	}

	var t table.Table
	if err := json.Unmarshal(payload, &t); err != nil {
		return nil, fmt.Errorf("failed to decode table %q: %w", name, err)
	}
	return &t, nil
}

// Names lists the stored table names in lexical order
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM canonical_tables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a table by name. Deleting an absent table is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM canonical_tables WHERE name = ?`, name)
	return err
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
