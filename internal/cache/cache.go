// Package cache persists collection snapshots to a local SQLite database so
// read commands keep working when the backend is unreachable.
package cache

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"catalogctl/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Entity table keys, one per collection.
const (
	EntityLocations     = "locations"
	EntityAddresses     = "addresses"
	EntityOrganizations = "organizations"
	EntityPersons       = "persons"
	EntityProducts      = "products"
	EntityHistory       = "import_history"
)

// Open opens the snapshot database at the given path, creating it and
// applying pending migrations if needed.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging cache database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating cache database: %w", err)
	}
	return db, nil
}

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY
		)
	`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	type migration struct {
		version int
		name    string
	}
	var ups []migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		ups = append(ups, migration{version: version, name: name})
	}
	sort.Slice(ups, func(i, j int) bool { return ups[i].version < ups[j].version })

	for _, m := range ups {
		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.version).Scan(&applied); err != nil {
			return fmt.Errorf("checking migration %d: %w", m.version, err)
		}
		if applied > 0 {
			continue
		}
		data, err := fs.ReadFile(migrationsFS, "migrations/"+m.name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", m.name, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("applying migration %s: %w", m.name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
	}
	return nil
}

// SaveCollection replaces the cached rows for one entity with the given
// items, all in one transaction.
func SaveCollection[E store.Entity](ctx context.Context, db *sql.DB, entity string, items []E) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("caching %s: %w", entity, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE entity = ?", entity); err != nil {
		return fmt.Errorf("clearing cached %s: %w", entity, err)
	}
	for _, item := range items {
		body, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encoding %s %d: %w", entity, item.EntityID(), err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO records (entity, id, body) VALUES (?, ?, ?)",
			entity, item.EntityID(), string(body))
		if err != nil {
			return fmt.Errorf("caching %s %d: %w", entity, item.EntityID(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("caching %s: %w", entity, err)
	}
	return nil
}

// LoadCollection reads back the cached rows for one entity, ordered by id.
func LoadCollection[E any](ctx context.Context, db *sql.DB, entity string) ([]E, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT body FROM records WHERE entity = ? ORDER BY id", entity)
	if err != nil {
		return nil, fmt.Errorf("reading cached %s: %w", entity, err)
	}
	defer rows.Close()

	var out []E
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("reading cached %s: %w", entity, err)
		}
		var item E
		if err := json.Unmarshal([]byte(body), &item); err != nil {
			return nil, fmt.Errorf("decoding cached %s: %w", entity, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cached %s: %w", entity, err)
	}
	return out, nil
}

// Snapshot writes every collection's current items to the cache.
func Snapshot(ctx context.Context, db *sql.DB, reg *store.Registry) error {
	if err := SaveCollection(ctx, db, EntityLocations, reg.Locations.Items()); err != nil {
		return err
	}
	if err := SaveCollection(ctx, db, EntityAddresses, reg.Addresses.Items()); err != nil {
		return err
	}
	if err := SaveCollection(ctx, db, EntityOrganizations, reg.Organizations.Items()); err != nil {
		return err
	}
	if err := SaveCollection(ctx, db, EntityPersons, reg.Persons.Items()); err != nil {
		return err
	}
	if err := SaveCollection(ctx, db, EntityProducts, reg.Products.Items()); err != nil {
		return err
	}
	return SaveCollection(ctx, db, EntityHistory, reg.History.Items())
}
