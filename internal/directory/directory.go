// Package directory provides a SQLite-backed user and channel directory that
// serves paged, searchable lists to the selector.
package directory

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/atomicstack/integration-selector/internal/selector"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

const currentSchemaVersion = 1

// DefaultPerPage is used when a query does not specify a page size.
const DefaultPerPage = 50

// Directory provides access to the directory database.
type Directory struct {
	db *sql.DB
}

// Open opens a directory database at the given path.
func Open(path string) (*Directory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	d := &Directory{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// OpenMemory opens an in-memory directory.
func OpenMemory() (*Directory, error) {
	return Open(":memory:")
}

// Close closes the database connection.
func (d *Directory) Close() error {
	return d.db.Close()
}

func (d *Directory) migrate() error {
	var version int
	err := d.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		if _, err := d.db.Exec(schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}
	if version == currentSchemaVersion {
		return nil
	}
	if _, err := d.db.Exec(`
		DROP TABLE IF EXISTS users;
		DROP TABLE IF EXISTS channels;
		DROP TABLE IF EXISTS schema_version;
	`); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}
	return nil
}

// Seed upserts users and channels in a single transaction.
func (d *Directory) Seed(ctx context.Context, users []selector.UserProfile, channels []selector.Channel) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, u := range users {
		if u.ID == "" {
			return fmt.Errorf("seed user %q: missing id", u.Username)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, username, first_name, last_name, nickname, email, delete_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				username = excluded.username,
				first_name = excluded.first_name,
				last_name = excluded.last_name,
				nickname = excluded.nickname,
				email = excluded.email,
				delete_at = excluded.delete_at
		`, u.ID, u.Username, u.FirstName, u.LastName, u.Nickname, u.Email, u.DeleteAt); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, c := range channels {
		if c.ID == "" {
			return fmt.Errorf("seed channel %q: missing id", c.Name)
		}
		kind := c.Type
		if kind == "" {
			kind = "O"
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO channels (id, team_id, name, display_name, type)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				team_id = excluded.team_id,
				name = excluded.name,
				display_name = excluded.display_name,
				type = excluded.type
		`, c.ID, c.TeamID, c.Name, c.DisplayName, kind); err != nil {
			return fmt.Errorf("seed channel %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// SearchUsers returns active users whose username, names, nickname or email
// contain term, ordered by username. more reports that a further page exists.
func (d *Directory) SearchUsers(ctx context.Context, term string, page, perPage int) (users []selector.UserProfile, more bool, err error) {
	limit, offset := window(page, perPage)
	pattern := likePattern(term)
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, username, first_name, last_name, nickname, email, delete_at
		FROM users
		WHERE delete_at = 0
		  AND (username LIKE ? ESCAPE '\'
		    OR first_name LIKE ? ESCAPE '\'
		    OR last_name LIKE ? ESCAPE '\'
		    OR nickname LIKE ? ESCAPE '\'
		    OR email LIKE ? ESCAPE '\')
		ORDER BY username COLLATE NOCASE, id
		LIMIT ? OFFSET ?
	`, pattern, pattern, pattern, pattern, pattern, limit+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users = make([]selector.UserProfile, 0, limit)
	for rows.Next() {
		var u selector.UserProfile
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Nickname, &u.Email, &u.DeleteAt); err != nil {
			return nil, false, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate users: %w", err)
	}
	if len(users) > limit {
		return users[:limit], true, nil
	}
	return users, false, nil
}

// SearchChannels returns channels of teamID whose name or display name
// contain term, ordered by display name.
func (d *Directory) SearchChannels(ctx context.Context, teamID, term string, page, perPage int) (channels []selector.Channel, more bool, err error) {
	limit, offset := window(page, perPage)
	pattern := likePattern(term)
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, team_id, name, display_name, type
		FROM channels
		WHERE team_id = ?
		  AND (name LIKE ? ESCAPE '\' OR display_name LIKE ? ESCAPE '\')
		ORDER BY display_name COLLATE NOCASE, name, id
		LIMIT ? OFFSET ?
	`, teamID, pattern, pattern, limit+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("query channels: %w", err)
	}
	defer rows.Close()

	channels = make([]selector.Channel, 0, limit)
	for rows.Next() {
		var c selector.Channel
		if err := rows.Scan(&c.ID, &c.TeamID, &c.Name, &c.DisplayName, &c.Type); err != nil {
			return nil, false, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate channels: %w", err)
	}
	if len(channels) > limit {
		return channels[:limit], true, nil
	}
	return channels, false, nil
}

func window(page, perPage int) (limit, offset int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 0 {
		page = 0
	}
	return perPage, page * perPage
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
