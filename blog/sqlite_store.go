package blog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the post list in a SQLite database. Unlike the JSON
// stores, Save persists the list it is given. It is also a PostEditor.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path, ensures the data
// directory exists, and creates the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page loads read while a save is in flight; writers wait on
	// the busy timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    position INTEGER PRIMARY KEY,
    id INTEGER NOT NULL,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    content TEXT NOT NULL,
    category TEXT NOT NULL,
    date TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    external_link TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

// Load returns every post in list order.
func (s *SQLiteStore) Load(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, excerpt, content, category, date, image, external_link FROM posts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Category, &p.Date, &p.Image, &p.ExternalLink); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// Save replaces the stored list with posts in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, posts []Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (position, id, title, excerpt, content, category, date, image, external_link) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, p := range posts {
		if _, err := stmt.ExecContext(ctx, i, p.ID, p.Title, p.Excerpt, p.Content, p.Category, p.Date, p.Image, p.ExternalLink); err != nil {
			return fmt.Errorf("insert post %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Prepend inserts p ahead of every stored post.
func (s *SQLiteStore) Prepend(ctx context.Context, p Post) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO posts (position, id, title, excerpt, content, category, date, image, external_link)
SELECT COALESCE(MIN(position), 0) - 1, ?, ?, ?, ?, ?, ?, ?, ? FROM posts`,
		p.ID, p.Title, p.Excerpt, p.Content, p.Category, p.Date, p.Image, p.ExternalLink)
	if err != nil {
		return fmt.Errorf("prepend post %d: %w", p.ID, err)
	}
	return nil
}

// Remove deletes every stored post with id. Removing an unknown id is not
// an error.
func (s *SQLiteStore) Remove(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove post %d: %w", id, err)
	}
	return nil
}
