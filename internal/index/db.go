package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chapters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    book TEXT NOT NULL,
    path TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    mod_time INTEGER NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    hash TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_chapters_book ON chapters(book);

CREATE VIRTUAL TABLE IF NOT EXISTS chapters_fts USING fts5(
    name, book, content, headings,
    tokenize='porter unicode61 remove_diacritics 2'
);
`

// DB wraps the SQLite database connection. The FTS table stores its own
// text and shares rowids with the chapters table, so updates are a plain
// delete and insert by id.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, err
	}
	// A pooled second connection would see a fresh empty memory database.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for advanced queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// UpsertChapter inserts or updates a chapter row and returns its ID.
func (db *DB) UpsertChapter(book, path, name, hash string, modTime, size int64) (int64, error) {
	_, err := db.conn.Exec(`
		INSERT INTO chapters (book, path, name, mod_time, size, hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			book = excluded.book,
			name = excluded.name,
			mod_time = excluded.mod_time,
			size = excluded.size,
			hash = excluded.hash
	`, book, path, name, modTime, size, hash)
	if err != nil {
		return 0, err
	}

	// Get the ID (either inserted or existing)
	var id int64
	err = db.conn.QueryRow("SELECT id FROM chapters WHERE path = ?", path).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateFTS replaces the FTS row for a chapter.
func (db *DB) UpdateFTS(chapterID int64, name, book, content, headings string) error {
	if _, err := db.conn.Exec("DELETE FROM chapters_fts WHERE rowid = ?", chapterID); err != nil {
		return err
	}
	_, err := db.conn.Exec("INSERT INTO chapters_fts(rowid, name, book, content, headings) VALUES(?, ?, ?, ?, ?)",
		chapterID, name, book, content, headings)
	return err
}

// ChapterHash returns the stored content hash for a chapter path.
func (db *DB) ChapterHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM chapters WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// DeleteChapter removes a chapter and its FTS row.
func (db *DB) DeleteChapter(path string) error {
	var id int64
	err := db.conn.QueryRow("SELECT id FROM chapters WHERE path = ?", path).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := db.conn.Exec("DELETE FROM chapters_fts WHERE rowid = ?", id); err != nil {
		return err
	}
	_, err = db.conn.Exec("DELETE FROM chapters WHERE id = ?", id)
	return err
}

// DeleteBook removes every chapter of a book from the index.
func (db *DB) DeleteBook(book string) error {
	if _, err := db.conn.Exec(
		"DELETE FROM chapters_fts WHERE rowid IN (SELECT id FROM chapters WHERE book = ?)", book); err != nil {
		return err
	}
	_, err := db.conn.Exec("DELETE FROM chapters WHERE book = ?", book)
	return err
}

// BookCounts returns the number of indexed chapters per book.
func (db *DB) BookCounts() (map[string]int, error) {
	rows, err := db.conn.Query("SELECT book, COUNT(*) FROM chapters GROUP BY book")
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for rows.Next() {
		var book string
		var n int
		if err := rows.Scan(&book, &n); err != nil {
			_ = rows.Close()
			return nil, err
		}
		counts[book] = n
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Paths returns every indexed chapter path.
func (db *DB) Paths() ([]string, error) {
	rows, err := db.conn.Query("SELECT path FROM chapters")
	if err != nil {
		return nil, err
	}

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			_ = rows.Close()
			return nil, err
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return paths, nil
}
