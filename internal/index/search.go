package index

import (
	"strings"
	"unicode"
)

// SearchResult is a single hit from the full-text index.
type SearchResult struct {
	ID      int64
	Book    string
	Path    string
	Name    string
	Snippet string
	Rank    float64
}

// Search performs a full-text search across chapter names and content,
// ordered by relevance. The query is treated as a bag of prefix terms so
// partial words match while the user is still typing.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := db.conn.Query(`
		SELECT c.id, c.book, c.path, c.name,
		       snippet(chapters_fts, 2, '', '', '…', 10) AS snip,
		       rank
		FROM chapters_fts
		JOIN chapters c ON c.id = chapters_fts.rowid
		WHERE chapters_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Book, &r.Path, &r.Name, &r.Snippet, &r.Rank); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchBook is Search restricted to a single book.
func (db *DB) SearchBook(book, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := db.conn.Query(`
		SELECT c.id, c.book, c.path, c.name,
		       snippet(chapters_fts, 2, '', '', '…', 10) AS snip,
		       rank
		FROM chapters_fts
		JOIN chapters c ON c.id = chapters_fts.rowid
		WHERE chapters_fts MATCH ? AND c.book = ?
		ORDER BY rank
		LIMIT ?
	`, match, book, limit)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Book, &r.Path, &r.Name, &r.Snippet, &r.Rank); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListChapters returns all indexed chapters, sorted by book then name.
func (db *DB) ListChapters(limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := db.conn.Query(`
		SELECT id, book, path, name
		FROM chapters
		ORDER BY book, name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Book, &r.Path, &r.Name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// ftsQuery turns raw input into an FTS5 match expression. Each word becomes
// a quoted prefix term, so punctuation in the input cannot break the query
// syntax. Words with nothing the tokenizer would keep are dropped, since an
// empty phrase is a syntax error.
func ftsQuery(input string) string {
	words := strings.Fields(input)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if !strings.ContainsFunc(w, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) {
			continue
		}
		w = strings.ReplaceAll(w, `"`, `""`)
		terms = append(terms, `"`+w+`"*`)
	}
	return strings.Join(terms, " ")
}
