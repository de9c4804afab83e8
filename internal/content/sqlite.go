package content

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // SQLite driver
)

// The seed database is a single document table: each row is one record of
// one collection, stored as its JSON document, ordered by position so the
// original collection order survives the round trip.
const seedSchema = `
CREATE TABLE IF NOT EXISTS content_records (
	collection TEXT NOT NULL,
	position   INTEGER NOT NULL,
	doc        TEXT NOT NULL,
	PRIMARY KEY (collection, position)
);`

// SQLiteSource loads the content set from a seed database produced by
// Pack. It is a read-only alternative to shipping a content directory.
type SQLiteSource struct {
	path string
}

// NewSQLiteSource returns a Source reading from the seed database at path.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Load reads every collection out of the seed database and validates the
// resulting store.
func (s *SQLiteSource) Load() (*Store, error) {
	db, err := sql.Open("sqlite", s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening seed database: %w", err)
	}
	defer db.Close()

	store := &Store{}
	for _, name := range append(append([]string{}, Collections...), CollectionCompany) {
		docs, err := readDocs(db, name)
		if err != nil {
			return nil, err
		}
		if name == CollectionCompany {
			if len(docs) != 1 {
				return nil, fmt.Errorf("seed database: expected 1 company record, found %d", len(docs))
			}
			if err := decodeCollection(store, name, docs[0], json.Unmarshal); err != nil {
				return nil, err
			}
			continue
		}
		if err := decodeRows(store, name, docs); err != nil {
			return nil, err
		}
	}
	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("validating seed database %s: %w", s.path, err)
	}
	return store, nil
}

func readDocs(db *sql.DB, collection string) ([][]byte, error) {
	query, args, err := sq.Select("doc").
		From("content_records").
		Where(sq.Eq{"collection": collection}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query for %s: %w", collection, err)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", collection, err)
	}
	return docs, nil
}

// decodeRows reassembles a collection from per-record documents by
// concatenating them into one JSON array and reusing the shared decode
// path, so row loads and file loads cannot drift apart.
func decodeRows(store *Store, name string, docs [][]byte) error {
	arr := make([]byte, 0, 2)
	arr = append(arr, '[')
	for i, doc := range docs {
		if i > 0 {
			arr = append(arr, ',')
		}
		arr = append(arr, doc...)
	}
	arr = append(arr, ']')
	return decodeCollection(store, name, arr, json.Unmarshal)
}

// Pack compiles a loaded store into a seed database at path, replacing any
// existing content rows. It is the write half of SQLiteSource and backs
// the `sitekit content pack` command.
func Pack(store *Store, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening seed database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(seedSchema); err != nil {
		return fmt.Errorf("creating seed schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM content_records"); err != nil {
		return fmt.Errorf("clearing seed database: %w", err)
	}

	insert := func(collection string, position int, record interface{}) error {
		doc, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling %s[%d]: %w", collection, position, err)
		}
		query, args, err := sq.Insert("content_records").
			Columns("collection", "position", "doc").
			Values(collection, position, string(doc)).
			ToSql()
		if err != nil {
			return fmt.Errorf("building insert for %s: %w", collection, err)
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("inserting %s[%d]: %w", collection, position, err)
		}
		return nil
	}

	for i, r := range store.Services {
		if err := insert(CollectionServices, i, r); err != nil {
			return err
		}
	}
	for i, r := range store.CaseStudies {
		if err := insert(CollectionCaseStudies, i, r); err != nil {
			return err
		}
	}
	for i, r := range store.BlogPosts {
		if err := insert(CollectionBlogPosts, i, r); err != nil {
			return err
		}
	}
	for i, r := range store.Testimonials {
		if err := insert(CollectionTestimonials, i, r); err != nil {
			return err
		}
	}
	for i, r := range store.Team {
		if err := insert(CollectionTeam, i, r); err != nil {
			return err
		}
	}
	if err := insert(CollectionCompany, 0, store.Company); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed database: %w", err)
	}
	return nil
}
