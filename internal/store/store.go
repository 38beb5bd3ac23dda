// Package store persists name records and their phonetic keys in Postgres.
//
// Each stored name carries its single Holmes key (for exact single-key
// lookup) and the full set of ARCoder keys (for candidate-set matching).
// Candidate retrieval is key equality only; the store does no similarity
// scoring.
package store

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lib/pq"

	"github.com/arname-match/internal/config"
	"github.com/arname-match/internal/debug"
	"github.com/arname-match/internal/phonetics"
)

// Record is one stored name.
type Record struct {
	ID           int
	RawName      string
	CanonicalKey string
	Source       string
}

// Candidate is a stored name that shares a phonetic key with a query name.
type Candidate struct {
	Record
	MatchedKey string
}

// Store wraps the database with both encoders.
type Store struct {
	db      *sql.DB
	arcoder *phonetics.ARCoder
	holmes  *phonetics.Holmes
	verbose bool
}

// New creates a store on an open database connection.
func New(db *sql.DB) *Store {
	return &Store{
		db:      db,
		arcoder: phonetics.NewARCoder(nil),
		holmes:  phonetics.NewHolmes(nil),
		verbose: config.GetEnvBool("DEBUG_STORE", false),
	}
}

// DB exposes the underlying connection for read-only consumers.
func (s *Store) DB() *sql.DB {
	return s.db
}

const schema = `
CREATE TABLE IF NOT EXISTS name_record (
	name_id       SERIAL PRIMARY KEY,
	raw_name      TEXT NOT NULL,
	canonical_key TEXT NOT NULL,
	source        TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS name_key (
	name_id INTEGER NOT NULL REFERENCES name_record(name_id) ON DELETE CASCADE,
	key     TEXT NOT NULL,
	PRIMARY KEY (name_id, key)
);

CREATE INDEX IF NOT EXISTS idx_name_key_key ON name_key (key);
CREATE INDEX IF NOT EXISTS idx_name_record_canonical ON name_record (canonical_key);
`

// EnsureSchema creates the name tables if they do not exist.
func (s *Store) EnsureSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// AddName encodes a raw name with both variants and stores the record with
// its key set in one transaction. Returns the new record id.
func (s *Store) AddName(rawName, source string) (int, error) {
	keys, err := s.arcoder.Encode(rawName)
	if err != nil {
		return 0, fmt.Errorf("encoding %q: %w", rawName, err)
	}
	canonical, err := s.holmes.Encode(rawName)
	if err != nil {
		return 0, fmt.Errorf("encoding %q: %w", rawName, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRow(`
		INSERT INTO name_record (raw_name, canonical_key, source)
		VALUES ($1, $2, $3)
		RETURNING name_id
	`, rawName, canonical[0], source).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert name record: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO name_key (name_id, key) VALUES ($1, $2)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare key insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range keys {
		if _, err := stmt.Exec(id, key); err != nil {
			return 0, fmt.Errorf("failed to insert key %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	debug.Output(s.verbose, "Stored %q as record %d with %d keys", rawName, id, len(keys))
	return id, nil
}

// FindCandidates returns every stored name sharing a phonetic key with the
// query name: any overlap in ARCoder key sets, or an exact Holmes key
// match. Results are ordered by record id for stable output.
func (s *Store) FindCandidates(name string) ([]Candidate, error) {
	keys, err := s.arcoder.Encode(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}
	canonical, err := s.holmes.Encode(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}

	rows, err := s.db.Query(`
		SELECT r.name_id, r.raw_name, r.canonical_key, r.source, k.key
		FROM name_record r
		JOIN name_key k ON k.name_id = r.name_id
		WHERE k.key = ANY($1)
		UNION
		SELECT r.name_id, r.raw_name, r.canonical_key, r.source, r.canonical_key
		FROM name_record r
		WHERE r.canonical_key = $2
		ORDER BY name_id, key
	`, pq.Array(keys), canonical[0])
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.RawName, &c.CanonicalKey, &c.Source, &c.MatchedKey); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Stats summarizes the stored corpus.
type Stats struct {
	Records int
	Keys    int
}

// GetStats returns record and key counts.
func (s *Store) GetStats() (Stats, error) {
	var st Stats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM name_record`).Scan(&st.Records); err != nil {
		return st, fmt.Errorf("failed to count records: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM name_key`).Scan(&st.Keys); err != nil {
		return st, fmt.Errorf("failed to count keys: %w", err)
	}
	return st, nil
}

// ImportCSV bulk-loads names from a CSV file whose first column is the raw
// name. A header row is skipped. Rows that fail to encode are logged and
// skipped; the import carries on. Returns the number of imported rows.
func (s *Store) ImportCSV(filename, source string) (int, error) {
	done := debug.Timing(s.verbose, fmt.Sprintf("import %s", filename))
	defer done()

	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	imported := 0
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Error reading CSV record: %v", err)
			skipped++
			continue
		}
		if len(record) == 0 || record[0] == "" {
			skipped++
			continue
		}

		if _, err := s.AddName(record[0], source); err != nil {
			log.Printf("Skipping %q: %v", record[0], err)
			skipped++
			continue
		}
		imported++
	}

	if skipped > 0 {
		log.Printf("Imported %d names from %s (%d skipped)", imported, filename, skipped)
	}
	return imported, nil
}
