// Package catalog maintains a SQLite-backed corpus catalog for batch
// ingest pipelines. Each ingest run gets a uuid, and every indexed
// document is recorded with its source path, content hashes, and
// annotation counts, so a corpus state can be audited after the fact.
package catalog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/calperum/textkit/core/ere"
	"github.com/calperum/textkit/core/errors"
	"github.com/calperum/textkit/core/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	documents   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS documents (
	doc_id      TEXT PRIMARY KEY,
	run_id      TEXT NOT NULL REFERENCES runs(id),
	source_type TEXT NOT NULL,
	path        TEXT NOT NULL,
	sha256      TEXT NOT NULL,
	blake3      TEXT NOT NULL,
	entities    INTEGER NOT NULL,
	fillers     INTEGER NOT NULL,
	relations   INTEGER NOT NULL,
	events      INTEGER NOT NULL,
	indexed_at  TEXT NOT NULL
);
`

// Catalog is an open catalog database.
type Catalog struct {
	db *sql.DB
}

// Run is one ingest run. FinishedAt stays zero until the run is
// finished.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Documents  int
}

// Finished reports whether the run was closed with FinishRun.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Document is one indexed document row.
type Document struct {
	DocID      string
	RunID      string
	SourceType string
	Path       string
	SHA256     string
	BLAKE3     string
	Entities   int
	Fillers    int
	Relations  int
	Events     int
	IndexedAt  time.Time
}

// Open opens a catalog database, creating it and migrating the schema
// if needed.
func Open(path string) (*Catalog, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrating catalog schema")
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// BeginRun creates a new uuid-identified ingest run and returns its id.
func (c *Catalog) BeginRun() (string, error) {
	id := uuid.New().String()
	_, err := c.db.Exec(
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", errors.Wrap(err, "recording ingest run")
	}
	return id, nil
}

// IndexDocument records one loaded document under the given run: its
// id, source type, path, sha256 and blake3 of the raw XML, and the
// annotation counts. Re-indexing a document id replaces the previous
// row.
func (c *Catalog) IndexDocument(runID string, doc *ere.Document, raw []byte, path string) error {
	sha := sha256.Sum256(raw)
	b3 := blake3.Sum256(raw)

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO documents
		 (doc_id, run_id, source_type, path, sha256, blake3,
		  entities, fillers, relations, events, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.DocID(), runID, doc.SourceType(), path,
		hex.EncodeToString(sha[:]), hex.EncodeToString(b3[:]),
		len(doc.Entities()), len(doc.Fillers()), len(doc.Relations()), len(doc.Events()),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.Wrapf(err, "indexing document %s", doc.DocID())
	}
	return nil
}

// FinishRun stamps the run finished and records its document count.
func (c *Catalog) FinishRun(runID string) error {
	res, err := c.db.Exec(
		`UPDATE runs
		 SET finished_at = ?,
		     documents = (SELECT COUNT(*) FROM documents WHERE run_id = runs.id)
		 WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), runID,
	)
	if err != nil {
		return errors.Wrapf(err, "finishing run %s", runID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "finishing run %s", runID)
	}
	if affected == 0 {
		return errors.NewNotFound("run", runID)
	}
	return nil
}

// Documents returns all indexed documents ordered by document id.
func (c *Catalog) Documents() ([]Document, error) {
	rows, err := c.db.Query(
		`SELECT doc_id, run_id, source_type, path, sha256, blake3,
		        entities, fillers, relations, events, indexed_at
		 FROM documents ORDER BY doc_id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	return docs, nil
}

// DocumentByID returns one indexed document.
func (c *Catalog) DocumentByID(docID string) (*Document, error) {
	row := c.db.QueryRow(
		`SELECT doc_id, run_id, source_type, path, sha256, blake3,
		        entities, fillers, relations, events, indexed_at
		 FROM documents WHERE doc_id = ?`, docID,
	)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("document", docID)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Runs returns all ingest runs ordered by start time.
func (c *Catalog) Runs() ([]Run, error) {
	rows, err := c.db.Query(
		`SELECT id, started_at, finished_at, documents
		 FROM runs ORDER BY started_at, id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&run.ID, &started, &finished, &run.Documents); err != nil {
			return nil, errors.Wrap(err, "scanning run")
		}
		if run.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, errors.Wrap(err, "parsing run start time")
		}
		if finished.Valid {
			if run.FinishedAt, err = time.Parse(time.RFC3339, finished.String); err != nil {
				return nil, errors.Wrap(err, "parsing run finish time")
			}
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying runs")
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var (
		doc     Document
		indexed string
	)
	err := row.Scan(
		&doc.DocID, &doc.RunID, &doc.SourceType, &doc.Path,
		&doc.SHA256, &doc.BLAKE3,
		&doc.Entities, &doc.Fillers, &doc.Relations, &doc.Events,
		&indexed,
	)
	if err != nil {
		return Document{}, err
	}
	if doc.IndexedAt, err = time.Parse(time.RFC3339, indexed); err != nil {
		return Document{}, errors.Wrap(err, "parsing document index time")
	}
	return doc, nil
}
