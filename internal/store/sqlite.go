package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/veritaslabs/veritas/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS sources (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL DEFAULT 'text',
    title       TEXT NOT NULL DEFAULT '',
    origin_url  TEXT NOT NULL DEFAULT '',
    ingested_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS segments (
    source_id TEXT NOT NULL REFERENCES sources(id),
    seq       INTEGER NOT NULL,
    text      TEXT NOT NULL,
    start_s   REAL NOT NULL,
    end_s     REAL NOT NULL,
    PRIMARY KEY (source_id, seq)
);

CREATE TABLE IF NOT EXISTS claims (
    id                  TEXT PRIMARY KEY,
    source_id           TEXT NOT NULL REFERENCES sources(id),
    text                TEXT NOT NULL,
    start_s             REAL NOT NULL DEFAULT 0,
    end_s               REAL NOT NULL DEFAULT 0,
    content_hash        TEXT NOT NULL,
    global_hash         TEXT NOT NULL,
    confidence_language TEXT NOT NULL DEFAULT 'unknown',
    category            TEXT NOT NULL DEFAULT 'general',
    signal_log          TEXT NOT NULL DEFAULT '',
    status              TEXT NOT NULL DEFAULT 'unknown',
    status_human        TEXT,
    created_at          TEXT NOT NULL,
    UNIQUE (source_id, content_hash)
);

CREATE INDEX IF NOT EXISTS idx_claims_source ON claims(source_id);
CREATE INDEX IF NOT EXISTS idx_claims_ghash  ON claims(global_hash);

CREATE TABLE IF NOT EXISTS evidence (
    claim_id      TEXT NOT NULL REFERENCES claims(id),
    url           TEXT NOT NULL,
    source_api    TEXT NOT NULL DEFAULT '',
    evidence_type TEXT NOT NULL DEFAULT 'secondary',
    title         TEXT NOT NULL DEFAULT '',
    snippet       TEXT NOT NULL DEFAULT '',
    identifier    TEXT NOT NULL DEFAULT '',
    published_at  TEXT,
    entities      TEXT NOT NULL DEFAULT '[]',
    numbers       TEXT NOT NULL DEFAULT '[]',
    keyphrases    TEXT NOT NULL DEFAULT '[]',
    score         INTEGER NOT NULL DEFAULT 0,
    breakdown     TEXT NOT NULL DEFAULT '{}',
    matched_keyphrase TEXT NOT NULL DEFAULT '',
    matched_number    TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (claim_id, url)
);

CREATE INDEX IF NOT EXISTS idx_evidence_claim ON evidence(claim_id);
`

// SQLite is the reference Store implementation.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", model.ErrStore, path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", model.ErrStore, err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// SaveSource upserts a source row.
func (s *SQLite) SaveSource(src model.Source) error {
	_, err := s.db.Exec(
		`INSERT INTO sources (id, kind, title, origin_url, ingested_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET kind=excluded.kind, title=excluded.title,
		   origin_url=excluded.origin_url, ingested_at=excluded.ingested_at`,
		src.ID, string(src.Kind), src.Title, src.OriginURL, src.IngestedAt.UTC().Format(time.RFC3339Nano),
	)
	return wrapStoreErr(err)
}

// GetSource loads one source by id.
func (s *SQLite) GetSource(id string) (model.Source, error) {
	row := s.db.QueryRow(`SELECT id, kind, title, origin_url, ingested_at FROM sources WHERE id = ?`, id)
	return scanSource(row)
}

// ListSources returns all sources ordered by ingestion time.
func (s *SQLite) ListSources() ([]model.Source, error) {
	rows, err := s.db.Query(`SELECT id, kind, title, origin_url, ingested_at FROM sources ORDER BY ingested_at, id`)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer func() { _ = rows.Close() }()
	var out []model.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, wrapStoreErr(rows.Err())
}

// SaveSegments replaces the segment stream for a source.
func (s *SQLite) SaveSegments(sourceID string, segments []model.TimedSegment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return wrapStoreErr(err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(`DELETE FROM segments WHERE source_id = ?`, sourceID); err != nil {
		return wrapStoreErr(err)
	}
	for i, seg := range segments {
		if _, err := tx.Exec(
			`INSERT INTO segments (source_id, seq, text, start_s, end_s) VALUES (?, ?, ?, ?, ?)`,
			sourceID, i, seg.Text, seg.StartS, seg.EndS,
		); err != nil {
			return wrapStoreErr(err)
		}
	}
	return wrapStoreErr(tx.Commit())
}

// ListSegments returns a source's segments in order.
func (s *SQLite) ListSegments(sourceID string) ([]model.TimedSegment, error) {
	rows, err := s.db.Query(
		`SELECT text, start_s, end_s FROM segments WHERE source_id = ? ORDER BY seq`, sourceID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer func() { _ = rows.Close() }()
	var out []model.TimedSegment
	for rows.Next() {
		var seg model.TimedSegment
		if err := rows.Scan(&seg.Text, &seg.StartS, &seg.EndS); err != nil {
			return nil, wrapStoreErr(err)
		}
		out = append(out, seg)
	}
	return out, wrapStoreErr(rows.Err())
}

// ReplaceClaims inserts new claims, skipping (source, content_hash)
// pairs that already exist. Re-running extraction is a no-op.
func (s *SQLite) ReplaceClaims(sourceID string, claims []model.Claim) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, c := range claims {
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO claims
			 (id, source_id, text, start_s, end_s, content_hash, global_hash,
			  confidence_language, category, signal_log, status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.SourceID, c.Text, c.StartS, c.EndS, c.ContentHash, c.GlobalHash,
			string(c.ConfidenceLanguage), string(c.Category),
			strings.Join(c.SignalLog, "|"), string(c.Status),
			c.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return 0, wrapStoreErr(err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, wrapStoreErr(err)
	}
	return inserted, nil
}

const claimColumns = `id, source_id, text, start_s, end_s, content_hash, global_hash,
	confidence_language, category, signal_log, status, status_human, created_at`

// ClaimsForSource returns a source's claims in span order.
func (s *SQLite) ClaimsForSource(sourceID string) ([]model.Claim, error) {
	rows, err := s.db.Query(
		`SELECT `+claimColumns+` FROM claims WHERE source_id = ? ORDER BY start_s, id`, sourceID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return scanClaims(rows)
}

// AllClaims returns every claim, ordered for deterministic aggregation.
func (s *SQLite) AllClaims() ([]model.Claim, error) {
	rows, err := s.db.Query(`SELECT ` + claimColumns + ` FROM claims ORDER BY created_at, source_id, start_s, id`)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return scanClaims(rows)
}

// CountGlobalHash counts claims with the hash outside the given source.
func (s *SQLite) CountGlobalHash(globalHash, excludeSourceID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM claims WHERE global_hash = ? AND source_id != ?`,
		globalHash, excludeSourceID,
	).Scan(&n)
	return n, wrapStoreErr(err)
}

// SaveClaimResult writes evidence rows and the claim status in one
// transaction, so a crash leaves the claim fully processed or untouched.
func (s *SQLite) SaveClaimResult(claim *model.Claim, evidence []model.ScoredEvidence, status model.Status) error {
	tx, err := s.db.Begin()
	if err != nil {
		return wrapStoreErr(err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, ev := range evidence {
		entities, _ := json.Marshal(ev.Candidate.Entities)
		numbers, _ := json.Marshal(ev.Candidate.Numbers)
		keyphrases, _ := json.Marshal(ev.Candidate.Keyphrases)
		breakdown, _ := json.Marshal(ev.Breakdown)
		var published any
		if ev.Candidate.PublishedAt != nil {
			published = ev.Candidate.PublishedAt.UTC().Format(time.RFC3339Nano)
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO evidence
			 (claim_id, url, source_api, evidence_type, title, snippet, identifier,
			  published_at, entities, numbers, keyphrases, score, breakdown,
			  matched_keyphrase, matched_number)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			claim.ID, ev.Candidate.URL, ev.Candidate.SourceAPI,
			string(ev.Candidate.EvidenceType), ev.Candidate.Title,
			ev.Candidate.Snippet, ev.Candidate.Identifier, published,
			string(entities), string(numbers), string(keyphrases),
			ev.Score, string(breakdown), ev.MatchedKeyphrase, ev.MatchedNumber,
		); err != nil {
			return wrapStoreErr(err)
		}
	}
	if _, err := tx.Exec(`UPDATE claims SET status = ? WHERE id = ?`, string(status), claim.ID); err != nil {
		return wrapStoreErr(err)
	}
	return wrapStoreErr(tx.Commit())
}

// EvidenceForClaim returns stored evidence ordered by descending score.
func (s *SQLite) EvidenceForClaim(claimID string) ([]model.ScoredEvidence, error) {
	rows, err := s.db.Query(
		`SELECT claim_id, url, source_api, evidence_type, title, snippet, identifier,
		        published_at, entities, numbers, keyphrases, score, breakdown,
		        matched_keyphrase, matched_number
		 FROM evidence WHERE claim_id = ? ORDER BY score DESC, url`, claimID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ScoredEvidence
	for rows.Next() {
		var ev model.ScoredEvidence
		var published sql.NullString
		var entities, numbers, keyphrases, breakdown string
		var evType string
		if err := rows.Scan(
			&ev.ClaimID, &ev.Candidate.URL, &ev.Candidate.SourceAPI, &evType,
			&ev.Candidate.Title, &ev.Candidate.Snippet, &ev.Candidate.Identifier,
			&published, &entities, &numbers, &keyphrases, &ev.Score, &breakdown,
			&ev.MatchedKeyphrase, &ev.MatchedNumber,
		); err != nil {
			return nil, wrapStoreErr(err)
		}
		ev.Candidate.EvidenceType = model.EvidenceType(evType)
		if published.Valid {
			if t, err := time.Parse(time.RFC3339Nano, published.String); err == nil {
				ev.Candidate.PublishedAt = &t
			}
		}
		_ = json.Unmarshal([]byte(entities), &ev.Candidate.Entities)
		_ = json.Unmarshal([]byte(numbers), &ev.Candidate.Numbers)
		_ = json.Unmarshal([]byte(keyphrases), &ev.Candidate.Keyphrases)
		_ = json.Unmarshal([]byte(breakdown), &ev.Breakdown)
		out = append(out, ev)
	}
	return out, wrapStoreErr(rows.Err())
}

// SetHumanStatus records the human override for a claim.
func (s *SQLite) SetHumanStatus(claimID string, status model.Status) error {
	res, err := s.db.Exec(`UPDATE claims SET status_human = ? WHERE id = ?`, string(status), claimID)
	if err != nil {
		return wrapStoreErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: claim %s not found", model.ErrStore, claimID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSource(row rowScanner) (model.Source, error) {
	var src model.Source
	var kind, ingested string
	if err := row.Scan(&src.ID, &kind, &src.Title, &src.OriginURL, &ingested); err != nil {
		return model.Source{}, wrapStoreErr(err)
	}
	src.Kind = model.SourceKind(kind)
	if t, err := time.Parse(time.RFC3339Nano, ingested); err == nil {
		src.IngestedAt = t
	}
	return src, nil
}

func scanClaims(rows *sql.Rows) ([]model.Claim, error) {
	defer func() { _ = rows.Close() }()
	var out []model.Claim
	for rows.Next() {
		var c model.Claim
		var conf, cat, signals, status, created string
		var human sql.NullString
		if err := rows.Scan(
			&c.ID, &c.SourceID, &c.Text, &c.StartS, &c.EndS,
			&c.ContentHash, &c.GlobalHash, &conf, &cat, &signals, &status,
			&human, &created,
		); err != nil {
			return nil, wrapStoreErr(err)
		}
		c.ConfidenceLanguage = model.Confidence(conf)
		c.Category = model.Category(cat)
		if signals != "" {
			c.SignalLog = strings.Split(signals, "|")
		}
		c.Status = model.Status(status)
		if human.Valid {
			hs := model.Status(human.String)
			c.StatusHuman = &hs
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			c.CreatedAt = t
		}
		out = append(out, c)
	}
	return out, wrapStoreErr(rows.Err())
}

func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", model.ErrStore, err)
}
