package cms

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

const maxImportLineBytes = 32 * 1024 * 1024

// storedTimeLayout is fixed-width UTC so the TEXT columns sort chronologically.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z"

// ImportStats summarizes an NDJSON import.
type ImportStats struct {
	Documents   int
	Drafts      int
	Skipped     int
	Fingerprint int // documents without _rev that received a computed revision
}

// Import loads an NDJSON dataset export, one document per line, replacing
// stored documents with the same id. Lines without _id or _type are
// skipped. The whole import is one transaction.
func (s *Snapshot) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats ImportStats
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (doc_id, draft, type, slug, rev, published_at, updated_at, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (doc_id, draft) DO UPDATE SET
			type = excluded.type,
			slug = excluded.slug,
			rev = excluded.rev,
			published_at = excluded.published_at,
			updated_at = excluded.updated_at,
			body = excluded.body`)
	if err != nil {
		return stats, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		rec, ok := parseRecord([]byte(raw))
		if !ok {
			stats.Skipped++
			continue
		}
		if rec.fingerprinted {
			stats.Fingerprint++
		}
		if _, err := stmt.ExecContext(ctx,
			rec.docID, boolInt(rec.draft), rec.docType, nullable(rec.slug), rec.rev,
			nullable(rec.publishedAt), nullable(rec.updatedAt), rec.body,
		); err != nil {
			return stats, fmt.Errorf("line %d: insert %s: %w", line, rec.docID, err)
		}
		stats.Documents++
		if rec.draft {
			stats.Drafts++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read export: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit import: %w", err)
	}
	return stats, nil
}

type record struct {
	docID         string
	draft         bool
	docType       string
	slug          string
	rev           string
	publishedAt   string
	updatedAt     string
	body          []byte
	fingerprinted bool
}

func parseRecord(raw []byte) (record, bool) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return record{}, false
	}
	id, _ := doc["_id"].(string)
	docType, _ := doc["_type"].(string)
	if id == "" || docType == "" {
		return record{}, false
	}

	rec := record{
		docID:   strings.TrimPrefix(id, draftPrefix),
		draft:   strings.HasPrefix(id, draftPrefix),
		docType: docType,
		body:    raw,
	}
	if slug, ok := doc["slug"].(map[string]any); ok {
		rec.slug, _ = slug["current"].(string)
	} else {
		rec.slug, _ = doc["slug"].(string)
	}
	publishedAt, _ := doc["publishedAt"].(string)
	updatedAt, _ := doc["_updatedAt"].(string)
	rec.publishedAt = normalizeTimestamp(publishedAt)
	rec.updatedAt = normalizeTimestamp(updatedAt)
	rec.rev, _ = doc["_rev"].(string)
	if rec.rev == "" {
		rec.rev = fingerprint(doc)
		rec.fingerprinted = true
	}
	return rec, true
}

// normalizeTimestamp rewrites an RFC 3339 value in storedTimeLayout.
// Values that do not parse are stored unchanged.
func normalizeTimestamp(raw string) string {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return t.UTC().Format(storedTimeLayout)
}

// fingerprint derives a stable revision from the document content: the
// identity fields as a YAML header and the canonical JSON as the body.
func fingerprint(doc map[string]any) string {
	header, err := yaml.Marshal(map[string]any{
		"id":   doc["_id"],
		"type": doc["_type"],
	})
	if err != nil {
		return ""
	}
	// encoding/json sorts map keys, so the body is canonical.
	body, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(header), "\n"), string(body))
}

// Revision returns the stored revision of a document, or "" when absent.
func (s *Snapshot) Revision(ctx context.Context, id string, draft bool) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rev string
	err := s.db.QueryRowContext(ctx,
		`SELECT rev FROM documents WHERE doc_id = ? AND draft = ?`,
		strings.TrimPrefix(id, draftPrefix), boolInt(draft),
	).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup revision: %w", err)
	}
	return rev, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
