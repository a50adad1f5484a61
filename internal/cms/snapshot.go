package cms

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
)

const (
	draftPrefix    = "drafts."
	maxDerefDepth  = 3
	postDocumentTy = "post"
)

// Snapshot is an offline content store backed by SQLite. It answers the
// query kinds built by package query from documents loaded with Import,
// resolving references the way the query fragments project them.
type Snapshot struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenSnapshot opens (creating if needed) the snapshot database at path.
// Use ":memory:" for an in-memory database.
func OpenSnapshot(path string) (*Snapshot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	s := &Snapshot{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Snapshot) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		doc_id TEXT NOT NULL,
		draft INTEGER NOT NULL DEFAULT 0,
		type TEXT NOT NULL,
		slug TEXT,
		rev TEXT NOT NULL,
		published_at TEXT,
		updated_at TEXT,
		body BLOB NOT NULL,
		PRIMARY KEY (doc_id, draft)
	);
	CREATE INDEX IF NOT EXISTS idx_documents_type ON documents(type);
	CREATE INDEX IF NOT EXISTS idx_documents_slug ON documents(type, slug);
	`
	_, err := s.db.Exec(schema)
	return err
}

// visible selects the rows a reader sees: published documents, or in draft
// mode the draft of a document in place of its published version.
// It takes the draft flag as its two leading arguments.
const visible = `((d.draft = 0 AND NOT (? = 1 AND EXISTS (
		SELECT 1 FROM documents x WHERE x.doc_id = d.doc_id AND x.draft = 1)))
	OR (d.draft = 1 AND ? = 1))`

// Execute answers q from the snapshot.
func (s *Snapshot) Execute(ctx context.Context, q query.Query, draft bool) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		result any
		err    error
	)
	switch q.Kind {
	case query.KindPage:
		docType, _ := q.Params["type"].(string)
		result, err = s.one(ctx, draft, `d.type = ? ORDER BY d.updated_at DESC`, docType)
	case query.KindPost:
		slug, _ := q.Params["slug"].(string)
		result, err = s.one(ctx, draft, `d.type = ? AND d.slug = ?`, postDocumentTy, slug)
	case query.KindAllPosts:
		result, err = s.many(ctx, draft,
			`d.type = ? AND d.slug IS NOT NULL AND d.slug != '' ORDER BY d.published_at DESC, d.doc_id`, postDocumentTy)
	case query.KindAllPages:
		result, err = s.pageRefs(ctx, draft, stringList(q.Params["types"]))
	default:
		return nil, ferrors.NewError(ferrors.CategoryValidation,
			fmt.Sprintf("snapshot cannot answer %q queries", q.Kind)).Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryStore, "snapshot query failed").
			WithContext("query_kind", string(q.Kind)).
			Build()
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "encode snapshot result").Build()
	}
	return data, nil
}

func (s *Snapshot) one(ctx context.Context, draft bool, where string, args ...any) (any, error) {
	docs, err := s.selectBodies(ctx, draft, where+" LIMIT 1", args...)
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return s.project(ctx, draft, docs[0], 0)
}

func (s *Snapshot) many(ctx context.Context, draft bool, where string, args ...any) (any, error) {
	docs, err := s.selectBodies(ctx, draft, where, args...)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(docs))
	for _, doc := range docs {
		projected, err := s.project(ctx, draft, doc, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, projected)
	}
	return out, nil
}

func (s *Snapshot) selectBodies(ctx context.Context, draft bool, where string, args ...any) ([]map[string]any, error) {
	stmt := `SELECT d.body FROM documents d WHERE ` + visible + ` AND ` + where
	rows, err := s.db.QueryContext(ctx, stmt, append(visibleArgs(draft), args...)...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var doc map[string]any
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return docs, nil
}

type pageRef struct {
	ID        string `json:"_id"`
	Type      string `json:"_type"`
	UpdatedAt string `json:"_updatedAt,omitempty"`
	Slug      string `json:"slug"`
}

func (s *Snapshot) pageRefs(ctx context.Context, draft bool, types []string) ([]pageRef, error) {
	refs := []pageRef{}
	if len(types) == 0 {
		return refs, nil
	}
	placeholders := make([]string, len(types))
	args := visibleArgs(draft)
	for i, t := range types {
		placeholders[i] = "?"
		args = append(args, t)
	}
	stmt := `SELECT d.doc_id, d.type, COALESCE(d.updated_at, ''), d.slug FROM documents d WHERE ` + visible +
		` AND d.type IN (` + strings.Join(placeholders, ", ") + `) AND d.slug IS NOT NULL AND d.slug != ''` +
		` ORDER BY d.type, d.slug`

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query page refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r pageRef
		if err := rows.Scan(&r.ID, &r.Type, &r.UpdatedAt, &r.Slug); err != nil {
			return nil, fmt.Errorf("scan page ref: %w", err)
		}
		refs = append(refs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return refs, nil
}

// lookup returns the visible version of the document with the given id.
func (s *Snapshot) lookup(ctx context.Context, draft bool, id string) (map[string]any, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE doc_id = ? AND draft <= ? ORDER BY draft DESC LIMIT 1`,
		strings.TrimPrefix(id, draftPrefix), boolInt(draft),
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", id, err)
	}
	return doc, nil
}

// project rewrites an exported document into the shape the query
// fragments select: slugs are flattened to strings, references are
// replaced by the referenced documents, and unresolved references in
// arrays are dropped.
func (s *Snapshot) project(ctx context.Context, draft bool, v any, depth int) (any, error) {
	switch node := v.(type) {
	case map[string]any:
		if ref, ok := referenceID(node); ok {
			if depth >= maxDerefDepth {
				return nil, nil
			}
			target, err := s.lookup(ctx, draft, ref)
			if err != nil || target == nil {
				return nil, err
			}
			return s.project(ctx, draft, target, depth+1)
		}
		out := make(map[string]any, len(node))
		for k, child := range node {
			if k == "slug" {
				if m, ok := child.(map[string]any); ok {
					out[k] = m["current"]
					continue
				}
			}
			projected, err := s.project(ctx, draft, child, depth)
			if err != nil {
				return nil, err
			}
			out[k] = projected
		}
		if id, ok := out["_id"].(string); ok {
			out["_id"] = strings.TrimPrefix(id, draftPrefix)
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(node))
		for _, child := range node {
			projected, err := s.project(ctx, draft, child, depth)
			if err != nil {
				return nil, err
			}
			if projected == nil && child != nil {
				continue
			}
			out = append(out, projected)
		}
		return out, nil
	default:
		return v, nil
	}
}

// referenceID reports whether node is a bare reference object.
func referenceID(node map[string]any) (string, bool) {
	ref, ok := node["_ref"].(string)
	if !ok || ref == "" {
		return "", false
	}
	for k := range node {
		switch k {
		case "_ref", "_type", "_key", "_weak", "_strengthenOnPublish":
		default:
			return "", false
		}
	}
	return ref, true
}

// Counts returns the number of stored published and draft documents.
func (s *Snapshot) Counts(ctx context.Context) (published, drafts int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN draft = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN draft = 1 THEN 1 ELSE 0 END), 0) FROM documents`,
	).Scan(&published, &drafts)
	if err != nil {
		return 0, 0, fmt.Errorf("count documents: %w", err)
	}
	return published, drafts, nil
}

// Close closes the database connection.
func (s *Snapshot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func visibleArgs(draft bool) []any {
	return []any{boolInt(draft), boolInt(draft)}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
