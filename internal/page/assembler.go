package page

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"git.home.luguber.info/inful/pagebuilder/internal/cms"
	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/metadata"
	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
	"git.home.luguber.info/inful/pagebuilder/internal/observability"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
	"git.home.luguber.info/inful/pagebuilder/internal/sections"
)

// ContentStore executes assembled queries. A JSON null result means the
// query matched nothing.
type ContentStore interface {
	Execute(ctx context.Context, q query.Query, draft bool) (json.RawMessage, error)
}

// Options control a single assembly.
type Options struct {
	Draft bool
}

// RenderItem is one entry of a page's render list.
type RenderItem struct {
	Key       string         `json:"key"`
	Component string         `json:"component"`
	Props     sections.Props `json:"props"`
}

// Page is an assembled page document.
type Page struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Title    string             `json:"title"`
	Slug     string             `json:"slug"`
	Items    []RenderItem       `json:"items"`
	Metadata *metadata.Metadata `json:"metadata,omitempty"`
	Tags     []string           `json:"-"`

	// Document is the resolved input, kept for metadata derivation.
	Document *content.Document `json:"-"`
}

// Assembler turns page documents into render lists. It is safe for
// concurrent use.
type Assembler struct {
	store    ContentStore
	registry *sections.Registry
	env      sections.Env
	meta     *metadata.Generator
	recorder metrics.Recorder
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithRegistry replaces the default section registry.
func WithRegistry(r *sections.Registry) AssemblerOption {
	return func(a *Assembler) {
		a.registry = r
	}
}

// WithEnv sets the capabilities passed to transformers. When env.Posts is
// nil, posts are read from the assembler's store.
func WithEnv(env sections.Env) AssemblerOption {
	return func(a *Assembler) {
		a.env = env
	}
}

// WithMetadata enables metadata derivation.
func WithMetadata(g *metadata.Generator) AssemblerOption {
	return func(a *Assembler) {
		a.meta = g
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) AssemblerOption {
	return func(a *Assembler) {
		if r != nil {
			a.recorder = r
		}
	}
}

// NewAssembler creates an assembler reading from store.
func NewAssembler(store ContentStore, options ...AssemblerOption) *Assembler {
	a := &Assembler{
		store:    store,
		registry: sections.DefaultRegistry(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// execute runs q on the store, timing it by query kind.
func (a *Assembler) execute(ctx context.Context, q query.Query, draft bool) (json.RawMessage, error) {
	start := time.Now()
	raw, err := a.store.Execute(ctx, q, draft)
	a.recorder.ObserveQueryDuration(string(q.Kind), time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("execute %s query: %w", q.Kind, err)
	}
	return raw, nil
}

// Execute implements cms.Executor so post lookups share the timing.
func (a *Assembler) Execute(ctx context.Context, q query.Query, draft bool) (json.RawMessage, error) {
	return a.execute(ctx, q, draft)
}

// envFor returns the transformer env for one request.
func (a *Assembler) envFor(opts Options) sections.Env {
	env := a.env
	if env.Posts == nil {
		env.Posts = cms.NewPostSource(a, opts.Draft)
	}
	return env
}

// AssemblePage fetches the document of type t and builds its render list.
func (a *Assembler) AssemblePage(ctx context.Context, t query.DocumentType, opts Options) (*Page, error) {
	ctx = observability.WithDocumentType(ctx, string(t))
	ctx = observability.WithDraft(ctx, opts.Draft)
	start := time.Now()

	page, err := a.assemblePage(ctx, t, opts)
	a.recorder.ObservePageDuration(string(t), time.Since(start))
	a.recorder.IncPageResult(string(t), resultLabel(err))
	if err != nil {
		observability.WarnContext(ctx, "page assembly failed", logfields.Error(err))
		return nil, err
	}
	observability.DebugContext(ctx, "page assembled",
		logfields.Count(len(page.Items)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return page, nil
}

func (a *Assembler) assemblePage(ctx context.Context, t query.DocumentType, opts Options) (*Page, error) {
	q, err := query.BuildPageQuery(t)
	if err != nil {
		return nil, err
	}
	raw, err := a.execute(ctx, q, opts.Draft)
	if err != nil {
		return nil, err
	}
	doc, err := content.DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	if doc == nil {
		return nil, &content.PageNotFoundError{Type: string(t)}
	}

	items, err := a.renderSections(ctx, doc, a.envFor(opts))
	if err != nil {
		return nil, err
	}

	page := &Page{
		ID:       doc.ID,
		Type:     firstNonEmpty(doc.Type, string(t)),
		Title:    doc.Title,
		Slug:     doc.Slug,
		Items:    items,
		Tags:     q.Tags,
		Document: doc,
	}
	if a.meta != nil {
		m := a.meta.ForPage(doc)
		page.Metadata = &m
	}
	return page, nil
}

// renderSections transforms doc's sections in order. Unknown tags are
// skipped; the first transformer error aborts.
func (a *Assembler) renderSections(ctx context.Context, doc *content.Document, env sections.Env) ([]RenderItem, error) {
	items := make([]RenderItem, 0, len(doc.Sections))
	keys := newKeyAllocator(doc.ID)

	for i, s := range doc.Sections {
		tag := s.Tag()
		entry, ok := a.registry.Lookup(tag)
		if !ok {
			label := string(tag)
			if label == "" {
				label = "unknown"
			}
			observability.WarnContext(ctx, "skipping unknown section",
				logfields.Section(label),
				logfields.SectionKey(s.Common().Key))
			a.recorder.IncSectionSkipped(label)
			continue
		}

		var (
			props sections.Props
			err   error
		)
		if sections.NeedsFetch(s) && entry.TransformWithFetch != nil {
			props, err = entry.TransformWithFetch(ctx, s, env)
		} else {
			props, err = entry.Transform(s, env)
		}
		if err != nil {
			return nil, fmt.Errorf("section %d (%s): %w", i, tag, err)
		}

		items = append(items, RenderItem{
			Key:       keys.next(s.Common().Key, i),
			Component: entry.Component,
			Props:     props,
		})
		a.recorder.IncSectionRendered(entry.Component)
	}
	return items, nil
}

// keyAllocator assigns unique render keys: the section key, else
// "<document id>-<index>", else "section-<index>". Repeats get "-<index>"
// appended until unique.
type keyAllocator struct {
	docID string
	seen  map[string]struct{}
}

func newKeyAllocator(docID string) *keyAllocator {
	return &keyAllocator{docID: docID, seen: make(map[string]struct{})}
}

func (k *keyAllocator) next(key string, index int) string {
	idx := strconv.Itoa(index)
	switch {
	case key != "":
	case k.docID != "":
		key = k.docID + "-" + idx
	default:
		key = "section-" + idx
	}
	for {
		if _, dup := k.seen[key]; !dup {
			break
		}
		key += "-" + idx
	}
	k.seen[key] = struct{}{}
	return key
}

func resultLabel(err error) metrics.ResultLabel {
	if err == nil {
		return metrics.ResultSuccess
	}
	switch {
	case isNotFound(err):
		return metrics.ResultNotFound
	case isInvalid(err):
		return metrics.ResultInvalid
	default:
		return metrics.ResultFailed
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
