package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	pageDuration     *prom.HistogramVec
	pageResults      *prom.CounterVec
	sectionsRendered *prom.CounterVec
	sectionsSkipped  *prom.CounterVec
	queryDuration    *prom.HistogramVec

	mu          sync.Mutex
	skippedTags map[string]struct{}
}

const (
	// MaxSkippedTagLabels bounds the distinct tag values of sections_skipped_total.
	MaxSkippedTagLabels = 32
	// OtherTagLabel collects tags that are malformed or over the bound.
	OtherTagLabel = "other"

	maxTagLabelLen = 64
)

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		skippedTags: make(map[string]struct{}),
		pageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pagebuilder",
			Name:      "page_assembly_duration_seconds",
			Help:      "Duration of page assembly by document type",
			Buckets:   prom.DefBuckets,
		}, []string{"document_type"}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagebuilder",
			Name:      "page_results_total",
			Help:      "Page assembly outcomes by document type",
		}, []string{"document_type", "result"}),
		sectionsRendered: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagebuilder",
			Name:      "sections_rendered_total",
			Help:      "Sections transformed into render items, by component",
		}, []string{"component"}),
		sectionsSkipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagebuilder",
			Name:      "sections_skipped_total",
			Help:      "Sections skipped because their tag is not registered",
		}, []string{"tag"}),
		queryDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pagebuilder",
			Name:      "store_query_duration_seconds",
			Help:      "Content store query duration by query kind",
			Buckets:   prom.DefBuckets,
		}, []string{"kind", "result"}),
	}
	reg.MustRegister(pr.pageDuration, pr.pageResults, pr.sectionsRendered, pr.sectionsSkipped, pr.queryDuration)
	return pr
}

func (p *PrometheusRecorder) ObservePageDuration(documentType string, d time.Duration) {
	if p == nil || p.pageDuration == nil {
		return
	}
	p.pageDuration.WithLabelValues(documentType).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(documentType string, result ResultLabel) {
	if p == nil || p.pageResults == nil {
		return
	}
	p.pageResults.WithLabelValues(documentType, string(result)).Inc()
}

func (p *PrometheusRecorder) IncSectionRendered(component string) {
	if p == nil || p.sectionsRendered == nil {
		return
	}
	p.sectionsRendered.WithLabelValues(component).Inc()
}

func (p *PrometheusRecorder) IncSectionSkipped(tag string) {
	if p == nil || p.sectionsSkipped == nil {
		return
	}
	p.sectionsSkipped.WithLabelValues(p.skippedTagLabel(tag)).Inc()
}

// skippedTagLabel keeps the first MaxSkippedTagLabels well-formed tags as
// label values; anything else is counted under OtherTagLabel.
func (p *PrometheusRecorder) skippedTagLabel(tag string) string {
	if !wellFormedTag(tag) {
		return OtherTagLabel
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.skippedTags[tag]; ok {
		return tag
	}
	if len(p.skippedTags) >= MaxSkippedTagLabels {
		return OtherTagLabel
	}
	if p.skippedTags == nil {
		p.skippedTags = make(map[string]struct{})
	}
	p.skippedTags[tag] = struct{}{}
	return tag
}

func wellFormedTag(tag string) bool {
	if tag == "" || len(tag) > maxTagLabelLen {
		return false
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func (p *PrometheusRecorder) ObserveQueryDuration(kind string, d time.Duration, success bool) {
	if p == nil || p.queryDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.queryDuration.WithLabelValues(kind, res).Observe(d.Seconds())
}
