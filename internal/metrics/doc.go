// Package metrics provides observability hooks for page assembly.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never requires nil checks:
//
//	assembler := page.NewAssembler(store, posts, page.WithRecorder(metrics.NoopRecorder{}))
//
// When metrics are enabled, PrometheusRecorder registers its collectors on the
// supplied registry and HTTPHandler exposes that registry for scraping.
package metrics
