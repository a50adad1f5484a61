// Package cms provides the content store adapters the page assembler reads
// from: an HTTP client for the hosted query API and an offline SQLite
// snapshot loaded from an NDJSON dataset export.
package cms
