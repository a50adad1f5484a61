// Package handlers contains HTTP handlers for the pagebuilder HTTP API.
//
// This package provides handlers for:
//   - Assembled pages and blog posts as JSON
//   - The page listing and sitemap
//   - Health endpoints (monitoring)
//
// Errors are classified with content.Classify and written through the
// foundation/errors HTTPErrorAdapter, so every failure has the same JSON shape.
package handlers
