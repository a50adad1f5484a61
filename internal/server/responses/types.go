// Package responses defines API response types used by pagebuilder HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/pagebuilder/internal/page"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	Source    string    `json:"source,omitempty"`
}

// PageListResponse represents the page listing API response.
type PageListResponse struct {
	Pages []page.SitemapEntry `json:"pages"`
	Count int                 `json:"count"`
}
