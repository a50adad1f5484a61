package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
)

const (
	maxQueryResponseBytes = 16 * 1024 * 1024
	defaultClientTimeout  = 10 * time.Second

	perspectivePublished = "published"
	perspectiveDrafts    = "drafts"
)

// NewHTTPClient creates an HTTP client with safe defaults. Redirects are
// only followed within the original host.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) == 0 {
				return nil
			}
			if req.URL.Host != via[0].URL.Host {
				return errors.New("redirect to different host blocked")
			}
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
}

// Client executes queries against the hosted query API.
type Client struct {
	cdnBase     *url.URL
	apiBase     *url.URL
	apiVersion  string
	dataset     string
	token       string
	allowDrafts bool
	http        *http.Client
}

// NewClient creates a client from the CMS configuration block. A nil
// httpClient uses NewHTTPClient with the configured timeout.
func NewClient(cfg config.CMSConfig, httpClient *http.Client) (*Client, error) {
	if cfg.Dataset == "" {
		return nil, ferrors.ConfigError("cms.dataset is required").Build()
	}
	if cfg.ProjectID == "" && cfg.APIHost == "" {
		return nil, ferrors.ConfigError("cms.project_id is required").Build()
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg.Timeout)
	}

	apiHost := cfg.APIHost
	cdnHost := cfg.APIHost
	if apiHost == "" {
		apiHost = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
		cdnHost = fmt.Sprintf("https://%s.apicdn.sanity.io", cfg.ProjectID)
	}
	if !cfg.UseCDN {
		cdnHost = apiHost
	}
	apiBase, err := parseBaseURL(apiHost)
	if err != nil {
		return nil, err
	}
	cdnBase, err := parseBaseURL(cdnHost)
	if err != nil {
		return nil, err
	}

	return &Client{
		cdnBase:     cdnBase,
		apiBase:     apiBase,
		apiVersion:  strings.TrimPrefix(cfg.APIVersion, "v"),
		dataset:     cfg.Dataset,
		token:       cfg.Token,
		allowDrafts: cfg.AllowDrafts,
		http:        httpClient,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid cms api host").Build()
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported cms api host scheme: %s", parsed.Scheme)).Build()
	}
	return parsed, nil
}

// queryURL builds GET {base}/v{version}/data/query/{dataset}?query=...&$param=<json>.
func (c *Client) queryURL(q query.Query, draft bool) (string, error) {
	base := c.cdnBase
	perspective := perspectivePublished
	if draft {
		// Drafts are never served from the CDN.
		base = c.apiBase
		perspective = perspectiveDrafts
	}

	u := *base
	u.Path = strings.TrimSuffix(u.Path, "/") + fmt.Sprintf("/v%s/data/query/%s", c.apiVersion, url.PathEscape(c.dataset))

	values := url.Values{}
	values.Set("query", q.Text)
	values.Set("perspective", perspective)
	for name, value := range q.Params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encode query param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
}

// Execute runs q and returns the raw result. A JSON null result means the
// query matched nothing.
func (c *Client) Execute(ctx context.Context, q query.Query, draft bool) (json.RawMessage, error) {
	if draft {
		if !c.allowDrafts {
			return nil, ferrors.ValidationError("draft content is not enabled").Build()
		}
		if c.token == "" {
			return nil, ferrors.ConfigError("draft content requires cms.token").Build()
		}
	}

	queryURL, err := c.queryURL(q, draft)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "build query url").Build()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, http.NoBody)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "build request").Build()
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "content query failed").
			Retryable().
			WithContext("query_kind", string(q.Kind)).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxQueryResponseBytes+1))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "read query response").Retryable().Build()
	}
	if len(data) > maxQueryResponseBytes {
		return nil, ferrors.StoreError("query response too large").WithContext("query_kind", string(q.Kind)).Build()
	}

	var body queryResponse
	decodeErr := json.Unmarshal(data, &body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("content query returned HTTP %d", resp.StatusCode)
		if decodeErr == nil && body.Error != nil && body.Error.Description != "" {
			msg += ": " + body.Error.Description
		}
		b := ferrors.StoreError(msg).
			WithContext("status", resp.StatusCode).
			WithContext("query_kind", string(q.Kind))
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			b = b.WithRetry(ferrors.RetryNever)
		}
		return nil, b.Build()
	}
	if decodeErr != nil {
		return nil, ferrors.WrapError(decodeErr, ferrors.CategoryStore, "decode query response").Build()
	}
	if len(body.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return body.Result, nil
}
