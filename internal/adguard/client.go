// Package adguard wraps the HTTP API of an AdGuard Home style DNS-filtering
// appliance.
//
// Error policy follows the appliance's role as a best-effort data source:
// only the primary client listing propagates errors. Query-log fetches
// degrade to an empty result and rule updates report success as a boolean,
// because callers prefer a stale or partial view over a failed refresh.
package adguard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client talks to a single appliance instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	logger     *slog.Logger
}

// New creates a client for the appliance at host. A host without a scheme
// gets http:// prefixed; a trailing slash is trimmed. Basic auth is used
// when username or password is non-empty.
func New(host, username, password string, logger *slog.Logger) *Client {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    host,
		username:   username,
		password:   password,
		logger:     logger,
	}
}

// BaseURL returns the normalized appliance URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Rule renders the appliance filtering rule that blocks domain for the
// given client identifier. Idempotence checks compare this string
// byte-for-byte against the remote rule list.
func Rule(clientID, domain string) string {
	return fmt.Sprintf("||%s^$client='%s'", domain, clientID)
}

// Clients fetches the appliance's known clients from GET /control/clients.
//
// Three upstream response shapes are normalized: a bare list of objects, a
// dict carrying "clients" and "auto_clients" lists, and list entries that
// are bare identifier strings. Transport and auth failures propagate;
// malformed individual entries are coerced, never dropped.
func (c *Client) Clients(ctx context.Context) ([]ClientRecord, error) {
	body, err := c.get(ctx, "/control/clients", nil)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		// v0.107+ wraps the lists in an object.
		var wrapped struct {
			Clients     []json.RawMessage `json:"clients"`
			AutoClients []json.RawMessage `json:"auto_clients"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("list clients: decode response: %w", err)
		}
		entries = append(wrapped.Clients, wrapped.AutoClients...)
	}

	records := make([]ClientRecord, 0, len(entries))
	for _, raw := range entries {
		records = append(records, normalizeEntry(raw))
	}
	return records, nil
}

// Queries fetches recent query-log entries for one client from
// GET /control/querylog?search=<id>. Query history is best-effort: any
// failure yields an empty slice instead of an error.
func (c *Client) Queries(ctx context.Context, clientID string) []QueryEntry {
	params := url.Values{}
	if clientID != "" {
		params.Set("search", clientID)
	}

	body, err := c.get(ctx, "/control/querylog", params)
	if err != nil {
		c.logger.Debug("query log fetch failed", "client", clientID, "err", err)
		return nil
	}

	var resp struct {
		Data []QueryEntry `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Debug("query log decode failed", "client", clientID, "err", err)
		return nil
	}
	return resp.Data
}

// BlockDomain adds a client-scoped blocking rule through the appliance's
// custom filtering rules:
//
//  1. GET /control/filtering/status for the current user_rules
//  2. short-circuit to true when the exact rule already exists
//  3. POST /control/filtering/set_rules with the full appended list
//
// Returns false on any transport error or non-200 response at either step.
func (c *Client) BlockDomain(ctx context.Context, clientID, domain string) bool {
	rule := Rule(clientID, domain)

	body, err := c.get(ctx, "/control/filtering/status", nil)
	if err != nil {
		c.logger.Warn("filtering status fetch failed", "err", err)
		return false
	}

	var status struct {
		UserRules []string `json:"user_rules"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		c.logger.Warn("filtering status decode failed", "err", err)
		return false
	}

	for _, existing := range status.UserRules {
		if existing == rule {
			return true
		}
	}

	payload, err := json.Marshal(map[string][]string{
		"rules": append(status.UserRules, rule),
	})
	if err != nil {
		return false
	}

	if err := c.post(ctx, "/control/filtering/set_rules", payload); err != nil {
		c.logger.Warn("set rules failed", "rule", rule, "err", err)
		return false
	}
	return true
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.prepare(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet))
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) post(ctx context.Context, path string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.prepare(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) prepare(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}
