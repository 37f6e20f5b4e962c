package gns3

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 20 * time.Second

// TransportError wraps any failure of a controller call, whether the
// request never completed or came back non-2xx. Calls are never
// retried; the caller aborts the run.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gns3 controller returned status %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("gns3 controller request failed for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(rawURL string, validateCerts bool) (*Client, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("gns3 controller URL is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gns3 controller URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid gns3 controller URL %q: scheme must be http or https", rawURL)
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !validateCerts},
	}
	return &Client{
		baseURL: strings.TrimRight(rawURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
	}, nil
}

// ListProjects fetches every project known to the controller.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.getJSON(ctx, "/v2/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListNodes fetches the node list of one project.
func (c *Client) ListNodes(ctx context.Context, projectID string) ([]Node, error) {
	var nodes []Node
	path := fmt.Sprintf("/v2/projects/%s/nodes", url.PathEscape(projectID))
	if err := c.getJSON(ctx, path, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &TransportError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gns3-inventory/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return &TransportError{URL: target, Err: err}
	}
	return nil
}
