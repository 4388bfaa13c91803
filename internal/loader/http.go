package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxDocumentSize bounds the catalog body read from the network.
const maxDocumentSize = 32 << 20

// HTTPSource fetches the catalog with a plain GET.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("http source: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// the catalog is edited in place; skip intermediary caches
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http source: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("http source: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http source: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "yaml") {
		return yamlToJSON(body)
	}
	return body, nil
}
