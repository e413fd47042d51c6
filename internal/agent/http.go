package agent

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPProxy is a Proxy over the agent's HTTP endpoint. Agent responses
// wrap their payload as {"value": ...}; bare bodies pass through as
// strings.
type HTTPProxy struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPProxy creates a proxy for the agent at baseURL
func NewHTTPProxy(baseURL string) *HTTPProxy {
	return &HTTPProxy{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *HTTPProxy) Call(method, path string) (interface{}, error) {
	req, err := http.NewRequest(method, p.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build agent request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read agent response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, body)
	}

	var wrapper struct {
		Value interface{} `json:"value"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Value != nil {
		return wrapper.Value, nil
	}

	return string(body), nil
}
