package agent

import (
	"fmt"
	"net/http"

	"github.com/nightglass/devicecap/internal/imaging"
)

// Proxy is the existing request/response transport to the on-device
// automation agent
type Proxy interface {
	Call(method, path string) (interface{}, error)
}

// AtomExecutor runs DOM-automation atoms inside a web-view page
type AtomExecutor interface {
	ExecuteAtom(name string, args ...interface{}) (interface{}, error)
}

// ExecutionContext selects the element capture path
type ExecutionContext int

const (
	// ContextNative captures elements through the agent's native endpoint
	ContextNative ExecutionContext = iota
	// ContextWebView captures elements through the DOM automation atoms
	ContextWebView
)

// Client requests screenshots from the on-device automation agent
type Client struct {
	proxy   Proxy
	atoms   AtomExecutor
	execCtx ExecutionContext
}

// NewClient creates an agent screenshot client over an existing proxy
func NewClient(proxy Proxy) *Client {
	return &Client{proxy: proxy, execCtx: ContextNative}
}

// WithAtoms sets the atom executor used for web-view element capture
func (c *Client) WithAtoms(atoms AtomExecutor) *Client {
	c.atoms = atoms
	return c
}

// SetContext switches between native and web-view element capture
func (c *Client) SetContext(execCtx ExecutionContext) {
	c.execCtx = execCtx
}

// Capture requests a full-screen screenshot from the agent
func (c *Client) Capture() (imaging.Image, error) {
	const path = "/screenshot"
	payload, err := c.proxy.Call(http.MethodGet, path)
	if err != nil {
		return imaging.Image{}, fmt.Errorf("agent screenshot request failed: %w", err)
	}
	return decodePayload(path, payload)
}

// CaptureElement requests a screenshot bounded to a single element. In a
// web-view context the capture goes through the DOM automation atoms
// instead of the native endpoint.
func (c *Client) CaptureElement(elementRef string) (imaging.Image, error) {
	if c.execCtx == ContextWebView {
		if c.atoms == nil {
			return imaging.Image{}, fmt.Errorf("web-view element capture requires an atom executor")
		}
		payload, err := c.atoms.ExecuteAtom("takeElementScreenshot", elementRef)
		if err != nil {
			return imaging.Image{}, fmt.Errorf("atom element screenshot failed: %w", err)
		}
		return decodePayload("atom:takeElementScreenshot", payload)
	}

	path := fmt.Sprintf("/element/%s/screenshot", elementRef)
	payload, err := c.proxy.Call(http.MethodGet, path)
	if err != nil {
		return imaging.Image{}, fmt.Errorf("agent element screenshot request failed: %w", err)
	}
	return decodePayload(path, payload)
}

// Orientation returns the device orientation as reported by the agent
// (e.g. "PORTRAIT", "LANDSCAPE")
func (c *Client) Orientation() (string, error) {
	payload, err := c.proxy.Call(http.MethodGet, "/orientation")
	if err != nil {
		return "", fmt.Errorf("agent orientation request failed: %w", err)
	}
	s, ok := payload.(string)
	if !ok {
		return "", &UnexpectedResponseError{Path: "/orientation", Payload: payload}
	}
	return s, nil
}

// decodePayload validates that the agent returned a base64 image string
func decodePayload(path string, payload interface{}) (imaging.Image, error) {
	s, ok := payload.(string)
	if !ok || s == "" {
		return imaging.Image{}, &UnexpectedResponseError{Path: path, Payload: payload}
	}
	img, err := imaging.FromBase64(s)
	if err != nil {
		return imaging.Image{}, &UnexpectedResponseError{Path: path, Payload: payload, Err: err}
	}
	return img, nil
}
