package agent

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNGBase64(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// fakeProxy records calls and replays canned payloads by path
type fakeProxy struct {
	payloads map[string]interface{}
	err      error
	calls    []string
}

func (p *fakeProxy) Call(method, path string) (interface{}, error) {
	p.calls = append(p.calls, method+" "+path)
	if p.err != nil {
		return nil, p.err
	}
	return p.payloads[path], nil
}

// fakeAtoms records atom executions
type fakeAtoms struct {
	payload interface{}
	calls   []string
}

func (a *fakeAtoms) ExecuteAtom(name string, args ...interface{}) (interface{}, error) {
	a.calls = append(a.calls, name)
	return a.payload, nil
}

func TestCaptureDecodesBase64(t *testing.T) {
	payload := testPNGBase64(t)
	proxy := &fakeProxy{payloads: map[string]interface{}{"/screenshot": payload}}

	img, err := NewClient(proxy).Capture()
	require.NoError(t, err)
	assert.False(t, img.Empty())
	assert.Equal(t, []string{"GET /screenshot"}, proxy.calls)
}

func TestCaptureMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
	}{
		{"non-string payload", 42},
		{"nil payload", nil},
		{"empty string", ""},
		{"invalid base64", "!!! definitely not base64 !!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proxy := &fakeProxy{payloads: map[string]interface{}{"/screenshot": tt.payload}}

			_, err := NewClient(proxy).Capture()

			var respErr *UnexpectedResponseError
			require.ErrorAs(t, err, &respErr)
		})
	}
}

func TestCaptureTransportErrorPropagates(t *testing.T) {
	proxy := &fakeProxy{err: errors.New("connection refused")}

	_, err := NewClient(proxy).Capture()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCaptureElementNative(t *testing.T) {
	payload := testPNGBase64(t)
	proxy := &fakeProxy{payloads: map[string]interface{}{"/element/el-42/screenshot": payload}}

	img, err := NewClient(proxy).CaptureElement("el-42")
	require.NoError(t, err)
	assert.False(t, img.Empty())
	assert.Equal(t, []string{"GET /element/el-42/screenshot"}, proxy.calls)
}

func TestCaptureElementWebViewUsesAtoms(t *testing.T) {
	proxy := &fakeProxy{}
	atoms := &fakeAtoms{payload: testPNGBase64(t)}

	client := NewClient(proxy).WithAtoms(atoms)
	client.SetContext(ContextWebView)

	img, err := client.CaptureElement("el-42")
	require.NoError(t, err)
	assert.False(t, img.Empty())
	assert.Equal(t, []string{"takeElementScreenshot"}, atoms.calls)
	assert.Empty(t, proxy.calls, "web-view capture must bypass the native endpoint")
}

func TestCaptureElementWebViewWithoutAtoms(t *testing.T) {
	client := NewClient(&fakeProxy{})
	client.SetContext(ContextWebView)

	_, err := client.CaptureElement("el-42")
	require.Error(t, err)
}

func TestOrientation(t *testing.T) {
	proxy := &fakeProxy{payloads: map[string]interface{}{"/orientation": "LANDSCAPE"}}

	orientation, err := NewClient(proxy).Orientation()
	require.NoError(t, err)
	assert.Equal(t, "LANDSCAPE", orientation)
}

func TestOrientationNonString(t *testing.T) {
	proxy := &fakeProxy{payloads: map[string]interface{}{"/orientation": 7}}

	_, err := NewClient(proxy).Orientation()

	var respErr *UnexpectedResponseError
	require.ErrorAs(t, err, &respErr)
}
