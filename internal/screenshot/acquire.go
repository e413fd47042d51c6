package screenshot

import (
	"context"
	"fmt"
	"time"

	"github.com/nightglass/devicecap/internal/imaging"
	"github.com/nightglass/devicecap/internal/logging"
)

// StreamSource reads frames from a live video feed
type StreamSource interface {
	Active() bool
	LastFrame() (imaging.Image, bool, error)
}

// AgentCapturer requests screenshots from the on-device automation agent
type AgentCapturer interface {
	Capture() (imaging.Image, error)
}

// ToolCapturer captures through the native command-line utility
type ToolCapturer interface {
	Available() error
	Capture(deviceID string) (imaging.Image, error)
}

// SimulatorCapturer captures through the device-management layer
type SimulatorCapturer interface {
	Capture(deviceID string) (imaging.Image, error)
}

// Options tune the acquisition policy
type Options struct {
	// RetryCount is the number of extra agent attempts after the whole
	// fallback chain has been exhausted
	RetryCount int
	// RetryInterval spaces those attempts apart
	RetryInterval time.Duration
	// MaxWidth, when positive, downscales every acquired screenshot that
	// exceeds it
	MaxWidth int
}

// DefaultOptions mirror the stock acquisition policy
func DefaultOptions() Options {
	return Options{
		RetryCount:    2,
		RetryInterval: 1000 * time.Millisecond,
	}
}

// Attempt is one entry of the acquisition policy table. Fatal entries
// surface their failure immediately; non-fatal entries log and yield to
// the next entry.
type Attempt struct {
	Source CaptureSource
	Fatal  bool
	run    func(ctx context.Context) (imaging.Image, bool, error)
}

// Acquirer selects among capture sources and returns one encoded image
// per call. It keeps no per-call state and is safe to use concurrently
// for different devices.
type Acquirer struct {
	stream StreamSource
	agent  AgentCapturer
	tool   ToolCapturer
	sim    SimulatorCapturer
	opts   Options
	logger *logging.Logger
}

// NewAcquirer builds the orchestrator. Any capture source may be nil;
// nil sources are skipped when the policy table is built.
func NewAcquirer(stream StreamSource, agent AgentCapturer, tool ToolCapturer, sim SimulatorCapturer, opts Options, logger *logging.Logger) *Acquirer {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 1000 * time.Millisecond
	}
	if logger == nil {
		logger = logging.NewLogger("screenshot")
	}
	return &Acquirer{
		stream: stream,
		agent:  agent,
		tool:   tool,
		sim:    sim,
		opts:   opts,
		logger: logger,
	}
}

// Acquire runs the source-selection policy for one device and returns a
// single PNG screenshot
func (a *Acquirer) Acquire(ctx context.Context, dev DeviceContext) (imaging.Image, error) {
	var lastErr error

	for _, attempt := range a.Plan(dev) {
		img, ok, err := attempt.run(ctx)
		if err == nil && ok {
			return a.finish(img)
		}
		if err == nil {
			// Source had nothing to offer (stream with no frame yet);
			// fall through without treating it as a failure.
			a.logger.InfoWithContext("capture source empty, falling through",
				map[string]interface{}{"source": attempt.Source.String(), "device": dev.DeviceID})
			continue
		}
		if attempt.Fatal {
			return imaging.Image{}, err
		}
		lastErr = err
		a.logger.WarnWithContext("capture source failed, trying next",
			map[string]interface{}{"source": attempt.Source.String(), "device": dev.DeviceID, "error": err})
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no capture source available for device %s", dev.DeviceID)
	}
	return imaging.Image{}, lastErr
}

// Plan builds the ordered policy table for one device context. The
// ordering encodes: stream > explicit override > agent > simulator-API >
// external tool > agent retry.
func (a *Acquirer) Plan(dev DeviceContext) []Attempt {
	var attempts []Attempt

	streamActive := a.stream != nil && a.stream.Active()

	if streamActive {
		if dev.PrefersExternalTool() {
			a.logger.WarnWithContext(
				"both a preferred screenshotter and a live video stream are configured; preferring the stream",
				map[string]interface{}{"device": dev.DeviceID})
		}
		attempts = append(attempts, Attempt{
			Source: SourceLiveStream,
			run: func(ctx context.Context) (imaging.Image, bool, error) {
				return a.stream.LastFrame()
			},
		})
	}

	if dev.PrefersExternalTool() {
		// Explicit user choice: a failure here ends the call.
		attempts = append(attempts, Attempt{
			Source: SourceExternalTool,
			Fatal:  true,
			run: func(ctx context.Context) (imaging.Image, bool, error) {
				img, err := a.captureWithTool(dev)
				return img, err == nil, err
			},
		})
		return attempts
	}

	attempts = append(attempts, Attempt{
		Source: SourceAgentProxy,
		run: func(ctx context.Context) (imaging.Image, bool, error) {
			img, err := a.agent.Capture()
			return img, err == nil, err
		},
	})

	if dev.Class == ClassSimulator {
		// Simulator capture failures indicate an environment problem
		// that retrying will not fix.
		attempts = append(attempts, Attempt{
			Source: SourceSimulatorAPI,
			Fatal:  true,
			run: func(ctx context.Context) (imaging.Image, bool, error) {
				img, err := a.sim.Capture(dev.DeviceID)
				return img, err == nil, err
			},
		})
		return attempts
	}

	attempts = append(attempts, Attempt{
		Source: SourceExternalTool,
		run: func(ctx context.Context) (imaging.Image, bool, error) {
			img, err := a.captureWithTool(dev)
			return img, err == nil, err
		},
	})

	attempts = append(attempts, Attempt{
		Source: SourceAgentProxy,
		Fatal:  true,
		run: func(ctx context.Context) (imaging.Image, bool, error) {
			img, err := a.retryAgent(ctx, dev)
			return img, err == nil, err
		},
	})

	return attempts
}

// captureWithTool verifies availability, captures, and rotates the raw
// output when the device is in landscape
func (a *Acquirer) captureWithTool(dev DeviceContext) (imaging.Image, error) {
	if a.tool == nil {
		return imaging.Image{}, fmt.Errorf("no external capture tool configured")
	}
	if err := a.tool.Available(); err != nil {
		return imaging.Image{}, err
	}

	img, err := a.tool.Capture(dev.DeviceID)
	if err != nil {
		return imaging.Image{}, err
	}

	if dev.Orientation == Landscape {
		return imaging.Rotate90(img)
	}
	return img, nil
}

// retryAgent re-attempts the agent path a bounded number of times with a
// fixed interval between attempts
func (a *Acquirer) retryAgent(ctx context.Context, dev DeviceContext) (imaging.Image, error) {
	var lastErr error
	for i := 0; i < a.opts.RetryCount; i++ {
		select {
		case <-ctx.Done():
			return imaging.Image{}, ctx.Err()
		case <-time.After(a.opts.RetryInterval):
		}

		img, err := a.agent.Capture()
		if err == nil {
			return img, nil
		}
		lastErr = err
		a.logger.WarnWithContext("agent screenshot retry failed",
			map[string]interface{}{"device": dev.DeviceID, "attempt": i + 1, "error": err})
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("agent screenshot retries disabled for device %s", dev.DeviceID)
	}
	return imaging.Image{}, lastErr
}

// finish applies the optional uniform downscale to a freshly acquired
// screenshot
func (a *Acquirer) finish(img imaging.Image) (imaging.Image, error) {
	if a.opts.MaxWidth <= 0 {
		return img, nil
	}
	return imaging.ScaleToWidth(img, a.opts.MaxWidth)
}
