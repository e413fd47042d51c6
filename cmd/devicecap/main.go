package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nightglass/devicecap/internal/agent"
	"github.com/nightglass/devicecap/internal/config"
	"github.com/nightglass/devicecap/internal/devicetool"
	"github.com/nightglass/devicecap/internal/imaging"
	"github.com/nightglass/devicecap/internal/logging"
	"github.com/nightglass/devicecap/internal/screenshot"
	"github.com/nightglass/devicecap/internal/simdevice"
	"github.com/nightglass/devicecap/internal/stream"
)

// staticMetrics supplies viewport measurements from the command line
type staticMetrics struct {
	statusBarHeight float64
	pixelRatio      float64
	windowWidth     int
	windowHeight    int
}

func (m staticMetrics) StatusBarHeight() (float64, error) { return m.statusBarHeight, nil }
func (m staticMetrics) PixelRatio() (float64, error)      { return m.pixelRatio, nil }
func (m staticMetrics) WindowSize() (int, int, error)     { return m.windowWidth, m.windowHeight, nil }

func main() {
	configPath := flag.String("config", "", "path to Settings.ini or a YAML profile")
	deviceID := flag.String("device", "", "device identifier (UDID), overrides config")
	outPath := flag.String("out", "screenshot.png", "output PNG path")
	viewport := flag.Bool("viewport", false, "crop the screenshot to the viewport")
	statusBar := flag.Float64("status-bar", 0, "status bar height in points (viewport mode)")
	pixelRatio := flag.Float64("pixel-ratio", 1, "device pixel ratio (viewport mode)")
	windowW := flag.Int("window-width", 0, "window width in points (viewport mode)")
	windowH := flag.Int("window-height", 0, "window height in points (viewport mode)")
	mjpegURL := flag.String("mjpeg-url", "", "MJPEG stream URL to use as the live frame feed")
	timeout := flag.Duration("timeout", 60*time.Second, "overall capture timeout")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *deviceID != "" {
		cfg.DeviceID = *deviceID
	}
	if cfg.DeviceID == "" {
		log.Fatalf("No device specified; pass -device or set DeviceID in the config")
	}

	logger := logging.NewLogger("devicecap").SetMinLevel(logging.ParseLevel(cfg.LogLevel))

	proxy := agent.NewHTTPProxy(cfg.AgentURL)
	agentClient := agent.NewClient(proxy)
	tool := devicetool.NewCapturer(cfg.CaptureToolPath, nil)
	mgr := simdevice.NewSimctlManager(nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dev := screenshot.DeviceContext{
		DeviceID:  cfg.DeviceID,
		Class:     screenshot.ClassPhysical,
		Preferred: cfg.PreferredScreenshotter,
	}

	if isSim, err := mgr.IsSimulator(cfg.DeviceID); err != nil {
		logger.WarnWithContext("simulator lookup failed, assuming physical device",
			map[string]interface{}{"device": cfg.DeviceID, "error": err})
	} else if isSim {
		dev.Class = screenshot.ClassSimulator
	}

	if raw, err := agentClient.Orientation(); err != nil {
		logger.WarnWithContext("orientation lookup failed, assuming portrait",
			map[string]interface{}{"device": cfg.DeviceID, "error": err})
	} else {
		dev.Orientation = screenshot.ParseOrientation(raw)
	}

	var feed stream.Feed
	if *mjpegURL != "" {
		buffer := stream.NewBuffer()
		if err := stream.NewConsumer(*mjpegURL, buffer).Start(ctx); err != nil {
			logger.WarnWithContext("stream connect failed, falling back to direct capture",
				map[string]interface{}{"url": *mjpegURL, "error": err})
		} else {
			feed = buffer
		}
	}

	acquirer := screenshot.NewAcquirer(
		stream.NewCapture(feed),
		agentClient,
		tool,
		simdevice.Screenshotter{Mgr: mgr},
		screenshot.Options{
			RetryCount:    cfg.RetryCount,
			RetryInterval: time.Duration(cfg.RetryIntervalMs) * time.Millisecond,
			MaxWidth:      cfg.MaxWidth,
		},
		logger,
	)

	var img imaging.Image
	var err error
	if *viewport {
		metrics := staticMetrics{
			statusBarHeight: *statusBar,
			pixelRatio:      *pixelRatio,
			windowWidth:     *windowW,
			windowHeight:    *windowH,
		}
		img, err = screenshot.NewCropper(acquirer, metrics).CaptureViewport(ctx, dev)
	} else {
		img, err = acquirer.Acquire(ctx, dev)
	}
	if err != nil {
		log.Fatalf("Capture failed: %v", err)
	}

	if err := os.WriteFile(*outPath, img.PNG, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}

	fmt.Printf("Saved %s (%d bytes, device %s, %s)\n", *outPath, len(img.PNG), dev.DeviceID, dev.Class)
}
