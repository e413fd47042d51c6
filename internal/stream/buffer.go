package stream

import (
	"sync"
	"time"

	"github.com/nightglass/devicecap/internal/imaging"
)

// Buffer holds the most recent frame pushed by a stream consumer. It
// implements Feed so the acquisition pipeline can read from it like any
// other live feed.
type Buffer struct {
	mu        sync.RWMutex
	active    bool
	last      string
	updatedAt time.Time
}

// NewBuffer creates an inactive, empty frame buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Activate marks the feed as running. Frames pushed before activation
// are kept.
func (b *Buffer) Activate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = true
}

// Deactivate marks the feed as stopped and drops the buffered frame
func (b *Buffer) Deactivate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = false
	b.last = ""
}

// Push replaces the buffered frame with the newest one
func (b *Buffer) Push(frame imaging.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = frame.Base64()
	b.updatedAt = time.Now()
}

// IsActive reports whether the feed is running
func (b *Buffer) IsActive() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active
}

// LastChunkBase64 returns the most recent frame, or false when none has
// arrived yet
func (b *Buffer) LastChunkBase64() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.last == "" {
		return "", false
	}
	return b.last, true
}

// LastUpdated returns when the buffered frame was pushed
func (b *Buffer) LastUpdated() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt
}
