package profile

import (
	"image"
	"sync"
	"time"
)

// Raster accumulates the time spent rasterizing views in software. The zero
// value is ready to use and safe for concurrent use.
type Raster struct {
	mu    sync.Mutex
	stats RasterStats
}

// RasterStats summarizes observed rasterizations.
type RasterStats struct {
	Frames int
	Total  time.Duration
	Max    time.Duration
	// MaxSize is the size of the slowest rasterization.
	MaxSize image.Point
	// Pixels is the total area rasterized.
	Pixels int64
}

// Mean duration of one rasterization.
func (s RasterStats) Mean() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Frames)
}

// Observe records one rasterization of size that took d. It matches
// material.Frame.Observe.
func (r *Raster) Observe(size image.Point, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Frames++
	r.stats.Total += d
	r.stats.Pixels += int64(size.X) * int64(size.Y)
	if d > r.stats.Max {
		r.stats.Max = d
		r.stats.MaxSize = size
	}
}

// Stats returns a snapshot.
func (r *Raster) Stats() RasterStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
