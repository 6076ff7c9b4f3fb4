// Package async decodes image sources off the UI goroutine.
//
// Loading follows the polling model Gio hosts use: request a source every
// frame, redraw when Updated fires, and attach the image to a view once it
// is Loaded.
package async

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"runtime"
	"sync"

	"git.sr.ht/~gioverse/imageview"

	// Decoders for the formats accepted as view sources.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// OpenFunc opens the source named by key.
type OpenFunc func(ctx context.Context, key string) (io.ReadCloser, error)

// OpenFile opens key as a path on the local filesystem.
func OpenFile(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(key)
}

// State that a source can be in.
type State byte

const (
	Queued State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", s)
}

// Result is a snapshot of one source.
type Result struct {
	State State
	// Image is set once State is Loaded.
	Image image.Image
	// Format is the name of the decoder that produced Image.
	Format string
	// Err is set once State is Failed.
	Err error
}

// Scheduler schedules work according to some strategy.
type Scheduler interface {
	// Schedule a piece of work. This method is allowed to block.
	Schedule(func())
}

// FixedWorkerPool implements a simple fixed-size worker pool that lets go
// runtime schedule work atop some number of goroutines.
type FixedWorkerPool struct {
	// Workers specifies the number of concurrent workers in this pool.
	// Defaults to NumCPU.
	Workers int
	// queue of work. Unbuffered so it will block if worker pull is at capacity.
	queue chan func()
	// once time initialization.
	sync.Once
}

// Schedule work to be executed by the available workers. This is a blocking
// call if all workers are busy.
func (p *FixedWorkerPool) Schedule(work func()) {
	p.Once.Do(func() {
		p.queue = make(chan func())
		if p.Workers <= 0 {
			p.Workers = runtime.NumCPU()
		}
		for ii := 0; ii < p.Workers; ii++ {
			go func() {
				for w := range p.queue {
					if w != nil {
						w()
					}
				}
			}()
		}
	})
	p.queue <- work
}

// Loader decodes image sources asynchronously. The zero value loads files
// from disk on a worker pool sized to the CPU count.
type Loader struct {
	// Open provides source bytes. Defaults to OpenFile.
	Open OpenFunc
	// Scheduler runs the decodes. Defaults to a FixedWorkerPool.
	Scheduler Scheduler
	// Context cancels pending decodes. Defaults to context.Background.
	Context context.Context

	init    sync.Once
	updated chan struct{}

	mu      sync.Mutex
	sources map[string]*Result
}

func (l *Loader) initialize() {
	if l.Open == nil {
		l.Open = OpenFile
	}
	if l.Scheduler == nil {
		l.Scheduler = &FixedWorkerPool{}
	}
	if l.Context == nil {
		l.Context = context.Background()
	}
	l.updated = make(chan struct{}, 1)
	l.sources = make(map[string]*Result)
}

// Updated returns a channel that reports that some source changed state.
// Integrate this into the gio event loop to invalidate the window.
//
//	case <-loader.Updated():
//		w.Invalidate()
func (l *Loader) Updated() <-chan struct{} {
	l.init.Do(l.initialize)
	return l.updated
}

// Load polls the source named key, scheduling its decode on first use.
// Failed sources are not retried until Forget is called.
func (l *Loader) Load(key string) Result {
	l.init.Do(l.initialize)
	l.mu.Lock()
	r, ok := l.sources[key]
	if !ok {
		r = &Result{State: Queued}
		l.sources[key] = r
	}
	snapshot := *r
	l.mu.Unlock()
	if !ok {
		go l.Scheduler.Schedule(func() { l.decode(key) })
	}
	return snapshot
}

// Forget drops the source named key so the next Load decodes it again.
func (l *Loader) Forget(key string) {
	l.init.Do(l.initialize)
	l.mu.Lock()
	delete(l.sources, key)
	l.mu.Unlock()
}

// Len reports how many sources the loader tracks.
func (l *Loader) Len() int {
	l.init.Do(l.initialize)
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sources)
}

func (l *Loader) decode(key string) {
	l.set(key, Result{State: Loading})
	img, format, err := l.read(key)
	if err != nil {
		imageview.Logger().Warn("async: loading source failed", "source", key, "err", err)
		l.set(key, Result{State: Failed, Err: err})
		return
	}
	imageview.Logger().Debug("async: loaded source",
		"source", key,
		"format", format,
		"size", img.Bounds().Size())
	l.set(key, Result{State: Loaded, Image: img, Format: format})
}

func (l *Loader) read(key string) (image.Image, string, error) {
	if err := l.Context.Err(); err != nil {
		return nil, "", err
	}
	rc, err := l.Open(l.Context, key)
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", key, err)
	}
	defer rc.Close()
	img, format, err := image.Decode(rc)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", key, err)
	}
	return img, format, nil
}

// set stores r unless key was forgotten in the meantime, then signals an
// update.
func (l *Loader) set(key string, r Result) {
	l.mu.Lock()
	if cur, ok := l.sources[key]; ok {
		*cur = r
	}
	l.mu.Unlock()
	select {
	case l.updated <- struct{}{}:
	default:
	}
}
