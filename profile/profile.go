// Package profile wires runtime profiles and per-view raster timings into
// the example hosts.
//
// Runtime profiles come from github.com/pkg/profile, which announces the
// file it writes on the standard logger. Gio frame timings come from
// gioui.org/x/profiling. Raster timings are collected from
// material.Frame through Raster.Observe and summarized on Stop.
package profile

import (
	"fmt"
	"strings"

	"gioui.org/layout"
	"gioui.org/x/profiling"
	"github.com/pkg/profile"
	"golang.org/x/exp/slog"
)

// Opt selects what to profile. It implements flag.Value.
type Opt string

const (
	None      Opt = "none"
	CPU       Opt = "cpu"
	Memory    Opt = "mem"
	Block     Opt = "block"
	Goroutine Opt = "goroutine"
	Mutex     Opt = "mutex"
	Trace     Opt = "trace"
	Gio       Opt = "gio"
)

// Opts lists every supported option.
var Opts = []Opt{None, CPU, Memory, Block, Goroutine, Mutex, Trace, Gio}

// modes maps the runtime profiles onto pkg/profile modes.
var modes = map[Opt]func(*profile.Profile){
	CPU:       profile.CPUProfile,
	Memory:    profile.MemProfile,
	Block:     profile.BlockProfile,
	Goroutine: profile.GoroutineProfile,
	Mutex:     profile.MutexProfile,
	Trace:     profile.TraceProfile,
}

func (p *Opt) String() string {
	if p == nil || *p == "" {
		return string(None)
	}
	return string(*p)
}

// Set rejects unknown options and leaves p unchanged on error.
func (p *Opt) Set(s string) error {
	for _, o := range Opts {
		if string(o) == s {
			*p = o
			return nil
		}
	}
	names := make([]string, len(Opts))
	for i, o := range Opts {
		names[i] = string(o)
	}
	return fmt.Errorf("unknown profile %q, want one of %s", s, strings.Join(names, ", "))
}

// NewProfiler returns an idle profiler for p. Set Dir and Logger before
// calling Start.
func (p Opt) NewProfiler() *Profiler {
	if p == "" {
		p = None
	}
	return &Profiler{Type: p}
}

// Profiler runs one kind of profile for the life of a window.
type Profiler struct {
	Type Opt
	// Dir receives runtime profiles. Empty lets pkg/profile pick a
	// temporary directory, which it announces on the standard logger.
	Dir string
	// Logger reports profiler failures and the raster summary.
	// Defaults to slog.Default.
	Logger *slog.Logger
	// Raster collects software rasterization timings.
	Raster Raster

	stop func()
	gio  *profiling.CSVTimingRecorder
}

// Start profiling.
func (pfn *Profiler) Start() {
	switch {
	case pfn.Type == Gio:
		rec, err := profiling.NewRecorder(nil)
		if err != nil {
			pfn.log().Error("starting gio profiler", "err", err)
			return
		}
		pfn.gio = rec
	case modes[pfn.Type] != nil:
		opts := []func(*profile.Profile){modes[pfn.Type], profile.NoShutdownHook}
		if pfn.Dir != "" {
			opts = append(opts, profile.ProfilePath(pfn.Dir))
		}
		pfn.stop = profile.Start(opts...).Stop
	}
}

// Stop profiling and log the raster summary, if any frame was rasterized.
func (pfn *Profiler) Stop() {
	if pfn.stop != nil {
		pfn.stop()
		pfn.stop = nil
	}
	if pfn.gio != nil {
		if err := pfn.gio.Stop(); err != nil {
			pfn.log().Error("stopping gio profiler", "err", err)
		}
		pfn.gio = nil
	}
	if pfn.Type == None {
		return
	}
	if s := pfn.Raster.Stats(); s.Frames > 0 {
		pfn.log().Info("raster timings",
			"frames", s.Frames,
			"total", s.Total,
			"mean", s.Mean(),
			"max", s.Max,
			"max_size", s.MaxSize,
			"pixels", s.Pixels)
	}
}

// Record GUI stats per frame.
func (pfn *Profiler) Record(gtx layout.Context) {
	if pfn.gio != nil {
		pfn.gio.Profile(gtx)
	}
}

func (pfn *Profiler) log() *slog.Logger {
	if pfn.Logger != nil {
		return pfn.Logger
	}
	return slog.Default()
}
