package profile

import (
	"bytes"
	"flag"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/exp/slog"
)

func TestOptFlag(t *testing.T) {
	var opt Opt
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&opt, "profile", "")
	if got := opt.String(); got != "none" {
		t.Fatalf("default = %q, want none", got)
	}
	if err := fs.Parse([]string{"-profile", "cpu"}); err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if opt != CPU {
		t.Fatalf("opt = %q, want cpu", opt)
	}
	if err := opt.Set("heap"); err == nil {
		t.Fatalf("unknown option accepted")
	}
	if opt != CPU {
		t.Fatalf("failed Set changed the option to %q", opt)
	}
}

func TestNewProfiler(t *testing.T) {
	for _, opt := range Opts {
		if p := opt.NewProfiler(); p.Type != opt {
			t.Errorf("%s: type = %q", opt, p.Type)
		}
	}
	if p := Opt("").NewProfiler(); p.Type != None {
		t.Fatalf("empty option: type = %q, want none", p.Type)
	}
	// An idle profiler starts and stops without side effects.
	p := None.NewProfiler()
	p.Start()
	p.Stop()
}

// captureLog redirects the standard logger for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	out, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	})
	return &buf
}

func TestProfilePathAnnounced(t *testing.T) {
	buf := captureLog(t)
	dir := t.TempDir()
	p := CPU.NewProfiler()
	p.Dir = dir
	p.Start()
	p.Stop()

	want := filepath.Join(dir, "cpu.pprof")
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("log does not name the profile\n got:{%s} \nwant:{%s}\n", buf.String(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("profile not written: %v", err)
	}
}

func TestRaster(t *testing.T) {
	var r Raster
	if s := r.Stats(); s.Frames != 0 || s.Mean() != 0 {
		t.Fatalf("zero value not empty: %+v", s)
	}
	r.Observe(image.Pt(10, 10), 2*time.Millisecond)
	r.Observe(image.Pt(20, 5), 6*time.Millisecond)
	r.Observe(image.Pt(4, 4), time.Millisecond)
	got := r.Stats()
	want := RasterStats{
		Frames:  3,
		Total:   9 * time.Millisecond,
		Max:     6 * time.Millisecond,
		MaxSize: image.Pt(20, 5),
		Pixels:  100 + 100 + 16,
	}
	if got != want {
		t.Fatalf("\n got:{%+v} \nwant:{%+v}\n", got, want)
	}
	if got.Mean() != 3*time.Millisecond {
		t.Fatalf("mean = %v, want 3ms", got.Mean())
	}
}

func TestStopLogsRasterSummary(t *testing.T) {
	captureLog(t)
	for _, tt := range []struct {
		Label  string
		Type   Opt
		Frames int
		Want   bool
	}{
		{Label: "profiling", Type: Memory, Frames: 2, Want: true},
		{Label: "no frames", Type: Memory, Want: false},
		{Label: "disabled", Type: None, Frames: 2, Want: false},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			var buf bytes.Buffer
			p := tt.Type.NewProfiler()
			p.Dir = t.TempDir()
			p.Logger = slog.New(slog.NewTextHandler(&buf, nil))
			p.Start()
			for i := 0; i < tt.Frames; i++ {
				p.Raster.Observe(image.Pt(8, 8), time.Millisecond)
			}
			p.Stop()
			logged := strings.Contains(buf.String(), "raster timings")
			if logged != tt.Want {
				t.Fatalf("summary logged = %v, want %v: %s", logged, tt.Want, buf.String())
			}
			if tt.Want && !strings.Contains(buf.String(), "frames="+strconv.Itoa(tt.Frames)) {
				t.Fatalf("summary misses the frame count: %s", buf.String())
			}
		})
	}
}
