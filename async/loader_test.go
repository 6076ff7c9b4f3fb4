package async

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"
)

func encoded(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding: %v", err)
	}
	return buf.Bytes()
}

// await polls key until it leaves the queued and loading states.
func await(t *testing.T, l *Loader, key string) Result {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		if r := l.Load(key); r.State == Loaded || r.State == Failed {
			return r
		}
		select {
		case <-l.Updated():
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timed out loading %q", key)
		}
	}
}

func TestLoader(t *testing.T) {
	files := map[string][]byte{
		"wide.png": encoded(t, 20, 10),
		"junk.png": []byte("not an image"),
	}
	opened := make(chan string, 10)
	l := &Loader{
		Scheduler: &FixedWorkerPool{Workers: 2},
		Open: func(_ context.Context, key string) (io.ReadCloser, error) {
			opened <- key
			data, ok := files[key]
			if !ok {
				return nil, errors.New("no such file")
			}
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}

	for _, tt := range []struct {
		Key    string
		State  State
		Size   image.Point
		Format string
	}{
		{Key: "wide.png", State: Loaded, Size: image.Pt(20, 10), Format: "png"},
		{Key: "junk.png", State: Failed},
		{Key: "missing.png", State: Failed},
	} {
		t.Run(tt.Key, func(t *testing.T) {
			r := await(t, l, tt.Key)
			if r.State != tt.State {
				t.Fatalf("state = %v (err %v), want %v", r.State, r.Err, tt.State)
			}
			if tt.State == Failed {
				if r.Err == nil {
					t.Fatalf("failed result without error")
				}
				return
			}
			if got := r.Image.Bounds().Size(); got != tt.Size {
				t.Fatalf("size = %v, want %v", got, tt.Size)
			}
			if r.Format != tt.Format {
				t.Fatalf("format = %q, want %q", r.Format, tt.Format)
			}
		})
	}

	if l.Len() != 3 {
		t.Fatalf("tracking %d sources, want 3", l.Len())
	}
	// Polling a loaded source does not open it again.
	drain := len(opened)
	for i := 0; i < drain; i++ {
		<-opened
	}
	l.Load("wide.png")
	select {
	case key := <-opened:
		t.Fatalf("reopened %q", key)
	case <-time.After(50 * time.Millisecond):
	}

	l.Forget("wide.png")
	if r := await(t, l, "wide.png"); r.State != Loaded {
		t.Fatalf("reload state = %v", r.State)
	}
}

func TestLoaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &Loader{
		Context: ctx,
		Open: func(context.Context, string) (io.ReadCloser, error) {
			t.Errorf("opened a source after cancellation")
			return nil, errors.New("unreachable")
		},
	}
	r := await(t, l, "any.png")
	if r.State != Failed || !errors.Is(r.Err, context.Canceled) {
		t.Fatalf("result = %v %v, want failed with context.Canceled", r.State, r.Err)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Queued:   "queued",
		Loading:  "loading",
		Loaded:   "loaded",
		Failed:   "failed",
		State(9): "State(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("%d: got %q, want %q", s, got, want)
		}
	}
}
