package keepalive

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPinger_PingsHealthEndpoint(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	var hits int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("ping path = %q, want /health", r.URL.Path)
		}
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	p := New(ts.URL, 20*time.Millisecond, time.Second, logger)
	if !p.Enabled() {
		t.Fatal("Enabled() = false with a target URL set")
	}

	p.Start()
	time.Sleep(110 * time.Millisecond)
	p.Stop()

	// Immediate ping plus several ticks
	if got := atomic.LoadInt64(&hits); got < 3 {
		t.Errorf("hits = %d, want at least 3", got)
	}
}

func TestPinger_StopIsPrompt(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	// Long interval: Stop must not wait for the next tick
	p := New(ts.URL, time.Hour, time.Second, logger)
	p.Start()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return promptly")
	}
}

func TestPinger_SurvivesFailingTarget(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections

	p := New(ts.URL, 20*time.Millisecond, 100*time.Millisecond, logger)
	p.Start()
	time.Sleep(80 * time.Millisecond)
	p.Stop() // must not hang or panic despite every ping failing
}

func TestPinger_DisabledWithoutTarget(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	p := New("", 30*time.Second, 5*time.Second, logger)
	if p.Enabled() {
		t.Error("Enabled() = true with empty target")
	}

	// Start/Stop on a disabled pinger are no-ops
	p.Start()
	p.Stop()
}

func TestPinger_TrimsTrailingSlash(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	p := New(ts.URL+"/", time.Hour, time.Second, logger)
	p.Start()
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	if gotPath != "/health" {
		t.Errorf("ping path = %q, want /health (no double slash)", gotPath)
	}
}
