package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/interviewprep/internal/config"
	testhelpers "github.com/polkiloo/interviewprep/internal/test"
	"github.com/polkiloo/interviewprep/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestDispatcher() *worker.Dispatcher {
	return worker.NewDispatcher(1, 4, time.Second, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	dispatcher := newTestDispatcher()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Dispatcher: dispatcher,
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 2 {
		t.Fatalf("expected dispatcher and server hooks, got %d", len(recorder.Hooks))
	}

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Stop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}

	if dispatcher.Submit("late", func(context.Context) error { return nil }) {
		t.Fatal("dispatcher must be stopped after on stop")
	}
}

func TestRegisterLifecycleDrainsQueuedTasks(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	dispatcher := newTestDispatcher()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     discardLogger(),
		Server:     server,
		Dispatcher: dispatcher,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	var ran int32
	for i := 0; i < 3; i++ {
		dispatcher.Submit("notify", func(context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}

	if err := recorder.Stop(context.Background()); err != nil {
		t.Fatalf("on stop failed: %v", err)
	}
	if got := atomic.LoadInt32(&ran); got != 3 {
		t.Fatalf("expected queued tasks to finish before stop, got %d", got)
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Dispatcher: newTestDispatcher(),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = recorder.Stop(context.Background())
}

func TestShutdownContextKeepsCallerDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	want, _ := parent.Deadline()

	ctx, release := shutdownContext(parent, time.Hour)
	defer release()
	got, ok := ctx.Deadline()
	if !ok || !got.Equal(want) {
		t.Fatalf("expected caller deadline %v, got %v (%v)", want, got, ok)
	}

	ctx, release = shutdownContext(context.Background(), 20*time.Millisecond)
	defer release()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected grace deadline to be applied")
	}
}
