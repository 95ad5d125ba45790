package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesLoad(t *testing.T) {
	for _, name := range []string{LegacyFixture, SeasonFixture, MultiSportFixture} {
		doc := RawDocument(t, name)
		if len(doc) == 0 {
			t.Fatalf("expected keys in %s", name)
		}
	}

	doc := SampleDocument()
	if len(doc.Rankings) == 0 || len(doc.Teams) == 0 || doc.Bracket.Empty() {
		t.Fatalf("unexpected sample document %+v", doc)
	}
	if r := SampleRanking(4, "Texas Tech"); r.TeamID != "texas-tech" {
		t.Fatalf("expected slugged team id, got %q", r.TeamID)
	}
}

func TestProviders(t *testing.T) {
	src := config.Source{Name: "cfp"}
	good := GoodProvider{Doc: map[string]any{"rankings": []any{}}}
	if doc, err := good.FetchDocument(context.Background(), src); err != nil || doc == nil {
		t.Fatalf("expected document, got %v err %v", doc, err)
	}

	boom := errors.New("boom")
	if _, err := (ErrProvider{Err: boom}).FetchDocument(context.Background(), src); !errors.Is(err, boom) {
		t.Fatalf("expected error passthrough, got %v", err)
	}

	n := &NotifyingProvider{Notify: make(chan struct{})}
	_, _ = n.FetchDocument(context.Background(), src)
	_, _ = n.FetchDocument(context.Background(), src)
	select {
	case <-n.Notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestLoggerAndRecorderHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected buffered log output")
	}

	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown(context.Background()) != nil {
		t.Fatalf("expected recorder and no-op shutdown")
	}
}

func TestServerStubs(t *testing.T) {
	w := &StubWatcher{StartErr: errors.New("no dir")}
	if err := w.Start(context.Background()); err == nil {
		t.Fatalf("expected start error")
	}
	_ = w.Stop()
	if starts, stops := w.Calls(); starts != 1 || stops != 1 {
		t.Fatalf("unexpected watcher calls %d/%d", starts, stops)
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen error")
	}
}
