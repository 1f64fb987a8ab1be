package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/vcache"
)

func newHooks(opts Options) (*Hooks, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(l, opts), &buf
}

func TestRedactsKeys(t *testing.T) {
	h, buf := newHooks(Options{})
	h.WriteRejected("app_users", "app_secret-user")

	out := buf.String()
	if strings.Contains(out, "secret-user") {
		t.Fatalf("raw key leaked: %q", out)
	}
	if !strings.Contains(out, "group=app_users") {
		t.Fatalf("group missing: %q", out)
	}
}

func TestCustomRedactor(t *testing.T) {
	h, buf := newHooks(Options{Redact: func(string) string { return "XXX" }})
	h.StoreError(&vcache.OpError{Op: "set", Group: "g", Key: "k", Err: errors.New("down")})

	out := buf.String()
	if !strings.Contains(out, "key=XXX") || !strings.Contains(out, "op=set") || !strings.Contains(out, "err=down") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSampling(t *testing.T) {
	h, buf := newHooks(Options{StaleEvery: 3})
	for i := 0; i < 9; i++ {
		h.StaleEntry("g", "k", 1, 2)
	}
	if n := strings.Count(buf.String(), "vcache.stale_entry"); n != 3 {
		t.Fatalf("expected 3 sampled lines, got %d", n)
	}
}

func TestNilLogger(t *testing.T) {
	h := New(nil, Options{})
	h.StaleEntry("g", "k", 1, 2)
	h.FlushUnavailable()
	h.StoreError(nil)
}
