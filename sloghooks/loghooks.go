package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/vcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	StaleEvery   uint64
	CorruptEvery uint64
	// Optional key redactor. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

// Hooks logs vcache events through log/slog.
type Hooks struct {
	l    *slog.Logger
	opts Options

	staleCtr   atomic.Uint64
	corruptCtr atomic.Uint64
}

var _ vcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n <= 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) StaleEntry(group, key string, entryVersion, currentVersion uint64) {
	if h.l == nil || !sample(h.opts.StaleEvery, &h.staleCtr) {
		return
	}
	h.l.Debug("vcache.stale_entry",
		"group", group,
		"key", h.redact(key),
		"entry_version", entryVersion,
		"current_version", currentVersion)
}

func (h *Hooks) CorruptEntry(group, key, reason string) {
	if h.l == nil || !sample(h.opts.CorruptEvery, &h.corruptCtr) {
		return
	}
	h.l.Warn("vcache.corrupt_entry",
		"group", group,
		"key", h.redact(key),
		"reason", reason)
}

func (h *Hooks) WriteRejected(group, key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("vcache.write_rejected",
		"group", group,
		"key", h.redact(key))
}

func (h *Hooks) StoreError(err *vcache.OpError) {
	if h.l == nil || err == nil {
		return
	}
	h.l.Error("vcache.store_error",
		"op", err.Op,
		"group", err.Group,
		"key", h.redact(err.Key),
		"err", err.Err)
}

func (h *Hooks) ComputeFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Info("vcache.compute_failed",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) FlushUnavailable() {
	if h.l == nil {
		return
	}
	h.l.Warn("vcache.flush_unavailable",
		"msg", "store has no Flush and Options.FlushFunc is nil")
}
