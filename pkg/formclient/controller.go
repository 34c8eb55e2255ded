package formclient

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/securewave/securewave_backend/pkg/lead"
)

// Fields reads the current input values of a form, keyed by input name.
type Fields interface {
	Values() map[string]string
}

// StatusView is the element that shows submission feedback.
type StatusView interface {
	Show(Status)
	Clear()
}

// Resetter clears the form inputs after a successful submission.
type Resetter interface {
	Reset()
}

// Elements are the references a bound form operates on. Reset may be nil.
type Elements struct {
	Fields Fields
	Status StatusView
	Reset  Resetter
}

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealScheduler schedules on the wall clock.
var RealScheduler Scheduler = clockScheduler{}

type Options struct {
	Submitter Submitter
	Variant   lead.Variant
	// Scheduler defaults to RealScheduler.
	Scheduler Scheduler
	Logger    *slog.Logger
}

// Handle is one bound form. It is safe to call Submit and Close from
// different goroutines; overlapping submissions are not prevented.
type Handle struct {
	el   Elements
	opts Options

	mu      sync.Mutex
	pending Timer
	gen     uint64
	closed  bool
}

// Bind attaches the submission routine for opts.Variant to the given elements.
func Bind(el Elements, opts Options) *Handle {
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handle{el: el, opts: opts}
}

// Submit runs one submission: read, validate, post, render. It returns the
// final status shown.
func (h *Handle) Submit(ctx context.Context) Status {
	v := h.opts.Variant
	p := v.Build(h.el.Fields.Values())

	if msg := v.Validate(p); msg != "" {
		st := validationStatus(msg)
		h.show(st)
		return st
	}

	h.show(inProgressStatus(v))

	res := h.opts.Submitter.Submit(ctx, v, p)
	st := Render(v, res)
	h.show(st)

	if res.OK() && h.el.Reset != nil {
		h.el.Reset.Reset()
	}
	if res.Kind == KindTransportError {
		h.opts.Logger.WarnContext(ctx, "submission did not reach the server", "variant", v.Key, "error", res.Err)
	}
	return st
}

// Close stops any pending status clear. The handle must not be used afterwards.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.pending != nil {
		h.pending.Stop()
		h.pending = nil
	}
}

// show replaces the visible status and, if st asks for it, schedules its
// removal. A newer status cancels the previous clear.
func (h *Handle) show(st Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if h.pending != nil {
		h.pending.Stop()
		h.pending = nil
	}
	h.gen++
	h.el.Status.Show(st)

	if st.ClearAfter <= 0 {
		return
	}
	gen := h.gen
	h.pending = h.opts.Scheduler.AfterFunc(st.ClearAfter, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed || h.gen != gen {
			return
		}
		h.pending = nil
		h.el.Status.Clear()
	})
}

// SubscribeToService subscribes emailAddr to updates for one offering, the
// per-item action on service pages. A blank address means the user
// cancelled the prompt: nothing is sent and the zero Status is returned.
func SubscribeToService(ctx context.Context, s Submitter, emailAddr, service string) Status {
	if strings.TrimSpace(emailAddr) == "" {
		return Status{}
	}
	v := lead.ForService(service)
	p := v.Build(map[string]string{lead.FieldEmail: strings.TrimSpace(emailAddr)})
	if msg := v.Validate(p); msg != "" {
		return validationStatus(msg)
	}
	return Render(v, s.Submit(ctx, v, p))
}
