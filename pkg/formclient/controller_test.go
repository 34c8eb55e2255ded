package formclient

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securewave/securewave_backend/pkg/lead"
)

type fakeSubmitter struct {
	mu     sync.Mutex
	result Result
	calls  []lead.Payload
}

func (f *fakeSubmitter) Submit(_ context.Context, _ lead.Variant, p lead.Payload) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p)
	return f.result
}

type recordingView struct {
	shown   []Status
	cleared int
}

func (v *recordingView) Show(st Status) { v.shown = append(v.shown, st) }
func (v *recordingView) Clear()         { v.cleared++ }

func (v *recordingView) last() Status {
	if len(v.shown) == 0 {
		return Status{}
	}
	return v.shown[len(v.shown)-1]
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualScheduler records timers; tests fire them explicitly.
type manualScheduler struct {
	timers []*fakeTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) fireAll() {
	for _, t := range s.timers {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

type formFixture struct {
	fields    ValueFields
	view      *recordingView
	submitter *fakeSubmitter
	scheduler *manualScheduler
	handle    *Handle
}

func bindFixture(t *testing.T, v lead.Variant, values map[string]string, res Result) *formFixture {
	t.Helper()
	f := &formFixture{
		fields:    ValueFields(values),
		view:      &recordingView{},
		submitter: &fakeSubmitter{result: res},
		scheduler: &manualScheduler{},
	}
	f.handle = Bind(
		Elements{Fields: f.fields, Status: f.view, Reset: f.fields},
		Options{Submitter: f.submitter, Variant: v, Scheduler: f.scheduler},
	)
	t.Cleanup(f.handle.Close)
	return f
}

func TestHandleSubmit_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		variant lead.Variant
		values  map[string]string
	}{
		{name: "consultation without name", variant: lead.Consultation, values: map[string]string{"email": "a@b.co"}},
		{name: "consultation whitespace email", variant: lead.Consultation, values: map[string]string{"name": "A", "email": "   "}},
		{name: "notify without email", variant: lead.Notify, values: map[string]string{}},
		{name: "subscription without phone", variant: lead.Subscription, values: map[string]string{"name": "A", "email": "a@b.co", "service": "SOC"}},
		{name: "subscription without service", variant: lead.Subscription, values: map[string]string{"name": "A", "email": "a@b.co", "phone": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := bindFixture(t, tt.variant, tt.values, Result{Kind: KindOk})

			st := f.handle.Submit(context.Background())

			assert.Equal(t, tt.variant.ValidationMessage, st.Text)
			assert.Equal(t, ToneError, st.Tone)
			assert.Empty(t, f.submitter.calls, "no request may be issued")
			assert.Len(t, f.view.shown, 1)
		})
	}
}

func TestHandleSubmit_InvalidEmailShape(t *testing.T) {
	f := bindFixture(t, lead.Consultation, map[string]string{"name": "A", "email": "not-an-address"}, Result{Kind: KindOk})

	st := f.handle.Submit(context.Background())

	assert.Equal(t, "Please enter a valid email address.", st.Text)
	assert.Empty(t, f.submitter.calls)
}

func TestHandleSubmit_Success(t *testing.T) {
	f := bindFixture(t, lead.Consultation,
		map[string]string{"name": "Ayesha", "email": "ayesha@example.com", "message": "hi"},
		Result{Kind: KindOk, Code: 200, Message: "OK"})

	st := f.handle.Submit(context.Background())

	require.Len(t, f.view.shown, 2)
	assert.Equal(t, Status{Text: "Sending your consultation request...", Tone: ToneInfo}, f.view.shown[0])
	assert.Equal(t, "OK", st.Text)
	assert.Equal(t, st, f.view.last())

	require.Len(t, f.submitter.calls, 1)
	assert.Equal(t, "Ayesha", f.submitter.calls[0].Name)
	assert.Equal(t, "", f.fields["name"], "form is reset after success")

	require.Len(t, f.scheduler.timers, 1)
	assert.Equal(t, 5*time.Second, f.scheduler.timers[0].d)
	f.scheduler.fireAll()
	assert.Equal(t, 1, f.view.cleared)
}

func TestHandleSubmit_FixedServiceOverridesForm(t *testing.T) {
	f := bindFixture(t, lead.Notify, map[string]string{"email": "a@b.co", "service": "Other"}, Result{Kind: KindOk})

	f.handle.Submit(context.Background())

	require.Len(t, f.submitter.calls, 1)
	assert.Equal(t, lead.DefaultService, f.submitter.calls[0].Service)
}

func TestHandleSubmit_ErrorKeepsForm(t *testing.T) {
	f := bindFixture(t, lead.Consultation,
		map[string]string{"name": "A", "email": "a@b.co"},
		Result{Kind: KindServerError, Code: 500, StatusText: "Internal Server Error", Message: "X"})

	st := f.handle.Submit(context.Background())

	assert.Equal(t, "Error: X", st.Text)
	assert.Equal(t, "A", f.fields["name"])
	require.Len(t, f.scheduler.timers, 1)
	assert.Equal(t, 10*time.Second, f.scheduler.timers[0].d)
}

func TestHandleSubmit_NewStatusCancelsPendingClear(t *testing.T) {
	f := bindFixture(t, lead.Notify, map[string]string{"email": "a@b.co"}, Result{Kind: KindTransportError})

	f.handle.Submit(context.Background())
	f.handle.Submit(context.Background())

	require.Len(t, f.scheduler.timers, 2)
	assert.True(t, f.scheduler.timers[0].stopped)
	f.scheduler.fireAll()
	assert.Equal(t, 1, f.view.cleared)
}

func TestHandleClose_StopsPendingClear(t *testing.T) {
	f := bindFixture(t, lead.Notify, map[string]string{"email": "a@b.co"}, Result{Kind: KindOk})

	f.handle.Submit(context.Background())
	f.handle.Close()

	require.Len(t, f.scheduler.timers, 1)
	assert.True(t, f.scheduler.timers[0].stopped)
	assert.Zero(t, f.view.cleared)
}

func TestSubscribeToService(t *testing.T) {
	t.Run("cancelled prompt", func(t *testing.T) {
		s := &fakeSubmitter{result: Result{Kind: KindOk}}
		st := SubscribeToService(context.Background(), s, "  ", "Managed SOC")
		assert.True(t, st.IsZero())
		assert.Empty(t, s.calls)
	})

	t.Run("invalid address", func(t *testing.T) {
		s := &fakeSubmitter{result: Result{Kind: KindOk}}
		st := SubscribeToService(context.Background(), s, "nobody", "Managed SOC")
		assert.Equal(t, "Please enter a valid email address.", st.Text)
		assert.Empty(t, s.calls)
	})

	t.Run("subscribed", func(t *testing.T) {
		s := &fakeSubmitter{result: Result{Kind: KindOk, Code: 200}}
		st := SubscribeToService(context.Background(), s, "a@b.co", "Managed SOC")
		assert.Equal(t, `Successfully subscribed to updates for "Managed SOC"!`, st.Text)
		require.Len(t, s.calls, 1)
		assert.Equal(t, lead.Payload{Email: "a@b.co", Service: "Managed SOC"}, s.calls[0])
	})

	t.Run("server error", func(t *testing.T) {
		s := &fakeSubmitter{result: Result{Kind: KindServerError, Code: 400, StatusText: "Bad Request", Message: "Email is required.", JSONBody: true}}
		st := SubscribeToService(context.Background(), s, "a@b.co", "Managed SOC")
		assert.Equal(t, "Error subscribing: Email is required.", st.Text)
		assert.Equal(t, ToneError, st.Tone)
	})

	t.Run("network error", func(t *testing.T) {
		s := &fakeSubmitter{result: Result{Kind: KindTransportError}}
		st := SubscribeToService(context.Background(), s, "a@b.co", "Managed SOC")
		assert.Equal(t, "A network error occurred while subscribing. Please try again later.", st.Text)
	})

	t.Run("unknown service", func(t *testing.T) {
		s := &fakeSubmitter{result: Result{Kind: KindOk}}
		SubscribeToService(context.Background(), s, "a@b.co", "")
		require.Len(t, s.calls, 1)
		assert.Equal(t, lead.UnknownService, s.calls[0].Service)
	})
}

func TestWriterStatus(t *testing.T) {
	var buf bytes.Buffer
	w := &WriterStatus{W: &buf}

	w.Show(Status{Text: "Subscribing you...", Tone: ToneInfo})
	w.Show(Status{})
	w.Show(Status{Text: "done", Tone: ToneSuccess})

	assert.Equal(t, "[INFO] Subscribing you...\n[SUCCESS] done\n", buf.String())
}
