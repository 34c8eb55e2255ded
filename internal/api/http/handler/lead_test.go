package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securewave/securewave_backend/internal/service/dispatch"
	"github.com/securewave/securewave_backend/pkg/email"
)

const operatorMailbox = "ops@securewave.example"

type fakeSender struct {
	mu      sync.Mutex
	sent    []email.Message
	failFor map[string]bool
}

func (f *fakeSender) Send(_ context.Context, m email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	for _, to := range m.To {
		if f.failFor[to] {
			return email.ErrSend{Provider: "test", To: m.To, Err: errors.New("relay unavailable")}
		}
	}
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newLeadApp(t *testing.T, sender email.Sender) (*fiber.App, dispatch.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := dispatch.New(dispatch.Options{OperatorMailbox: operatorMailbox, PhoneRegion: "ZA"}, sender, logger, nil)
	t.Cleanup(func() { drain(t, svc) })
	h := NewLeadHandler(svc, "/thank_you.html")

	app := fiber.New()
	app.Post("/api/consultation-submit", h.Consultation)
	app.Post("/api/secureai-subscribe", h.Subscribe)
	app.Post("/process_subscription", h.LegacySubscription)
	return app, svc
}

// drain waits for thank-you emails still being sent after the response.
func drain(t *testing.T, svc dispatch.Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(path string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func readJSON(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func fullSubscription() url.Values {
	return url.Values{
		"name":    {"Thandi"},
		"email":   {"thandi@example.com"},
		"phone":   {"082 123 4567"},
		"service": {"Managed SOC"},
	}
}

func TestLegacySubscription_MissingField(t *testing.T) {
	for _, field := range []string{"name", "email", "phone", "service"} {
		t.Run(field, func(t *testing.T) {
			sender := &fakeSender{}
			app, _ := newLeadApp(t, sender)

			values := fullSubscription()
			values.Del(field)

			resp, err := app.Test(formRequest("/process_subscription", values))
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "Please fill in all required fields.", readBody(t, resp))
			assert.Zero(t, sender.count())
		})
	}
}

func TestLegacySubscription_WhitespaceFieldIsPresent(t *testing.T) {
	app, _ := newLeadApp(t, &fakeSender{})

	values := fullSubscription()
	values.Set("name", " ")

	resp, err := app.Test(formRequest("/process_subscription", values))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestLegacySubscription_Redirects(t *testing.T) {
	sender := &fakeSender{}
	app, svc := newLeadApp(t, sender)

	resp, err := app.Test(formRequest("/process_subscription", fullSubscription()))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/thank_you.html", resp.Header.Get("Location"))
	drain(t, svc)
	assert.Equal(t, 2, sender.count())
}

func TestLegacySubscription_AcceptsJSON(t *testing.T) {
	sender := &fakeSender{}
	app, _ := newLeadApp(t, sender)

	resp, err := app.Test(jsonRequest("/process_subscription", map[string]string{
		"name": "Thandi", "email": "thandi@example.com", "phone": "0821234567", "service": "SOC",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestLegacySubscription_OperatorFailure(t *testing.T) {
	tests := []struct {
		name          string
		failSubmitter bool
	}{
		{name: "submitter delivered"},
		{name: "submitter failed", failSubmitter: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{failFor: map[string]bool{operatorMailbox: true, "thandi@example.com": tt.failSubmitter}}
			app, _ := newLeadApp(t, sender)

			resp, err := app.Test(formRequest("/process_subscription", fullSubscription()))
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
			assert.Equal(t, "Error processing subscription.", readBody(t, resp))
		})
	}
}

func TestLegacySubscription_SubmitterFailureStillRedirects(t *testing.T) {
	sender := &fakeSender{failFor: map[string]bool{"thandi@example.com": true}}
	app, _ := newLeadApp(t, sender)

	resp, err := app.Test(formRequest("/process_subscription", fullSubscription()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestLegacySubscription_DuplicatesDispatchTwice(t *testing.T) {
	sender := &fakeSender{}
	app, svc := newLeadApp(t, sender)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(formRequest("/process_subscription", fullSubscription()))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	}
	drain(t, svc)
	assert.Equal(t, 4, sender.count())
}

func TestConsultation(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sender := &fakeSender{}
		app, svc := newLeadApp(t, sender)

		resp, err := app.Test(jsonRequest("/api/consultation-submit", map[string]string{
			"name": "Ayesha", "email": "ayesha@example.com", "company": "Acme", "message": "Audit please",
		}))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Consultation request submitted successfully! We will be in touch shortly.", readJSON(t, resp)["message"])
		drain(t, svc)
		assert.Equal(t, 2, sender.count())
	})

	t.Run("missing name", func(t *testing.T) {
		sender := &fakeSender{}
		app, _ := newLeadApp(t, sender)

		resp, err := app.Test(jsonRequest("/api/consultation-submit", map[string]string{"email": "ayesha@example.com"}))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, readJSON(t, resp)["error"])
		assert.Zero(t, sender.count())
	})

	t.Run("operator failure", func(t *testing.T) {
		sender := &fakeSender{failFor: map[string]bool{operatorMailbox: true}}
		app, _ := newLeadApp(t, sender)

		resp, err := app.Test(jsonRequest("/api/consultation-submit", map[string]string{"name": "A", "email": "a@b.co"}))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.NotEmpty(t, readJSON(t, resp)["error"])
	})
}

func TestSubscribe(t *testing.T) {
	t.Run("default service", func(t *testing.T) {
		app, _ := newLeadApp(t, &fakeSender{})

		resp, err := app.Test(jsonRequest("/api/secureai-subscribe", map[string]string{"email": "a@b.co"}))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, `Successfully subscribed to updates for "SecureAI Updates"!`, readJSON(t, resp)["message"])
	})

	t.Run("named service", func(t *testing.T) {
		app, _ := newLeadApp(t, &fakeSender{})

		resp, err := app.Test(jsonRequest("/api/secureai-subscribe", map[string]string{"email": "a@b.co", "service": "Pen Testing"}))
		require.NoError(t, err)
		assert.Equal(t, `Successfully subscribed to updates for "Pen Testing"!`, readJSON(t, resp)["message"])
	})

	t.Run("missing email", func(t *testing.T) {
		sender := &fakeSender{}
		app, _ := newLeadApp(t, sender)

		resp, err := app.Test(jsonRequest("/api/secureai-subscribe", map[string]string{"service": "Pen Testing"}))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Email is required.", readJSON(t, resp)["error"])
		assert.Zero(t, sender.count())
	})
}
