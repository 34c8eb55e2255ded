package email

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securewave/securewave_backend/config"
)

func TestBuildMessage_Validation(t *testing.T) {
	valid := Message{To: []string{"a@example.com"}, Subject: "Hi", TextBody: "body"}

	tests := []struct {
		name    string
		from    string
		mutate  func(m *Message)
		wantErr bool
	}{
		{name: "valid", from: "noreply@example.com", mutate: func(*Message) {}},
		{name: "missing from", from: "  ", mutate: func(*Message) {}, wantErr: true},
		{name: "blank recipients", from: "noreply@example.com", mutate: func(m *Message) { m.To = []string{" "} }, wantErr: true},
		{name: "missing subject", from: "noreply@example.com", mutate: func(m *Message) { m.Subject = "" }, wantErr: true},
		{name: "missing body", from: "noreply@example.com", mutate: func(m *Message) { m.TextBody = "" }, wantErr: true},
		{name: "html only", from: "noreply@example.com", mutate: func(m *Message) { m.TextBody = ""; m.HTMLBody = "<p>x</p>" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			_, err := buildMessage(tt.from, m)
			if tt.wantErr {
				var invalid ErrInvalidMessage
				assert.True(t, errors.As(err, &invalid), "expected ErrInvalidMessage, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClientSend_Disabled(t *testing.T) {
	c, err := New(Config{Enabled: false})
	require.NoError(t, err)

	err = c.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrDisabled{})
}

func TestNew_RequiresHostWhenEnabled(t *testing.T) {
	_, err := New(Config{Enabled: true})
	assert.Error(t, err)
}

func TestNewFromCentral_Drivers(t *testing.T) {
	s, err := NewFromCentral(config.EmailConfig{Enabled: true, Driver: "log", From: "noreply@example.com"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	s, err = NewFromCentral(config.EmailConfig{Enabled: true, From: "noreply@example.com", SMTP: config.SMTPConfig{Host: "smtp.example.com", Port: 587}}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Client{}, s)

	_, err = NewFromCentral(config.EmailConfig{Driver: "carrier-pigeon"}, nil)
	assert.Error(t, err)
}

func TestFromCentralConfig_KeepsDefaults(t *testing.T) {
	got := FromCentralConfig(config.EmailConfig{Enabled: true, SMTP: config.SMTPConfig{Host: "smtp.example.com"}})

	def := DefaultConfig()
	assert.Equal(t, def.Driver, got.Driver)
	assert.Equal(t, def.SMTPPort, got.SMTPPort)
	assert.Equal(t, def.SMTPTimeoutSeconds, got.SMTPTimeoutSeconds)
	assert.True(t, got.Enabled)

	got = FromCentralConfig(config.EmailConfig{Driver: " LOG ", SMTP: config.SMTPConfig{Port: 2525, TimeoutSeconds: 5}})
	assert.Equal(t, DriverLog, got.Driver)
	assert.Equal(t, 2525, got.SMTPPort)
	assert.Equal(t, 5, got.SMTPTimeoutSeconds)
}

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := NewLogSender(Config{Enabled: true, From: "noreply@example.com"}, logger)

	err := s.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "Hello", TextBody: "body"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hello")

	err = s.Send(context.Background(), Message{To: []string{"a@example.com"}})
	assert.Error(t, err)
}
