package email

import "context"

// Sender delivers one message per call and reports success or failure for
// that call only.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

type Message struct {
	To       []string
	CC       []string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, m Message) error

func (f SenderFunc) Send(ctx context.Context, m Message) error { return f(ctx, m) }
