package formclient

import (
	"fmt"
	"time"

	"github.com/securewave/securewave_backend/pkg/lead"
)

const (
	SuccessClearDelay = 5 * time.Second
	ErrorClearDelay   = 10 * time.Second
)

// NetworkErrorMessage is shown when the request never got a response.
const NetworkErrorMessage = "A network error occurred. Please check your connection and try again."

type Kind int

const (
	KindOk Kind = iota
	KindTransportError
	KindServerError
)

func (k Kind) String() string {
	switch k {
	case KindOk:
		return "ok"
	case KindTransportError:
		return "transport_error"
	case KindServerError:
		return "server_error"
	}
	return "unknown"
}

// Result is the outcome of one submission request.
type Result struct {
	Kind Kind
	// Code and StatusText are set whenever a response was received.
	Code       int
	StatusText string
	// Message is the "message" (success) or "error" text of a JSON body, if
	// the server sent one.
	Message string
	// JSONBody reports whether the response body decoded as JSON.
	JSONBody bool
	// Location is the redirect target for endpoints that answer with one.
	Location string
	Err      error
}

func (r Result) OK() bool { return r.Kind == KindOk }

type Tone int

const (
	ToneNone Tone = iota
	ToneInfo
	ToneSuccess
	ToneError
)

func (t Tone) String() string {
	switch t {
	case ToneInfo:
		return "info"
	case ToneSuccess:
		return "success"
	case ToneError:
		return "error"
	}
	return ""
}

// Status is what the status element shows. A zero ClearAfter means the
// status stays until replaced.
type Status struct {
	Text       string
	Tone       Tone
	ClearAfter time.Duration
}

func (s Status) IsZero() bool { return s.Text == "" && s.Tone == ToneNone }

// Render turns a submission result into the status shown for variant v.
func Render(v lead.Variant, r Result) Status {
	switch r.Kind {
	case KindOk:
		text := r.Message
		if text == "" {
			text = v.SuccessMessage
		}
		return Status{Text: text, Tone: ToneSuccess, ClearAfter: SuccessClearDelay}
	case KindServerError:
		text := fmt.Sprintf("%s: %s (%d)", v.ErrorPrefix, r.StatusText, r.Code)
		switch {
		case r.Message != "":
			text = messageLabel(v) + ": " + r.Message
		case r.JSONBody:
			text = messageLabel(v) + ": " + r.StatusText
		}
		return Status{Text: text, Tone: ToneError, ClearAfter: ErrorClearDelay}
	default:
		text := v.NetworkErrorMessage
		if text == "" {
			text = NetworkErrorMessage
		}
		return Status{Text: text, Tone: ToneError, ClearAfter: ErrorClearDelay}
	}
}

// messageLabel prefixes error texts that come from a JSON response body.
func messageLabel(v lead.Variant) string {
	if v.MessageErrorPrefix != "" {
		return v.MessageErrorPrefix
	}
	return "Error"
}

func validationStatus(text string) Status {
	return Status{Text: text, Tone: ToneError}
}

func inProgressStatus(v lead.Variant) Status {
	return Status{Text: v.InProgressMessage, Tone: ToneInfo}
}
