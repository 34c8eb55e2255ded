// Package widget renders the bootstrap snippets for the third-party page
// widgets: scroll animations, the office map and the chat agent. The
// widgets themselves run in the browser; this package only turns
// configuration into validated markup.
package widget

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/securewave/securewave_backend/config"
)

var ErrInvalidConfig = errors.New("invalid widget configuration")

// Widget turns its configuration into a Handle.
type Widget interface {
	Name() string
	Initialize() (*Handle, error)
}

// Handle is an initialized widget: the markup a page includes to load it and
// the settings the markup was rendered from.
type Handle struct {
	Name string `json:"name"`
	// Head goes into the document head, Body at the end of the body.
	Head     template.HTML `json:"head,omitempty"`
	Body     template.HTML `json:"body"`
	Settings any           `json:"settings"`
}

// FromConfig returns the configured widgets. A disabled chat widget is left out.
func FromConfig(cfg config.WidgetsConfig) []Widget {
	ws := []Widget{
		NewAnimation(cfg.Animation),
		NewMap(cfg.Map),
	}
	if cfg.Chat.Enabled {
		ws = append(ws, NewChat(cfg.Chat))
	}
	return ws
}

// InitializeAll initializes every widget and reports all failures together.
func InitializeAll(ws []Widget) ([]*Handle, error) {
	handles := make([]*Handle, 0, len(ws))
	var errs []error
	for _, w := range ws {
		h, err := w.Initialize()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		handles = append(handles, h)
	}
	return handles, errors.Join(errs...)
}

func invalid(widget, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, widget, fmt.Sprintf(format, args...))
}

func render(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template
}
