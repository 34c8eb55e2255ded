package formclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ValueFields is a fixed set of input values.
type ValueFields map[string]string

func (f ValueFields) Values() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Reset empties every value.
func (f ValueFields) Reset() {
	for k := range f {
		f[k] = ""
	}
}

// WriterStatus prints each status as one line, prefixed by its tone.
type WriterStatus struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *WriterStatus) Show(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.IsZero() {
		return
	}
	fmt.Fprintf(s.W, "[%s] %s\n", strings.ToUpper(st.Tone.String()), st.Text)
}

func (s *WriterStatus) Clear() {}
