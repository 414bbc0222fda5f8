package host

import (
	"bytes"
	"io"
	"sync"
)

const maxBacklog = 100

// Backlog is an io.Writer that holds the most recent lines written to it.
// It collects log output while a frontend owns the terminal.
type Backlog struct {
	mu    sync.Mutex
	lines [][]byte
	n     int
	part  []byte
}

func (b *Backlog) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			b.part = append(b.part, p...)
			break
		}
		line := append(b.part, p[:i+1]...)
		b.part = nil
		if len(b.lines) < maxBacklog {
			b.lines = append(b.lines, line)
		} else {
			b.lines[b.n] = line
		}
		b.n = (b.n + 1) % maxBacklog
		p = p[i+1:]
	}
	return n, nil
}

// Emit writes the held lines to w, oldest first, and empties the backlog.
func (b *Backlog) Emit(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := 0
	if len(b.lines) == maxBacklog {
		start = b.n
	}
	for i := range b.lines {
		if _, err := w.Write(b.lines[(start+i)%len(b.lines)]); err != nil {
			return err
		}
	}
	if len(b.part) > 0 {
		if _, err := w.Write(b.part); err != nil {
			return err
		}
	}
	b.lines, b.n, b.part = nil, 0, nil
	return nil
}
