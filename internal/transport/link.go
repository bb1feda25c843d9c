package transport

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/monitoring"
)

// Link reads newline-terminated lines from a Port on a background goroutine
// and hands them to the frame loop through Poll.
type Link struct {
	port  Port
	name  string
	lines chan string

	commandMu sync.Mutex

	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}

	errMu sync.Mutex
	err   error

	dropped int
}

// NewLink starts reading from port. name is shown in the UI.
func NewLink(port Port, name string) *Link {
	l := &Link{
		port:    port,
		name:    name,
		lines:   make(chan string, config.LineBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.read()
	return l
}

// Name describes the connected device.
func (l *Link) Name() string { return l.name }

// Lines exposes the receive channel. It is closed when the reader stops.
func (l *Link) Lines() <-chan string { return l.lines }

// Poll returns up to max buffered lines without blocking.
func (l *Link) Poll(max int) []string {
	var out []string
	for len(out) < max {
		select {
		case line, ok := <-l.lines:
			if !ok {
				return out
			}
			out = append(out, line)
		default:
			return out
		}
	}
	return out
}

// Err returns the error that stopped the reader, if any.
func (l *Link) Err() error {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	return l.err
}

// Alive reports whether the reader is still running.
func (l *Link) Alive() bool {
	select {
	case <-l.stopped:
		return false
	default:
		return true
	}
}

// SendCommand writes command followed by a newline.
func (l *Link) SendCommand(command string) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}

	l.commandMu.Lock()
	defer l.commandMu.Unlock()
	if !strings.HasSuffix(command, "\n") {
		command += "\n"
	}
	n, err := l.port.Write([]byte(command))
	if err != nil {
		return err
	}
	if n != len(command) {
		return ErrWriteFailed
	}
	monitoring.Logf("transport: sent %q", strings.TrimSpace(command))
	return nil
}

// Close stops the reader and closes the port.
func (l *Link) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.port.Close()
		<-l.stopped
	})
	return err
}

func (l *Link) read() {
	defer close(l.stopped)
	defer close(l.lines)

	var (
		pending []byte
		buf     = make([]byte, 512)
	)
	for {
		n, err := l.port.Read(buf)
		select {
		case <-l.done:
			return
		default:
		}

		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				i := bytes.IndexByte(pending, '\n')
				if i < 0 {
					break
				}
				l.deliver(pending[:i])
				pending = pending[i+1:]
			}
			pending = append([]byte(nil), pending...)
		}

		if err != nil {
			if len(pending) > 0 {
				l.deliver(pending)
			}
			if !errors.Is(err, io.EOF) {
				l.setErr(err)
				monitoring.Logf("transport: %s read: %v", l.name, err)
			}
			return
		}
		// A zero-byte read without error is a timeout; keep going.
	}
}

// deliver queues one line, dropping it if the frame loop has fallen behind.
func (l *Link) deliver(raw []byte) {
	line := strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
	if line == "" {
		return
	}
	select {
	case l.lines <- line:
	default:
		l.dropped++
		if l.dropped%100 == 1 {
			monitoring.Logf("transport: %s: dropped %d lines, reader is behind", l.name, l.dropped)
		}
	}
}

func (l *Link) setErr(err error) {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	l.err = err
}
