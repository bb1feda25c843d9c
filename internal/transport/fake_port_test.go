package transport

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

// fakePort is a Port with scripted reads. Reads block until data is added,
// an error is injected or the port is closed; with timeout set an empty
// read returns (0, nil) like a serial port would.
type fakePort struct {
	mu      sync.Mutex
	cond    *sync.Cond
	read    bytes.Buffer
	written bytes.Buffer
	readErr error
	writeN  int // if > 0, short-write to this many bytes
	timeout time.Duration
	closed  bool
}

func newFakePort() *fakePort {
	p := &fakePort{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *fakePort) feed(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.read.WriteString(s)
	p.cond.Broadcast()
}

func (p *fakePort) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readErr = err
	p.cond.Broadcast()
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.closed && p.readErr == nil && p.read.Len() == 0 {
		if p.timeout > 0 {
			p.mu.Unlock()
			time.Sleep(p.timeout)
			p.mu.Lock()
			if p.read.Len() == 0 && p.readErr == nil && !p.closed {
				return 0, nil
			}
			continue
		}
		p.cond.Wait()
	}
	if p.closed {
		return 0, errors.New("port closed")
	}
	if p.read.Len() > 0 {
		return p.read.Read(b)
	}
	return 0, p.readErr
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, errors.New("port closed")
	}
	if p.writeN > 0 && p.writeN < len(b) {
		p.written.Write(b[:p.writeN])
		return p.writeN, nil
	}
	return p.written.Write(b)
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.cond.Broadcast()
	return nil
}

func (p *fakePort) SetReadTimeout(d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeout = d
	return nil
}

func (p *fakePort) writtenString() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.String()
}
