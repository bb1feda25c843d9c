// Package transport moves text lines between the sensor and the scan pipeline.
// A sensor is reached over a USB serial adapter, a BLE UART bridge, or the
// built-in demo simulator; all of them look like a Port.
package transport

import (
	"errors"
	"io"
	"time"
)

var (
	// ErrNoDevice means no sensor could be found to connect to.
	ErrNoDevice = errors.New("no sensor device found")

	// ErrWriteFailed means a command was only partially written.
	ErrWriteFailed = errors.New("failed to write to sensor port")

	// ErrClosed is returned by operations on a closed link or port.
	ErrClosed = errors.New("transport closed")
)

// Port is the byte stream to and from a sensor.
type Port interface {
	io.ReadWriteCloser
}

// TimeoutPort is a Port whose reads can return early with no data.
type TimeoutPort interface {
	Port
	SetReadTimeout(timeout time.Duration) error
}
