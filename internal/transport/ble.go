package transport

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/monitoring"
)

// bleChunk is the payload size that fits the default ATT MTU.
const bleChunk = 20

// BLEOptions selects which UART bridge to connect to.
type BLEOptions struct {
	// Name matches the advertised local name, case-insensitively. An empty
	// name accepts the first device advertising the Nordic UART service.
	Name        string
	ScanTimeout time.Duration
}

// BLEPort is a Port over the Nordic UART service of a BLE bridge (HM-10 style
// modules, nRF boards, ESP32 sketches).
type BLEPort struct {
	write      func([]byte) (int, error)
	disconnect func() error

	chunks  chan []byte
	pending []byte

	closeOnce sync.Once
	done      chan struct{}
}

// OpenBLE scans for a UART bridge, connects and subscribes to its TX
// characteristic. The returned name is the advertised name or address.
func OpenBLE(opts BLEOptions) (*BLEPort, string, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, "", fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	result, err := scanForBridge(adapter, opts)
	if err != nil {
		return nil, "", err
	}
	name := result.LocalName()
	if name == "" {
		name = result.Address.String()
	}
	monitoring.Logf("transport: connecting to %s (%d dBm)", name, result.RSSI)

	device, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, "", fmt.Errorf("connect %s: %w", name, err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{bluetooth.ServiceUUIDNordicUART})
	if err != nil || len(services) == 0 {
		_ = device.Disconnect()
		return nil, "", fmt.Errorf("discover UART service on %s: %w", name, orNoDevice(err))
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{
		bluetooth.CharacteristicUUIDUARTRX,
		bluetooth.CharacteristicUUIDUARTTX,
	})
	if err != nil {
		_ = device.Disconnect()
		return nil, "", fmt.Errorf("discover UART characteristics on %s: %w", name, err)
	}

	p := &BLEPort{
		disconnect: device.Disconnect,
		chunks:     make(chan []byte, 64),
		done:       make(chan struct{}),
	}

	var subscribed bool
	for _, c := range chars {
		switch c.UUID() {
		case bluetooth.CharacteristicUUIDUARTRX:
			p.write = c.WriteWithoutResponse
		case bluetooth.CharacteristicUUIDUARTTX:
			if err := c.EnableNotifications(p.notify); err != nil {
				_ = device.Disconnect()
				return nil, "", fmt.Errorf("subscribe to %s: %w", name, err)
			}
			subscribed = true
		}
	}
	if p.write == nil || !subscribed {
		_ = device.Disconnect()
		return nil, "", fmt.Errorf("%s: incomplete UART service: %w", name, ErrNoDevice)
	}

	return p, name, nil
}

func scanForBridge(adapter *bluetooth.Adapter, opts BLEOptions) (bluetooth.ScanResult, error) {
	timeout := opts.ScanTimeout
	if timeout <= 0 {
		timeout = config.BLEScanTimeout
	}
	want := strings.ToLower(strings.TrimSpace(opts.Name))

	var (
		found bluetooth.ScanResult
		ok    bool
	)
	timer := time.AfterFunc(timeout, func() { _ = adapter.StopScan() })
	defer timer.Stop()

	err := adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		name := strings.ToLower(result.LocalName())
		match := result.HasServiceUUID(bluetooth.ServiceUUIDNordicUART)
		if want != "" {
			match = strings.Contains(name, want)
		}
		if match {
			found, ok = result, true
			_ = adapter.StopScan()
		}
	})
	if err != nil {
		return found, fmt.Errorf("BLE scan: %w", err)
	}
	if !ok {
		return found, ErrNoDevice
	}
	return found, nil
}

func orNoDevice(err error) error {
	if err != nil {
		return err
	}
	return ErrNoDevice
}

// notify runs on the BLE stack's goroutine; it must not block.
func (p *BLEPort) notify(buf []byte) {
	chunk := append([]byte(nil), buf...)
	select {
	case p.chunks <- chunk:
	case <-p.done:
	default:
		monitoring.Logf("transport: BLE receive buffer full, dropped %d bytes", len(chunk))
	}
}

// Read blocks until a notification arrives or the port is closed.
func (p *BLEPort) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		select {
		case chunk := <-p.chunks:
			p.pending = chunk
		case <-p.done:
			return 0, ErrClosed
		}
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

// Write sends b in MTU-sized pieces.
func (p *BLEPort) Write(b []byte) (int, error) {
	select {
	case <-p.done:
		return 0, ErrClosed
	default:
	}
	written := 0
	for written < len(b) {
		end := min(written+bleChunk, len(b))
		n, err := p.write(b[written:end])
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Close disconnects from the bridge.
func (p *BLEPort) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)
		if p.disconnect != nil {
			err = p.disconnect()
		}
	})
	return err
}
