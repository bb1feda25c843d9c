package transport

import (
	"fmt"
	"strings"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/monitoring"
)

// probeKeywords identify USB serial bridges commonly found on sensor boards.
var probeKeywords = []string{"ARDUINO", "CH340", "CH341", "FTDI", "USB-SERIAL"}

// probeNames are device name fragments used when no USB metadata is available.
var probeNames = []string{"ttyUSB", "ttyACM", "usbserial", "usbmodem"}

// Enumerator lists candidate serial ports. It is a variable so tests and
// platforms without USB metadata can replace it.
var Enumerator = func() ([]*enumerator.PortDetails, error) {
	return enumerator.GetDetailedPortsList()
}

// Discover returns the first serial port that looks like a sensor.
func Discover() (string, error) {
	ports, err := Enumerator()
	if err != nil {
		return "", fmt.Errorf("enumerate serial ports: %w", err)
	}
	for _, p := range ports {
		if matchesSensor(p) {
			monitoring.Logf("transport: discovered %s (%s %s:%s)", p.Name, p.Product, p.VID, p.PID)
			return p.Name, nil
		}
	}
	return "", ErrNoDevice
}

func matchesSensor(p *enumerator.PortDetails) bool {
	desc := strings.ToUpper(p.Product + " " + p.Name)
	for _, kw := range probeKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	// FTDI and WCH bridges, by vendor ID
	switch strings.ToUpper(p.VID) {
	case "0403", "1A86", "2341", "2A03":
		return true
	}
	if !p.IsUSB {
		return false
	}
	for _, n := range probeNames {
		if strings.Contains(p.Name, n) {
			return true
		}
	}
	return false
}

// OpenSerial opens path with the given options and a short read timeout so the
// reader can notice Close.
func OpenSerial(path string, opts PortOptions) (Port, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := port.SetReadTimeout(config.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", path, err)
	}

	monitoring.Logf("transport: opened %s at %d baud", path, mode.BaudRate)
	return port, nil
}
