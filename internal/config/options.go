package config

import (
	"errors"
	"fmt"
	"strings"
)

// Options holds the runtime settings collected from command line flags.
// The zero value is not valid; start from DefaultOptions.
type Options struct {
	Port      string
	Baud      int
	BLE       bool
	BLEName   string
	Demo      bool
	LogFile   string
	SendReset bool

	MaxRange     float64
	BeamSmooth   int
	MapSmooth    int
	MedianWindow int

	SnapshotFormat      string
	SnapshotDir         string
	SnapshotSupersample int
}

// DefaultOptions returns the compiled-in defaults.
func DefaultOptions() Options {
	return Options{
		Baud:                BaudRate,
		MaxRange:            MaxRangeCM,
		BeamSmooth:          BeamSmoothN,
		MapSmooth:           MapSmoothN,
		MedianWindow:        MedianWindow,
		SnapshotFormat:      "png",
		SnapshotSupersample: 2,
	}
}

// Validate checks option ranges and normalizes free-form values.
func (o *Options) Validate() error {
	var errs []error

	if o.MaxRange <= 0 {
		errs = append(errs, fmt.Errorf("max range must be positive, got %v", o.MaxRange))
	}
	if o.BeamSmooth < 1 {
		errs = append(errs, fmt.Errorf("beam smoothing window must be at least 1, got %d", o.BeamSmooth))
	}
	if o.MapSmooth < 1 {
		errs = append(errs, fmt.Errorf("map smoothing window must be at least 1, got %d", o.MapSmooth))
	}
	if o.MedianWindow < 1 {
		errs = append(errs, fmt.Errorf("median window must be at least 1, got %d", o.MedianWindow))
	}
	if o.SnapshotSupersample < 1 || o.SnapshotSupersample > 4 {
		errs = append(errs, fmt.Errorf("snapshot supersample must be between 1 and 4, got %d", o.SnapshotSupersample))
	}
	if o.BLE && o.Port != "" {
		errs = append(errs, errors.New("--ble and --port are mutually exclusive"))
	}
	if o.Demo && (o.BLE || o.Port != "") {
		errs = append(errs, errors.New("--demo cannot be combined with --port or --ble"))
	}

	o.SnapshotFormat = strings.ToLower(strings.TrimSpace(o.SnapshotFormat))
	switch o.SnapshotFormat {
	case "png", "webp":
	default:
		errs = append(errs, fmt.Errorf("unsupported snapshot format %q: expected png or webp", o.SnapshotFormat))
	}

	return errors.Join(errs...)
}
