// Package scan turns raw yaw/distance samples from a rotating range sensor
// into a calibrated, de-duplicated polar map that renderers can draw.
//
// Everything in this package is driven synchronously by a single caller (the
// frame loop). Nothing here is safe for concurrent mutation; readers take
// copies through the accessor methods.
package scan

import (
	"strings"

	"surroundsense.klederson.com/internal/config"
)

// Sample is a sparse update decoded from one sensor line. Nil fields were not
// present (or were malformed) and leave the sensor state untouched.
type Sample struct {
	Distance  *float64
	Yaw       *float64
	Direction *string
	Object    *string
	Gyro      *string
}

// Empty reports whether the sample carries no recognized field at all.
func (s Sample) Empty() bool {
	return s.Distance == nil && s.Yaw == nil && s.Direction == nil && s.Object == nil && s.Gyro == nil
}

// SensorState is the latest known value of every sensor field.
type SensorState struct {
	DistanceRaw float64 // As reported by the sensor, cm
	Distance    float64 // After the median filter, cm
	YawRaw      float64 // Wrapped into [0, 360)
	YawInstant  float64
	Direction   string
	Object      string
	Gyro        string
}

// DefaultSensorState returns the state shown before any sample arrives.
func DefaultSensorState() SensorState {
	return SensorState{
		YawRaw:     config.CenterAngle,
		YawInstant: config.CenterAngle,
		Direction:  "Stationary",
		Object:     "None",
		Gyro:       "Still",
	}
}

// ObjectDetected reports whether the sensor labels something in front of it.
func (s SensorState) ObjectDetected() bool {
	return !strings.EqualFold(strings.TrimSpace(s.Object), "none")
}

// Calibration captures the yaw offset that makes "straight ahead" read 90°.
type Calibration struct {
	Calibrated bool
	YawOffset  float64
}

// State is the lifecycle state of the scan pipeline.
type State int

const (
	Idle State = iota
	Scanning
	Paused
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "SCANNING"
	case Paused:
		return "PAUSED"
	default:
		return "IDLE"
	}
}
