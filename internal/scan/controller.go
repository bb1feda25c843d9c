package scan

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"surroundsense.klederson.com/internal/config"
)

// Control commands written back to the sensor. The transport appends "\n".
const (
	CmdCalibrate = "CALIB"
	CmdReset     = "RESET"
)

// Commander sends control commands to the sensor.
type Commander interface {
	SendCommand(command string) error
}

// Settings configures a Controller.
type Settings struct {
	MaxRange        float64
	BeamWindow      int
	MapWindow       int
	MedianWindow    int
	SendResetOnIdle bool
	Projection      Projection
}

// DefaultSettings returns the compiled-in pipeline settings.
func DefaultSettings() Settings {
	return Settings{
		MaxRange:     config.MaxRangeCM,
		BeamWindow:   config.BeamSmoothN,
		MapWindow:    config.MapSmoothN,
		MedianWindow: config.MedianWindow,
		Projection:   DefaultProjection(),
	}
}

// Update reports what one sample did to the pipeline.
type Update struct {
	Ignored  bool // Pipeline was not scanning
	Beam     float64
	BeamOK   bool
	MapAngle float64
	MapOK    bool
	Point    ScanPoint
	Stored   bool
	Err      error
}

// Controller owns all mutable scan state: sensor readings, calibration,
// smoothing buffers, the distance filter and the scan map.
type Controller struct {
	settings Settings

	state  State
	sensor SensorState
	calib  Calibration

	beam   *AngleCalibrator
	mapper *AngleCalibrator
	filter *DistanceFilter
	points *ScanMap

	beamAngle float64
	beamOK    bool

	session   string
	newID     func() string
	commander Commander
	onReset   []func()
}

// Option customizes a Controller.
type Option func(*Controller)

// WithCommander attaches the control channel used for CALIB and RESET.
func WithCommander(c Commander) Option {
	return func(ctl *Controller) { ctl.commander = c }
}

// WithSessionIDs replaces the session ID generator.
func WithSessionIDs(f func() string) Option {
	return func(ctl *Controller) { ctl.newID = f }
}

// NewController creates an idle controller.
func NewController(s Settings, opts ...Option) *Controller {
	if s.MaxRange <= 0 {
		s.MaxRange = config.MaxRangeCM
	}
	if s.Projection.Scale == 0 {
		s.Projection = DefaultProjection()
	}
	c := &Controller{
		settings: s,
		state:    Idle,
		sensor:   DefaultSensorState(),
		beam:     NewAngleCalibrator(s.BeamWindow),
		mapper:   NewAngleCalibrator(s.MapWindow),
		filter:   NewDistanceFilter(s.MedianWindow, s.MaxRange),
		points:   NewScanMap(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnReset registers a hook run after Reset and IdleReset, e.g. to recenter a
// 3D camera.
func (c *Controller) OnReset(f func()) {
	c.onReset = append(c.onReset, f)
}

// Reset clears the scan and starts a new session in the Scanning state.
// Calibration survives.
func (c *Controller) Reset() {
	c.clear()
	c.state = Scanning
	c.session = c.newID()
	c.runResetHooks()
}

// IdleReset clears everything, calibration included, and returns to Idle.
// The RESET command is sent when configured; a send failure is returned but
// the local reset has already happened.
func (c *Controller) IdleReset() error {
	c.clear()
	c.calib = Calibration{}
	c.state = Idle
	c.session = ""
	c.runResetHooks()

	if !c.settings.SendResetOnIdle {
		return nil
	}
	return c.send(CmdReset)
}

// Calibrate takes the current instant yaw as "straight ahead". The state is
// unchanged. A CALIB send failure is returned; calibration still applies.
func (c *Controller) Calibrate() error {
	c.calib = Calibration{
		Calibrated: true,
		YawOffset:  c.sensor.YawInstant - config.CenterAngle,
	}
	c.beam.Prewarm()
	c.mapper.Prewarm()
	c.filter.Reset()
	return c.send(CmdCalibrate)
}

// Pause freezes accumulation. Only valid while scanning.
func (c *Controller) Pause() {
	if c.state == Scanning {
		c.state = Paused
	}
}

// Resume restarts accumulation after Pause.
func (c *Controller) Resume() {
	if c.state == Paused {
		c.state = Scanning
	}
}

// TogglePause flips between Scanning and Paused.
func (c *Controller) TogglePause() {
	switch c.state {
	case Scanning:
		c.state = Paused
	case Paused:
		c.state = Scanning
	}
}

// ApplyLine parses and applies one raw sensor line. Field errors are
// returned alongside the update; the valid fields are still applied.
func (c *Controller) ApplyLine(line string) (Update, error) {
	if c.state != Scanning {
		return Update{Ignored: true}, nil
	}
	fields := ParseLine(line)
	if len(fields) == 0 {
		return Update{Ignored: true}, fmt.Errorf("line %q: %w", line, ErrNoFields)
	}
	s, err := DecodeSample(fields)
	u := c.Apply(s)
	return u, errors.Join(err, u.Err)
}

// Apply folds one sample into the pipeline. It never panics: a failure in the
// step is returned in Update.Err and the next sample starts clean.
func (c *Controller) Apply(s Sample) (u Update) {
	if c.state != Scanning {
		return Update{Ignored: true}
	}
	defer func() {
		if r := recover(); r != nil {
			u = Update{Err: fmt.Errorf("scan: sample update: %v", r)}
		}
	}()

	if s.Distance != nil {
		c.sensor.DistanceRaw = *s.Distance
		c.sensor.Distance = c.filter.Filter(*s.Distance)
	}
	if s.Yaw != nil {
		y := Wrap360(*s.Yaw)
		c.sensor.YawRaw = y
		c.sensor.YawInstant = y
	}
	if s.Direction != nil {
		c.sensor.Direction = *s.Direction
	}
	if s.Object != nil {
		c.sensor.Object = *s.Object
	}
	if s.Gyro != nil {
		c.sensor.Gyro = *s.Gyro
	}

	u.Beam, u.BeamOK = c.beam.Compute(c.sensor.YawInstant, c.calib)
	c.beamAngle, c.beamOK = u.Beam, u.BeamOK

	u.MapAngle, u.MapOK = c.mapper.Compute(c.sensor.YawRaw, c.calib)
	if !u.MapOK || u.MapAngle < 0 || u.MapAngle > 180 {
		return u
	}

	key := int(math.RoundToEven(u.MapAngle))
	hasObject := c.Target()
	display := c.settings.MaxRange
	if hasObject {
		display = clamp(c.sensor.Distance, 0, c.settings.MaxRange)
	}
	p := ScanPoint{
		AngleKey:  key,
		Coord:     c.settings.Projection.PolarToXY(float64(key), display),
		HasObject: hasObject,
		Distance:  c.sensor.Distance,
	}
	if err := c.points.Put(p); err != nil {
		u.Err = err
		return u
	}
	u.Point, u.Stored = p, true
	return u
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Sensor returns a copy of the latest sensor state.
func (c *Controller) Sensor() SensorState { return c.sensor }

// Calibration returns the current calibration.
func (c *Controller) Calibration() Calibration { return c.calib }

// SessionID identifies the current scan; empty while idle.
func (c *Controller) SessionID() string { return c.session }

// Settings returns the controller settings.
func (c *Controller) Settings() Settings { return c.settings }

// Projection returns the projection used for stored coordinates.
func (c *Controller) Projection() Projection { return c.settings.Projection }

// BeamAngle returns the beam angle of the last update. It is undefined while
// idle and after a sample that pointed behind the sensor.
func (c *Controller) BeamAngle() (float64, bool) {
	if c.state == Idle {
		return 0, false
	}
	return c.beamAngle, c.beamOK
}

// Target reports whether the sensor currently sees an object in range.
// A reading exactly at max range counts as nothing there.
func (c *Controller) Target() bool {
	return c.sensor.ObjectDetected() && c.sensor.Distance < c.settings.MaxRange
}

// BeamDistance is the distance the beam is drawn to: the reading when a target
// is in range, otherwise max range.
func (c *Controller) BeamDistance() float64 {
	if c.Target() {
		return clamp(c.sensor.Distance, 0, c.settings.MaxRange)
	}
	return c.settings.MaxRange
}

// Points returns the scan map contents in ascending angle order.
func (c *Controller) Points() []ScanPoint { return c.points.Points() }

// Objects returns the points that saw an object, ascending.
func (c *Controller) Objects() []ScanPoint { return c.points.Objects() }

// Map returns a read-only view of the scan map.
func (c *Controller) Map() ScanView { return c.points }

// Mesh extrudes the current object points.
func (c *Controller) Mesh(scale, height float64) Mesh {
	return Extrude(c.points.Points(), scale, height)
}

func (c *Controller) clear() {
	c.points.Clear()
	c.beam.Reset()
	c.mapper.Reset()
	c.filter.Reset()
	c.sensor = DefaultSensorState()
	c.beamAngle, c.beamOK = 0, false
}

func (c *Controller) runResetHooks() {
	for _, f := range c.onReset {
		f()
	}
}

func (c *Controller) send(cmd string) error {
	if c.commander == nil {
		return nil
	}
	if err := c.commander.SendCommand(cmd); err != nil {
		return fmt.Errorf("send %s: %w", cmd, err)
	}
	return nil
}
