package transport

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"surroundsense.klederson.com/internal/monitoring"
)

// demoObstacle is an arc of the simulated room that returns an echo.
type demoObstacle struct {
	name     string
	bearing  float64 // Degrees, 90 = straight ahead
	width    float64 // Degrees
	distance float64 // cm
}

var demoRoom = []demoObstacle{
	{"Wall", 20, 30, 55},
	{"Box", 70, 14, 28},
	{"Chair", 115, 18, 42},
	{"Person", 150, 10, 18},
}

// DemoOptions tunes the simulated sensor.
type DemoOptions struct {
	Seed     int64
	Interval time.Duration // Time between emitted lines
	Heading  float64       // Raw yaw when the sensor faces straight ahead
	Span     float64       // Sweep amplitude either side of center, degrees
	Period   time.Duration // Time for one full left-right sweep
}

// DefaultDemoOptions returns a sweep that covers the whole half plane.
func DefaultDemoOptions() DemoOptions {
	return DemoOptions{
		Seed:     time.Now().UnixNano(),
		Interval: 20 * time.Millisecond,
		Heading:  200,
		Span:     88,
		Period:   6 * time.Second,
	}
}

// demoSensor produces the text lines a real sweeping sensor would print.
type demoSensor struct {
	opts    DemoOptions
	rng     *rand.Rand
	t       float64
	lastYaw float64
}

func newDemoSensor(opts DemoOptions) *demoSensor {
	return &demoSensor{
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		lastYaw: opts.Heading,
	}
}

// next advances the simulation by dt seconds and returns one line.
func (s *demoSensor) next(dt float64) string {
	s.t += dt
	period := s.opts.Period.Seconds()
	if period <= 0 {
		period = 6
	}
	offset := s.opts.Span * math.Sin(2*math.Pi*s.t/period)
	yaw := math.Mod(s.opts.Heading+offset+360, 360)

	// Yaw grows counter-clockwise, the bearing clockwise.
	bearing := 90 - offset

	direction := "Stationary"
	switch d := yaw - s.lastYaw; {
	case d > 0.05 && d < 180, d < -180:
		direction = "Left"
	case d < -0.05, d >= 180:
		direction = "Right"
	}
	s.lastYaw = yaw

	gyro := "Still"
	if direction != "Stationary" {
		gyro = "Moving"
	}

	object, dist := "None", 70+s.rng.Float64()*80
	for _, o := range demoRoom {
		if math.Abs(bearing-o.bearing) <= o.width/2 {
			object = o.name
			dist = o.distance + (s.rng.Float64()-0.5)*1.5
			break
		}
	}
	// Ultrasonic sensors throw the occasional wild echo.
	if s.rng.Float64() < 0.02 {
		dist = s.rng.Float64() * 300
	}

	return fmt.Sprintf("distance=%.1f,yaw=%.2f,direction=%s,object=%s,gyro=%s",
		dist, yaw, direction, object, gyro)
}

// restart puts the sweep back at its starting heading.
func (s *demoSensor) restart() {
	s.t = 0
	s.lastYaw = s.opts.Heading
}

// DemoPort is a Port backed by a simulated sensor. Commands written to it are
// recorded and logged; RESET restarts the sweep.
type DemoPort struct {
	sensor *demoSensor
	r      *io.PipeReader
	w      *io.PipeWriter
	cancel context.CancelFunc

	mu       sync.Mutex
	commands []string
}

// NewDemoPort starts the simulator.
func NewDemoPort(opts DemoOptions) *DemoPort {
	if opts.Interval <= 0 {
		opts.Interval = DefaultDemoOptions().Interval
	}
	r, w := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	p := &DemoPort{
		sensor: newDemoSensor(opts),
		r:      r,
		w:      w,
		cancel: cancel,
	}
	go p.loop(ctx, opts.Interval)
	return p
}

func (p *DemoPort) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer p.w.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			line := p.sensor.next(interval.Seconds())
			p.mu.Unlock()
			if _, err := io.WriteString(p.w, line+"\r\n"); err != nil {
				return
			}
		}
	}
}

// Read returns simulated sensor output.
func (p *DemoPort) Read(b []byte) (int, error) {
	return p.r.Read(b)
}

// Write records a command.
func (p *DemoPort) Write(b []byte) (int, error) {
	cmd := strings.TrimSpace(string(b))
	p.mu.Lock()
	p.commands = append(p.commands, cmd)
	if cmd == "RESET" {
		p.sensor.restart()
	}
	p.mu.Unlock()
	monitoring.Logf("transport: demo sensor received %q", cmd)
	return len(b), nil
}

// Commands returns every command written so far.
func (p *DemoPort) Commands() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.commands...)
}

// Close stops the simulator.
func (p *DemoPort) Close() error {
	p.cancel()
	return p.r.Close()
}
