package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/monitoring"
	"surroundsense.klederson.com/internal/radar"
	"surroundsense.klederson.com/internal/scan"
	"surroundsense.klederson.com/internal/snapshot"
	"surroundsense.klederson.com/internal/ui"
)

// Source is the sensor link polled once per frame.
type Source interface {
	Name() string
	Poll(max int) []string
	Alive() bool
	Err() error
}

// Config wires the model to its collaborators.
type Config struct {
	Controller *scan.Controller
	Source     Source
	Snapshot   snapshot.Options
	Now        func() time.Time
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	ctl     *scan.Controller
	source  Source
	cam     *radar.Camera
	glow    *radar.Afterglow
	history *DistanceRing
	snap    snapshot.Options
	now     func() time.Time
}

// AppModel is the root Bubble Tea model for SurroundSense.
type AppModel struct {
	width  int
	height int

	threeD     bool
	fullscreen bool
	snapping   bool
	linkLost   bool
	errors     int

	message   string
	messageOK bool
	messageAt time.Time

	dragging bool
	dragBtn  tea.MouseButton
	dragX    int
	dragY    int

	shared *shared
}

// New creates a new AppModel. The controller's reset hooks are extended to
// recenter the camera and clear the afterglow.
func New(cfg Config) AppModel {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	s := &shared{
		ctl:     cfg.Controller,
		source:  cfg.Source,
		cam:     radar.NewCamera(),
		glow:    radar.NewAfterglow(config.GlowFrames),
		history: NewDistanceRing(config.HistoryLen),
		snap:    cfg.Snapshot,
		now:     now,
	}
	s.ctl.OnReset(func() {
		s.cam.Reset()
		s.glow.Reset()
		s.history.Reset()
	})
	return AppModel{shared: s}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case TickMsg:
		m = m.drain()
		if m.threeD {
			m.shared.cam.Tick()
		}
		if m.message != "" && time.Time(msg).Sub(m.messageAt) >= config.StatusMessageTTL {
			m.message = ""
		}
		return m, tickCmd()

	case SnapshotMsg:
		m.snapping = false
		if msg.Err != nil {
			monitoring.Logf("app: snapshot failed: %v", msg.Err)
			return m.say("ERROR: could not save snapshot", false), nil
		}
		monitoring.Logf("app: snapshot saved to %s", msg.Path)
		return m.say("SUCCESS: saved "+msg.Path, true), nil
	}

	return m, nil
}

// drain feeds the lines that arrived since the last frame to the controller.
func (m AppModel) drain() AppModel {
	ctl := m.shared.ctl
	for _, line := range m.shared.source.Poll(config.MaxLinesPerFrame) {
		u, err := ctl.ApplyLine(line)
		if err != nil {
			m.errors++
			monitoring.Logf("scan: %v", err)
		}
		if u.Ignored {
			continue
		}
		if u.BeamOK {
			m.shared.glow.Record(u.Beam)
		}
		m.shared.history.Push(ctl.Sensor().Distance)
	}

	if !m.linkLost && !m.shared.source.Alive() {
		m.linkLost = true
		reason := "closed"
		if err := m.shared.source.Err(); err != nil {
			reason = err.Error()
		}
		monitoring.Logf("app: sensor link %s lost: %s", m.shared.source.Name(), reason)
		m = m.say("ERROR: sensor link lost ("+reason+")", false)
	}
	return m
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := m.shared.ctl
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "r", "R":
		ctl.Reset()
		monitoring.Logf("app: scan session %s started", ctl.SessionID())

	case "c", "C":
		if err := ctl.Calibrate(); err != nil {
			monitoring.Logf("app: calibrate: %v", err)
			return m.say("ERROR: calibration command not sent", false), nil
		}
		return m.say("SUCCESS: calibrated", true), nil

	case " ", "p", "P":
		ctl.TogglePause()

	case "i", "I":
		if err := ctl.IdleReset(); err != nil {
			monitoring.Logf("app: idle reset: %v", err)
			return m.say("ERROR: reset command not sent", false), nil
		}

	case "v", "V":
		m.threeD = !m.threeD
		m.dragging = false

	case "t", "T":
		if m.threeD {
			m.shared.cam.AutoRotate = !m.shared.cam.AutoRotate
		}

	case "f", "F", "f11":
		m.fullscreen = !m.fullscreen

	case "esc":
		m.fullscreen = false

	case "s", "S":
		if m.snapping {
			return m, nil
		}
		m.snapping = true
		return m, snapshotCmd(m.frame(), m.shared.snap)
	}

	return m, nil
}

// handleMouse moves the 3D camera: left drag orbits, right or middle drag
// pans and the wheel zooms.
func (m AppModel) handleMouse(msg tea.MouseMsg) AppModel {
	if !m.threeD {
		return m
	}
	cam := m.shared.cam

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		cam.Zoom(-config.CameraZoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		cam.Zoom(config.CameraZoomStep)
	case msg.Action == tea.MouseActionPress:
		m.dragging = true
		m.dragBtn = msg.Button
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	case msg.Action == tea.MouseActionMotion && m.dragging:
		dx := float64(msg.X - m.dragX)
		dy := float64(msg.Y - m.dragY)
		if m.dragBtn == tea.MouseButtonLeft {
			cam.Rotate(dx*config.DragRotateDegCol, dy*config.DragRotateDegCol/config.AspectRatio)
		} else {
			cam.Pan(dx*config.DragPanUnitsCol, dy*config.DragPanUnitsCol/config.AspectRatio)
		}
		m.dragX, m.dragY = msg.X, msg.Y
	}
	return m
}

// say shows a transient status bar message.
func (m AppModel) say(text string, ok bool) AppModel {
	m.message = text
	m.messageOK = ok
	m.messageAt = m.shared.now()
	return m
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}

	menuH := 1
	statusH := 1
	bodyH := max(m.height-menuH-statusH, 5)

	radarW := m.width
	sideW := 0
	if !m.fullscreen {
		radarW = max(m.width*3/4, 30)
		sideW = m.width - radarW
		if sideW < 24 {
			sideW = 24
			radarW = m.width - sideW
		}
	}

	ctl := m.shared.ctl
	menuBar := ui.RenderMenuBar(m.width, m.shared.source.Name(), ctl.State())

	innerW := max(radarW-4, 5)
	innerH := max(bodyH-4, 3)
	cv := radar.NewCellCanvas(innerW, innerH)
	m.draw(cv)
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, cv.String(), ui.RenderLegend(innerW, m.threeD))

	side := ""
	if sideW > 0 {
		side = ui.RenderSidePanel(m.sidePanel(), sideW, bodyH)
	}

	beam, beamOK := ctl.BeamAngle()
	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		State:     ctl.State(),
		Points:    ctl.Map().Len(),
		Objects:   len(ctl.Objects()),
		Beam:      beam,
		BeamOK:    beamOK,
		MaxRange:  ctl.Settings().MaxRange,
		Message:   m.message,
		MessageOK: m.messageOK,
	})

	return ui.ComposeLayout(menuBar, radarPanel, side, statusBar)
}

func (m AppModel) draw(cv radar.Canvas) {
	ctl := m.shared.ctl
	switch {
	case ctl.State() == scan.Idle:
		radar.RenderIdle(cv, ctl.Projection(), ctl.Settings().MaxRange)
	case m.threeD:
		radar.Render3D(cv, ctl.Mesh(config.ExtrusionScale, config.ExtrusionHeight), m.shared.cam, m.shared.cam.AutoRotate)
	default:
		radar.Render2D(cv, radar.SceneFrom(ctl, m.shared.glow))
	}
}

func (m AppModel) sidePanel() ui.SidePanel {
	ctl := m.shared.ctl
	cam := m.shared.cam
	return ui.SidePanel{
		Sensor: ui.SensorCard{
			Sensor:      ctl.Sensor(),
			Calibration: ctl.Calibration(),
			Target:      ctl.Target(),
			MaxRange:    ctl.Settings().MaxRange,
			History:     m.shared.history.Values(),
		},
		System: ui.SystemCard{
			State:     ctl.State(),
			Link:      m.shared.source.Name(),
			LinkAlive: !m.linkLost,
			Session:   ctl.SessionID(),
			Points:    ctl.Map().Len(),
			Objects:   len(ctl.Objects()),
			Errors:    m.errors,
		},
		View: ui.ViewCard{
			ThreeD:     m.threeD,
			AutoRotate: cam.AutoRotate,
			AngleX:     cam.AngleX,
			AngleY:     cam.AngleY,
			Distance:   cam.Distance,
		},
	}
}

// frame captures what the snapshot goroutine renders. Everything in it is a
// copy, so rendering can run off the update loop.
func (m AppModel) frame() snapshot.Frame {
	ctl := m.shared.ctl
	f := snapshot.Frame{
		Mode:   snapshot.Mode2D,
		Idle:   ctl.State() == scan.Idle,
		Scene:  radar.SceneFrom(ctl, m.shared.glow.Clone()),
		Camera: *m.shared.cam,
	}
	if m.threeD {
		f.Mode = snapshot.Mode3D
		f.Mesh = ctl.Mesh(config.ExtrusionScale, config.ExtrusionHeight)
	}
	return f
}

func snapshotCmd(f snapshot.Frame, opts snapshot.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := snapshot.Save(f, opts)
		return SnapshotMsg{Path: path, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
