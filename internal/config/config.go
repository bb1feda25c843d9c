package config

import "time"

const (
	// Sensor range and projection
	MaxRangeCM   = 70.0 // Readings at or beyond this count as "nothing there"
	PixelScale   = 5.0  // Projected units per centimeter
	RingStepCM   = 10   // Range ring spacing
	SpokeStepDeg = 30   // Angle spoke spacing

	// Angle smoothing
	BeamSmoothN = 2 // Beam follows the sensor closely
	MapSmoothN  = 3 // Map keys are steadier
	CenterAngle = 90.0

	// Distance median filter
	MedianWindow = 5

	// 3D extrusion
	ExtrusionHeight = 50.0
	ExtrusionScale  = PixelScale * 0.3

	// 3D camera
	CameraAngleX     = -30.0
	CameraAngleY     = 0.0
	CameraDistance   = 400.0
	CameraMinDist    = 100.0
	CameraMaxDist    = 1500.0
	CameraZoomStep   = 40.0
	AutoRotateDeg    = 0.5 // Degrees per frame
	DragRotateDegCol = 2.0 // Degrees per terminal column dragged
	DragPanUnitsCol  = 6.0 // Mesh units per terminal column dragged

	// Radar display
	AspectRatio  = 0.5 // Terminal char aspect correction (chars are ~2:1 tall)
	BeamTrailDeg = 20.0
	GlowFrames   = 12 // Past beam positions kept for the afterglow
	HistoryLen   = 64 // Distance samples kept for the sparkline
	TargetFPS    = 60

	// Transport
	BaudRate         = 9600
	ReadTimeout      = 100 * time.Millisecond
	LineBuffer       = 256 // Lines queued between reader and frame loop
	MaxLinesPerFrame = 32
	BLEScanTimeout   = 10 * time.Second

	// Snapshot
	SnapshotPrefix   = "SurroundSense_Radar"
	SnapshotWidth    = 1177
	SnapshotHeight   = 630
	StatusMessageTTL = 4 * time.Second

	// App
	AppName    = "SURROUNDSENSE"
	AppVersion = "1.0"
)
