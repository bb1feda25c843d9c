package app

import "time"

// TickMsg triggers a frame update.
type TickMsg time.Time

// SnapshotMsg reports a finished snapshot export.
type SnapshotMsg struct {
	Path string
	Err  error
}
