package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"surroundsense.klederson.com/internal/app"
	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/monitoring"
	"surroundsense.klederson.com/internal/scan"
	"surroundsense.klederson.com/internal/snapshot"
	"surroundsense.klederson.com/internal/transport"
)

var opts = config.DefaultOptions()

func main() {
	rootCmd := &cobra.Command{
		Use:   "surroundsense",
		Short: "SurroundSense - terminal radar for a rotating range sensor",
		Long: `SurroundSense reads distance and yaw samples from an Arduino-style
rotating range sensor and draws them as a polar radar scan, with an
extruded 3D view of the surroundings.

The sensor is found automatically on the first USB serial port; use --port
to pick one, --ble for a BLE UART bridge, or --demo to run without hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	f := rootCmd.Flags()
	f.StringVar(&opts.Port, "port", opts.Port, "Serial port of the sensor (default: auto-detect)")
	f.IntVar(&opts.Baud, "baud", opts.Baud, "Serial baud rate")
	f.BoolVar(&opts.BLE, "ble", opts.BLE, "Connect through a BLE UART bridge instead of serial")
	f.StringVar(&opts.BLEName, "ble-name", opts.BLEName, "Advertised name of the BLE bridge (default: first UART bridge found)")
	f.BoolVar(&opts.Demo, "demo", opts.Demo, "Run with a simulated sensor (no hardware required)")
	f.StringVar(&opts.LogFile, "log-file", opts.LogFile, "Write diagnostics to this file")
	f.BoolVar(&opts.SendReset, "send-reset", opts.SendReset, "Send RESET to the sensor when returning to idle")
	f.Float64Var(&opts.MaxRange, "max-range", opts.MaxRange, "Maximum sensor range in centimeters")
	f.IntVar(&opts.BeamSmooth, "beam-smooth", opts.BeamSmooth, "Beam angle smoothing window")
	f.IntVar(&opts.MapSmooth, "map-smooth", opts.MapSmooth, "Map angle smoothing window")
	f.IntVar(&opts.MedianWindow, "median-window", opts.MedianWindow, "Distance median filter window")
	f.StringVar(&opts.SnapshotFormat, "snapshot-format", opts.SnapshotFormat, "Snapshot image format: png or webp")
	f.StringVar(&opts.SnapshotDir, "snapshot-dir", opts.SnapshotDir, "Snapshot directory (default: ~/Downloads)")
	f.IntVar(&opts.SnapshotSupersample, "snapshot-supersample", opts.SnapshotSupersample, "Snapshot supersampling factor (1-4)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	if opts.LogFile != "" {
		logFile, err := tea.LogToFile(opts.LogFile, "surroundsense")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		monitoring.SetLogger(log.Printf)
	} else {
		monitoring.SetLogger(nil)
	}

	link, err := openLink()
	if err != nil {
		if errors.Is(err, transport.ErrNoDevice) {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "No sensor found. Try one of:")
			fmt.Fprintln(os.Stderr, "  surroundsense --port /dev/ttyUSB0")
			fmt.Fprintln(os.Stderr, "  surroundsense --ble")
			fmt.Fprintln(os.Stderr, "  surroundsense --demo    (simulated sensor, no hardware needed)")
		}
		return err
	}
	defer link.Close()

	ctl := scan.NewController(scan.Settings{
		MaxRange:        opts.MaxRange,
		BeamWindow:      opts.BeamSmooth,
		MapWindow:       opts.MapSmooth,
		MedianWindow:    opts.MedianWindow,
		SendResetOnIdle: opts.SendReset,
		Projection:      scan.DefaultProjection(),
	}, scan.WithCommander(link))

	snap := snapshot.DefaultOptions()
	snap.Dir = opts.SnapshotDir
	snap.Format = opts.SnapshotFormat
	snap.Supersample = opts.SnapshotSupersample

	model := app.New(app.Config{
		Controller: ctl,
		Source:     link,
		Snapshot:   snap,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFPS(config.TargetFPS),
	)

	_, err = p.Run()
	return err
}

// openLink connects to the sensor selected by the flags.
func openLink() (*transport.Link, error) {
	switch {
	case opts.Demo:
		return transport.NewLink(transport.NewDemoPort(transport.DefaultDemoOptions()), "demo"), nil

	case opts.BLE:
		port, name, err := transport.OpenBLE(transport.BLEOptions{
			Name:        opts.BLEName,
			ScanTimeout: config.BLEScanTimeout,
		})
		if err != nil {
			return nil, err
		}
		return transport.NewLink(port, name), nil
	}

	path := opts.Port
	if path == "" {
		var err error
		if path, err = transport.Discover(); err != nil {
			return nil, err
		}
	}
	portOpts := transport.DefaultPortOptions()
	portOpts.BaudRate = opts.Baud
	port, err := transport.OpenSerial(path, portOpts)
	if err != nil {
		return nil, err
	}
	return transport.NewLink(port, path), nil
}
