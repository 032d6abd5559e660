//go:build linux

// Command vcsctl runs the video capture and anti-tear core against a V4L2
// device, wiring the core's event-driven pipeline to the reference
// backend/v4l2backend collaborator (spec.md §6).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vladimirvivien/go4vl/device"

	"github.com/vidcapture/vcs/app"
	"github.com/vidcapture/vcs/backend/v4l2backend"
	"github.com/vidcapture/vcs/imgsupport"
)

func main() {
	os.Exit(run())
}

func run() int {
	devicePath := flag.String("device", "/dev/video0", "V4L2 device path")
	bufSize := flag.Uint("buffers", 4, "number of streaming buffers to request")
	ecoMode := flag.Bool("eco", false, "enable the adaptive eco sleep scheduler")
	antiTear := flag.Bool("antitear", false, "enable the anti-tear engine")
	snapshotPath := flag.String("snapshot", "", "capture one frame, write it as a JPEG to this path, and exit (YUYV sources only)")

	// Per spec.md §6, these three persistence formats are named but their
	// parsing is explicitly out of scope (spec.md §1 Non-goals); the flags
	// are accepted so operators can script them once a loader exists, but
	// nothing reads the files yet.
	filterGraphFile := flag.String("filter-graph", "", "TODO: path to a serialized filter graph (not yet loaded)")
	aliasesFile := flag.String("aliases", "", "TODO: path to a serialized alias table (not yet loaded)")
	videoPresetsFile := flag.String("video-presets", "", "TODO: path to serialized video-mode presets (not yet loaded)")
	flag.Parse()

	if *filterGraphFile != "" || *aliasesFile != "" || *videoPresetsFile != "" {
		fmt.Fprintln(os.Stderr, "vcsctl: -filter-graph/-aliases/-video-presets are accepted but not yet loaded")
	}

	be, err := v4l2backend.Open(*devicePath, nil, device.WithBufferSize(uint32(*bufSize)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "vcsctl: %v\n", err)
		return 1
	}

	a := app.New(be)
	a.State.EcoMode = *ecoMode
	a.State.AntiTearEnabled = *antiTear

	if err := be.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "vcsctl: %v\n", err)
		return 1
	}
	defer be.Release()

	if *snapshotPath != "" {
		return takeSnapshot(be, *snapshotPath)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sig:
			a.Logger.Info("shutting down on signal")
			return 0
		default:
		}
		a.RunOnce(nil)
		if a.Coordinator.ExitRequested() {
			a.Logger.Error("exiting after unrecoverable capture error")
			return 1
		}
	}
}

// takeSnapshot polls until a YUYV frame is available, encodes it as JPEG
// via imgsupport, writes it to path, and returns an exit code.
func takeSnapshot(be *v4l2backend.Backend, path string) int {
	for i := 0; i < 1000; i++ {
		if data, r, ok := be.DebugSnapshotYUYV(); ok {
			jpg, err := imgsupport.Yuyv2Jpeg(int(r.Width), int(r.Height), data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "vcsctl: snapshot: %v\n", err)
				return 1
			}
			if err := os.WriteFile(path, jpg, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "vcsctl: snapshot: write %s: %v\n", path, err)
				return 1
			}
			return 0
		}
		time.Sleep(10 * time.Millisecond)
	}
	fmt.Fprintln(os.Stderr, "vcsctl: snapshot: no YUYV frame arrived in time")
	return 1
}
