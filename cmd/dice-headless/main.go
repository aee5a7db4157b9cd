// dice-headless rolls a die many times on a simulated clock and reports the face distribution
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/lixenwraith/dice-tray/config"
	"github.com/lixenwraith/dice-tray/engine"
	"github.com/lixenwraith/dice-tray/event"
	"github.com/lixenwraith/dice-tray/history"
	"github.com/lixenwraith/dice-tray/parameter"
	"github.com/lixenwraith/dice-tray/status"
	"github.com/lixenwraith/dice-tray/storage/sqlite"
)

// Simulated frames allowed per roll before giving up on it
const maxFramesPerRoll = 1000

var errRollStuck = errors.New("roll did not resolve")

func main() {
	rolls := flag.Int("n", 1000, "number of rolls")
	die := flag.String("die", "", "die to roll")
	seed := flag.Int64("seed", 0, "throw random seed")
	historyPath := flag.String("history", "", "SQLite file recording resolved rolls")
	verbose := flag.Bool("v", false, "log every roll to stderr")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}
	if *die != "" {
		cfg.Die = *die
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *historyPath != "" {
		cfg.HistoryPath = *historyPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(context.Background(), cfg, *rolls, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "dice-headless: %v\n", err)
		os.Exit(1)
	}
}

// run rolls n times and writes the report to w
func run(ctx context.Context, cfg config.Config, n int, w io.Writer) error {
	if n < 1 {
		return fmt.Errorf("need at least one roll, got %d", n)
	}

	clock := engine.NewManualTimeProvider(time.Unix(0, 0))
	bus := event.NewBus()
	reg := status.NewRegistry()
	d, err := cfg.NewDie(clock, bus, reg, 1, 1)
	if err != nil {
		return err
	}
	defer d.Destroy()

	var store *sqlite.Store
	var recorder *history.Recorder
	if cfg.HistoryPath != "" {
		store, err = sqlite.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		recorder = history.NewRecorder(store, cfg.DieLabel(), max(n, parameter.HistoryQueueSize))
		recorder.Start(ctx)
		detach := recorder.Attach(bus)
		defer detach()
	}

	counts := make([]int, d.Faces()+1)
	var elapsed time.Duration
	for i := 0; i < n; i++ {
		face, took, err := rollOnce(d, clock)
		if err != nil {
			return fmt.Errorf("roll %d: %w", i+1, err)
		}
		counts[face]++
		elapsed += took
		log.Printf("roll %d: face %d in %v", i+1, face, took)
	}

	writeReport(w, cfg.DieLabel(), counts, n, elapsed)
	fmt.Fprintf(w, "ceiling settles: %d\n", reg.Counter(status.RollsCeiling).Load())

	if recorder != nil {
		recorder.Close()
		written, dropped, failed := recorder.Stats()
		fmt.Fprintf(w, "history: written=%d dropped=%d failed=%d\n", written, dropped, failed)

		totals, err := store.FaceCounts(ctx, cfg.DieLabel())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "stored totals:")
		for _, fc := range totals {
			fmt.Fprintf(w, "  %3d  %d\n", fc.Face, fc.Count)
		}
	}
	return nil
}

// rollOnce drives frames on the simulated clock until the requested roll resolves
func rollOnce(d *engine.Die, clock *engine.ManualTimeProvider) (int, time.Duration, error) {
	fut, err := d.Roll()
	if err != nil {
		return 0, 0, err
	}
	start := clock.Now()
	for frame := 0; frame < maxFramesPerRoll; frame++ {
		clock.Advance(parameter.FrameUpdateInterval)
		d.Frame()
		if face, ok := fut.Face(); ok {
			return face, clock.Now().Sub(start), nil
		}
	}
	return 0, 0, errRollStuck
}

// writeReport prints per-face frequencies and the chi-square statistic against a fair die
func writeReport(w io.Writer, label string, counts []int, n int, elapsed time.Duration) {
	faces := len(counts) - 1
	expected := float64(n) / float64(faces)

	fmt.Fprintf(w, "%s: %d rolls, mean %v per roll\n", label, n, (elapsed / time.Duration(n)).Round(time.Millisecond))
	var chi float64
	for face := 1; face <= faces; face++ {
		c := counts[face]
		diff := float64(c) - expected
		chi += diff * diff / expected
		fmt.Fprintf(w, "  %3d  %6d  %5.2f%%\n", face, c, 100*float64(c)/float64(n))
	}
	fmt.Fprintf(w, "chi-square %.2f with %d degrees of freedom\n", chi, faces-1)
	if faces > 1 {
		fmt.Fprintf(w, "max deviation %.2f%%\n", maxDeviation(counts, n))
	}
}

// maxDeviation returns the largest absolute gap between a face share and the fair share, in percent
func maxDeviation(counts []int, n int) float64 {
	faces := len(counts) - 1
	fair := 100 / float64(faces)
	var worst float64
	for face := 1; face <= faces; face++ {
		worst = math.Max(worst, math.Abs(100*float64(counts[face])/float64(n)-fair))
	}
	return worst
}
