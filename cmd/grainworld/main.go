// Command grainworld runs the pixel simulation headless, for logging and
// benchmarking the same way the tick loop runs under a graphical shell.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/grainworld/config"
	"github.com/pthm-cable/grainworld/creature"
	"github.com/pthm-cable/grainworld/genome"
	"github.com/pthm-cable/grainworld/persist"
	"github.com/pthm-cable/grainworld/rng"
	"github.com/pthm-cable/grainworld/telemetry"
	"github.com/pthm-cable/grainworld/world"
)

var (
	configPath    = flag.String("config", "", "Path to a YAML config file (empty uses embedded defaults)")
	seed          = flag.Int64("seed", 1, "World RNG seed")
	maxTicks      = flag.Int("max-ticks", 0, "Stop after N ticks (0 = run forever)")
	creatureCount = flag.Int("creatures", 8, "Number of creatures to spawn at startup")
	statsCSV      = flag.String("stats-csv", "", "Write windowed telemetry to this CSV path (empty disables)")
	logInterval   = flag.Int("log-interval", 10, "Seconds between progress log lines")
	saveDir       = flag.String("save-dir", "", "Write a world snapshot here on exit (empty disables)")
	loadDir       = flag.String("load-dir", "", "Restore a world snapshot from here at startup (empty disables)")
)

func main() {
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "grainworld: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	r := rng.NewSplitmix64(uint64(*seed))

	vitalsCfg := creature.DefaultVitalsConfig()
	w := world.NewWorld(uint64(*seed), cfg.World.ActiveChunkRadius, vitalsCfg, cfg.Simulation)
	w.EnsureChunksForArea(-256, -256, 256, 256)

	if *loadDir != "" {
		snap, err := persist.Load(*loadDir)
		if err != nil {
			logf("failed to load snapshot from %s: %v", *loadDir, err)
		} else {
			w.Restore(snap)
			logf("restored snapshot from %s (tick=%d)", *loadDir, w.TickCount())
		}
	}

	idGen := genome.NewIDGenerator()
	morphParams := genome.DefaultMorphologyParams(cfg.Evolution.MaxBodyParts)
	layers := []int{8, 12, 4}
	w.Creatures.SetMaxPopulation(cfg.Evolution.PopulationSize)
	for i := 0; i < *creatureCount; i++ {
		g := genome.NewRandomGenome(i, idGen, r, genome.RequiredWeightCount(layers))
		morph := genome.SampleMorphology(g.CPPN, morphParams)
		controller := g.BuildController(layers)
		if _, ok := w.Creatures.Spawn(float64(i%16)*8, 0, g, morph, controller); !ok {
			break
		}
	}

	sink := &telemetry.CountingSink{}
	var windows []telemetry.WindowStats

	dt := float64(cfg.Derived.TickDT32)
	logf("starting headless simulation: seed=%d creatures=%d dt=%.4f", *seed, *creatureCount, dt)

	start := time.Now()
	lastReport := start
	reportEvery := time.Duration(*logInterval) * time.Second
	windowStart := int32(0)

	for {
		if *maxTicks > 0 && int(w.TickCount()) >= *maxTicks {
			logf("reached max ticks (%d), stopping", *maxTicks)
			break
		}

		w.Tick(dt, sink, r, false)

		if time.Since(lastReport) >= reportEvery {
			elapsed := time.Since(start)
			tick := int32(w.TickCount())
			windows = append(windows, windowStats(windowStart, tick, elapsed, sink, w))
			windowStart = tick
			sink.Reset()

			ticksPerSec := float64(w.TickCount()) / elapsed.Seconds()
			slog.Info("progress", "tick", w.TickCount(), "ticks_per_sec", ticksPerSec, "elapsed", elapsed.Round(time.Second))
			lastReport = time.Now()
		}
	}

	elapsed := time.Since(start)
	logf("simulation complete: ticks=%d elapsed=%s avg_ticks_per_sec=%.0f",
		w.TickCount(), elapsed.Round(time.Millisecond), float64(w.TickCount())/elapsed.Seconds())

	if *statsCSV != "" && len(windows) > 0 {
		if err := telemetry.WriteWindowCSV(*statsCSV, windows); err != nil {
			logf("failed to write stats CSV: %v", err)
		}
	}

	if *saveDir != "" {
		if _, err := persist.Save(w.Snapshot(), *saveDir); err != nil {
			logf("failed to write snapshot to %s: %v", *saveDir, err)
		} else {
			logf("wrote snapshot to %s", *saveDir)
		}
	}
}

func windowStats(start, end int32, elapsed time.Duration, sink *telemetry.CountingSink, w *world.World) telemetry.WindowStats {
	return telemetry.WindowStats{
		WindowStartTick: start,
		WindowEndTick:   end,
		SimTimeSec:      elapsed.Seconds(),
		PixelsMoved:     sink.PixelsMoved,
		StateChanges:    sink.StateChanges,
		Reactions:       sink.Reactions,
		CreatureCount:   w.Creatures.Count(),
	}
}

func logf(format string, args ...interface{}) {
	slog.Info(fmt.Sprintf(format, args...))
}
