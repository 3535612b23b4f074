// Command lidarsim drives a simulated lidar around a room, fits a quadratic
// to the readings ahead of it on every tick and optionally records the scans
// to SQLite and renders plots.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/banshee-data/linda/internal/config"
	"github.com/banshee-data/linda/internal/db"
	"github.com/banshee-data/linda/internal/lidarsim"
	"github.com/banshee-data/linda/internal/monitor"
	"github.com/banshee-data/linda/internal/monitoring"
	"github.com/banshee-data/linda/internal/version"
)

var (
	configPath = flag.String("config", "", "Path to a JSON simulation config (built-in defaults when empty)")
	ticks      = flag.Int("ticks", 100, "Number of simulation ticks to run")
	dbPath     = flag.String("db", "", "SQLite file to record scans into (disabled when empty)")
	plotDir    = flag.String("plots", "", "Directory for PNG and HTML plots (disabled when empty)")
	plotEvery  = flag.Int("plot-every", 10, "Plot one scan out of every N ticks")
	noise      = flag.Float64("noise", 0, "Measurement noise sigma in metres (overrides config)")
	seed       = flag.Uint64("seed", 0, "Seed for the noise generator (overrides config)")
	fitWindow  = flag.Float64("fit-window", 0, "Half-width in radians of the fitted window, 0 disables (overrides config)")
	forward    = flag.Bool("forward", false, "Drive forward on every tick")
	turn       = flag.Bool("turn", true, "Turn on every tick")
	realtime   = flag.Bool("realtime", false, "Pace ticks at the configured tick interval")
	verbose    = flag.Bool("verbose", false, "Log every tick")
	versionFlg = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()
	if *versionFlg {
		fmt.Printf("lidarsim %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	monitoring.SetVerbose(*verbose)

	if flag.Arg(0) == "migrate" {
		if *dbPath == "" {
			log.Fatal("migrate requires -db")
		}
		if err := db.RunMigrateCommand(flag.Args()[1:], *dbPath, os.Stdout); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		return
	}

	cfg := config.DefaultSimConfig()
	if *configPath != "" {
		loaded, err := config.LoadSimConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyOverrides(cfg, set)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	opts := runOptions{
		Ticks:    *ticks,
		Forward:  *forward,
		Turn:     *turn,
		Realtime: *realtime,
	}

	if *dbPath != "" {
		store, err := db.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		opts.Store = store
	}

	if *plotDir != "" {
		opts.Plotter = monitor.NewScanPlotter(*plotEvery, cfg.GetDefaultDist())
		if err := opts.Plotter.Start(*plotDir); err != nil {
			log.Fatalf("failed to start plotter: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := buildEnvironment(cfg)
	res, err := run(ctx, cfg, env, opts)
	if err != nil {
		log.Printf("simulation stopped: %v", err)
	}
	log.Printf("ran %d ticks, %d fits, final pose %+v", res.Ticks, res.Fits, res.Pose)

	if opts.Plotter != nil {
		opts.Plotter.Stop()
		n, perr := opts.Plotter.GeneratePlots()
		if perr != nil {
			log.Printf("failed to generate plots: %v", perr)
		} else {
			log.Printf("wrote %d plots to %s", n, *plotDir)
		}
		if herr := writeChart(filepath.Join(*plotDir, "scans.html"), env, opts.Plotter.Samples()); herr != nil {
			log.Printf("failed to write chart: %v", herr)
		}
	}

	if opts.Store != nil {
		if cerr := opts.Store.Close(); cerr != nil {
			log.Printf("failed to close database: %v", cerr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// applyOverrides copies explicitly set flags into cfg.
func applyOverrides(cfg *config.SimConfig, set map[string]bool) {
	if set["noise"] {
		v := *noise
		cfg.NoiseSigma = &v
	}
	if set["seed"] {
		v := *seed
		cfg.Seed = &v
	}
	if set["fit-window"] {
		v := *fitWindow
		cfg.FitWindow = &v
	}
}

func writeChart(path string, env lidarsim.Environment, samples []monitor.ScanSample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := monitor.RenderScanChart(f, env, samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
