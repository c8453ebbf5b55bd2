// Command centerline extracts forest-line centerlines from a cost raster
// and a set of seed lines.
//
//	centerline -raster chm.asc -lines seeds.geojson -out centerlines.geojson
//
// The raster is an ESRI ASCII grid, the seed lines a GeoJSON
// FeatureCollection with OLnFID (and optionally OLnSEG) properties. Results
// go to a GeoJSON file, a SQLite database, or both.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	beratools "github.com/appliedgrg/bera-tools"
	"github.com/appliedgrg/bera-tools/batch"
	"github.com/appliedgrg/bera-tools/config"
	"github.com/appliedgrg/bera-tools/dijkstra"
	"github.com/appliedgrg/bera-tools/raster"
	"github.com/appliedgrg/bera-tools/seedline"
	"github.com/appliedgrg/bera-tools/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "centerline:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		rasterPath = flag.String("raster", "", "input cost or canopy raster (ESRI ASCII grid)")
		linesPath  = flag.String("lines", "", "input seed lines (GeoJSON)")
		configPath = flag.String("config", "", "optional JSON configuration file")
		outPath    = flag.String("out", "", "output centerlines (GeoJSON)")
		corPath    = flag.String("corridors", "", "optional output corridor polygons (GeoJSON)")
		dbPath     = flag.String("db", "", "optional SQLite database to record the run in")
		radius     = flag.Float64("radius", 0, "search radius around each seed line (overrides config)")
		workers    = flag.Int("workers", -1, "worker count, 0 for one per CPU (overrides config)")
		sequential = flag.Bool("sequential", false, "process lines one at a time")
		route      = flag.Bool("route", false, "use the gonum route strategy for least-cost paths")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	if *rasterPath == "" || *linesPath == "" || (*outPath == "" && *dbPath == "") {
		flag.Usage()
		return errors.New("-raster, -lines and one of -out or -db are required")
	}

	beratools.SetLogger(beratools.NewTextLogger(os.Stderr, *verbose))
	log := beratools.Logger()

	cfg := config.Empty()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	opts := cfg.SeedlineOptions()
	if *radius > 0 {
		opts.Radius = *radius
	}
	if *workers >= 0 {
		opts.Workers = *workers
	}
	if *sequential {
		opts.Mode = batch.ModeSequential
	}
	if *route {
		opts.Strategy = dijkstra.StrategyRoute
	}

	ras, err := raster.LoadASCIIGrid(*rasterPath)
	if err != nil {
		return err
	}
	f, err := os.Open(*linesPath)
	if err != nil {
		return err
	}
	lines, err := seedline.ReadGeoJSON(f)
	f.Close()
	if err != nil {
		return err
	}
	rows, cols := ras.Dims()
	log.Info("inputs loaded", "lines", len(lines), "rows", rows, "cols", cols,
		"radius", opts.Radius, "mode", opts.Mode.String(), "strategy", opts.Strategy.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	lines, err = seedline.ProcessAll(ctx, lines, ras, opts)
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, l := range lines {
		counts[l.Status.String()]++
	}
	log.Info("centerlines computed", "status", counts)

	if *outPath != "" {
		if err := writeLayer(*outPath, lines, seedline.LayerCenterline); err != nil {
			return err
		}
	}
	if *corPath != "" {
		if err := writeLayer(*corPath, lines, seedline.LayerCorridor); err != nil {
			return err
		}
	}
	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.SaveRun(ctx, *linesPath, lines)
		if err != nil {
			return err
		}
		log.Info("run stored", "db", *dbPath, "run_id", id.String())
	}
	return nil
}

func writeLayer(path string, lines []*seedline.SeedLine, layer seedline.Layer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := seedline.WriteGeoJSON(f, lines, layer); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
