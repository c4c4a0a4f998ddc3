package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dpup/routegen/internal/batch"
	"github.com/dpup/routegen/internal/cache"
	"github.com/dpup/routegen/internal/clients/google"
	"github.com/dpup/routegen/internal/config"
	"github.com/dpup/routegen/internal/export"
	"github.com/dpup/routegen/internal/lib/geo"
	"github.com/dpup/routegen/internal/services"
)

var (
	batchFile  = flag.String("batch", "", "path to a batch file of routes to generate")
	originArg  = flag.String("origin", "", "origin as lat,lon")
	destArg    = flag.String("dest", "", "destination as lat,lon")
	interval   = flag.Float64("interval", 0, "densification interval in meters (0 uses the configured default)")
	jsonOut    = flag.String("json", "", "path to write the route as JSON")
	jsOut      = flag.String("js", "", "path to write the route as a CommonJS module")
	geojsonOut = flag.String("geojson", "", "path to write the route as GeoJSON")
)

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	client := google.NewClient(cfg.GoogleAPIKey, cfg.GoogleBaseURL)
	svc := services.NewRoutesService(client, cache.NewCache(), cfg.CacheTTL, cfg.IntervalMeters, logger)
	ctx := context.Background()

	if *batchFile != "" {
		runBatch(ctx, svc, logger)
		return
	}
	runSingle(ctx, svc, logger)
}

func runBatch(ctx context.Context, svc *services.RoutesService, logger *zap.Logger) {
	f, err := os.Open(*batchFile)
	if err != nil {
		logger.Fatal("failed to open batch file", zap.Error(err))
	}
	defer f.Close()

	jobs, err := batch.ParseJobs(f, logger)
	if err != nil {
		logger.Fatal("failed to parse batch file", zap.Error(err))
	}
	if len(jobs) == 0 {
		logger.Fatal("batch file contained no usable jobs", zap.String("file", *batchFile))
	}

	start := time.Now()
	_, failed := batch.NewRunner(svc, logger).Run(ctx, jobs)
	logger.Info("batch finished", zap.Duration("elapsed", time.Since(start)))
	if failed > 0 {
		os.Exit(1)
	}
}

func runSingle(ctx context.Context, svc *services.RoutesService, logger *zap.Logger) {
	origin, err := parsePair(*originArg)
	if err != nil {
		logger.Fatal("invalid -origin", zap.Error(err))
	}
	destination, err := parsePair(*destArg)
	if err != nil {
		logger.Fatal("invalid -dest", zap.Error(err))
	}

	result, err := svc.GenerateRoute(ctx, services.RouteRequest{
		Origin:         origin,
		Destination:    destination,
		IntervalMeters: *interval,
	})
	if err != nil {
		logger.Fatal("failed to generate route", zap.Error(err))
	}

	logger.Info("route generated",
		zap.Int("points", len(result.Points)),
		zap.Int("chosen_index", result.ChosenIndex),
		zap.Float64("distance_meters", result.Metrics.DistanceMeters),
	)

	if *jsonOut != "" {
		writeOut(logger, *jsonOut, result.Points, export.WriteJSON)
	}
	if *jsOut != "" {
		writeOut(logger, *jsOut, result.Points, export.WriteJS)
	}
	if *geojsonOut != "" {
		writeOut(logger, *geojsonOut, result.Points, export.WriteGeoJSON)
	}

	// Without an output flag, print the geometry to stdout
	if *jsonOut == "" && *jsOut == "" && *geojsonOut == "" {
		if err := export.WriteJSON(os.Stdout, result.Points); err != nil {
			logger.Fatal("failed to write route", zap.Error(err))
		}
	}
}

func parsePair(s string) (geo.Point, error) {
	if s == "" {
		return geo.Point{}, fmt.Errorf("expected lat,lon pair")
	}
	var lat, lon float64
	if _, err := fmt.Sscanf(s, "%f,%f", &lat, &lon); err != nil {
		return geo.Point{}, fmt.Errorf("expected lat,lon pair: %w", err)
	}
	return geo.NewPoint(lat, lon)
}

func writeOut(logger *zap.Logger, path string, points []geo.Point, write func(io.Writer, []geo.Point) error) {
	f, err := os.Create(path)
	if err != nil {
		logger.Fatal("failed to create output file", zap.String("path", path), zap.Error(err))
	}
	defer f.Close()
	if err := write(f, points); err != nil {
		logger.Fatal("failed to write output file", zap.String("path", path), zap.Error(err))
	}
	logger.Info("wrote output", zap.String("path", path))
}
