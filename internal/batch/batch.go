package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dpup/routegen/internal/export"
	"github.com/dpup/routegen/internal/lib/geo"
	"github.com/dpup/routegen/internal/services"
)

// Job is one route-generation request read from a batch file.
type Job struct {
	ID             string
	Origin         geo.Point
	Destination    geo.Point
	IntervalMeters float64
	JSONPath       string
	JSPath         string
	Line           int
}

// ParseJobs reads batch jobs from r, one per line:
//
//	startLat,startLon,endLat,endLon,intervalMeters,out.json,out.js
//
// Blank lines and lines starting with # are skipped. Malformed lines are
// logged and skipped rather than aborting the batch.
func ParseJobs(r io.Reader, logger *zap.Logger) ([]Job, error) {
	var jobs []Job
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		job, err := parseLine(line)
		if err != nil {
			logger.Warn("skipping malformed batch line",
				zap.Int("line", lineNo),
				zap.Error(err),
			)
			continue
		}
		job.ID = uuid.NewString()
		job.Line = lineNo
		jobs = append(jobs, job)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return jobs, nil
}

func parseLine(line string) (Job, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 7 {
		return Job{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}

	nums := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return Job{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		nums[i] = v
	}

	origin, err := geo.NewPoint(nums[0], nums[1])
	if err != nil {
		return Job{}, fmt.Errorf("origin: %w", err)
	}
	destination, err := geo.NewPoint(nums[2], nums[3])
	if err != nil {
		return Job{}, fmt.Errorf("destination: %w", err)
	}
	if nums[4] <= 0 {
		return Job{}, fmt.Errorf("interval must be positive, got %v", nums[4])
	}

	jsonPath := strings.TrimSpace(fields[5])
	jsPath := strings.TrimSpace(fields[6])
	if jsonPath == "" || jsPath == "" {
		return Job{}, fmt.Errorf("output paths must not be empty")
	}

	return Job{
		Origin:         origin,
		Destination:    destination,
		IntervalMeters: nums[4],
		JSONPath:       jsonPath,
		JSPath:         jsPath,
	}, nil
}

// Runner executes batch jobs against the routes service and writes the
// resulting geometry to the output files named by each job.
type Runner struct {
	service *services.RoutesService
	logger  *zap.Logger
}

// NewRunner creates a new batch Runner.
func NewRunner(service *services.RoutesService, logger *zap.Logger) *Runner {
	return &Runner{service: service, logger: logger}
}

// Run executes jobs sequentially. A failing job is logged and counted but
// does not stop the rest of the batch.
func (r *Runner) Run(ctx context.Context, jobs []Job) (succeeded, failed int) {
	for _, job := range jobs {
		if err := r.runJob(ctx, job); err != nil {
			r.logger.Error("batch job failed",
				zap.String("job_id", job.ID),
				zap.Int("line", job.Line),
				zap.Error(err),
			)
			failed++
			continue
		}
		succeeded++
	}

	r.logger.Info("batch complete",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)
	return succeeded, failed
}

func (r *Runner) runJob(ctx context.Context, job Job) error {
	result, err := r.service.GenerateRoute(ctx, services.RouteRequest{
		Origin:         job.Origin,
		Destination:    job.Destination,
		IntervalMeters: job.IntervalMeters,
	})
	if err != nil {
		return err
	}

	if err := writeFile(job.JSONPath, result.Points, export.WriteJSON); err != nil {
		return err
	}
	if err := writeFile(job.JSPath, result.Points, export.WriteJS); err != nil {
		return err
	}

	r.logger.Info("batch job complete",
		zap.String("job_id", job.ID),
		zap.Int("points", len(result.Points)),
		zap.String("json", job.JSONPath),
		zap.String("js", job.JSPath),
	)
	return nil
}

func writeFile(path string, points []geo.Point, write func(io.Writer, []geo.Point) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f, points); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
