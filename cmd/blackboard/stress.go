package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/blackboard/blackboard"
	"github.com/oshokin/blackboard/blackboard/metrics"
	"github.com/oshokin/blackboard/blackboard/store"
)

const (
	stressVec3Key  = "stress_v"
	stressIntKey   = "stress_i"
	stressFloatKey = "stress_f"

	metricsShutdownTimeout = 5 * time.Second

	// stressValueRange is the number of consecutive integers float32 holds exactly.
	stressValueRange = 1 << 24
)

// errTornRead is returned when a reader observed a vector mixing two writes.
var errTornRead = errors.New("torn vec3 read observed")

// stressCmd hammers one vec3 key with writers and readers.
var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Check that concurrent readers never observe torn values",
	Long: `Run writer goroutines publishing (t, t, t) vectors against reader goroutines
that require all three components to be equal.

The command exits non-zero if any torn read was observed.
With --metrics-addr the blackboard counters are served in Prometheus format
while the run lasts.

Example:
  blackboard stress --writers 2 --readers 16 --duration 10s
  blackboard stress --metrics-addr :9100`,
	RunE: runStress,
}

func init() {
	rootCmd.AddCommand(stressCmd)

	stressCmd.Flags().Int("writers", 2, "number of writer goroutines")
	stressCmd.Flags().Int("readers", 8, "number of reader goroutines")
	stressCmd.Flags().Duration("duration", 2*time.Second, "how long to run")
	stressCmd.Flags().Int("shards", 0, "shards per table (0 = one per CPU)")
	stressCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address while running")
}

// stressResult aggregates counters of one run.
type stressResult struct {
	reads  atomic.Uint64
	writes atomic.Uint64
	torn   atomic.Uint64
}

func runStress(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	writers, _ := cmd.Flags().GetInt("writers")
	readers, _ := cmd.Flags().GetInt("readers")
	duration, _ := cmd.Flags().GetDuration("duration")
	shards, _ := cmd.Flags().GetInt("shards")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	if writers <= 0 || readers <= 0 || duration <= 0 {
		return fmt.Errorf("--writers, --readers and --duration must be positive")
	}

	runID := uuid.New()
	logger = logger.With("run_id", runID.String())

	if err := blackboard.Configure(blackboard.Options{ShardCount: shards, TrackStats: true}); err != nil {
		return fmt.Errorf("failed to configure blackboard: %w", err)
	}

	bb := blackboard.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	if metricsAddr != "" {
		shutdown := serveMetrics(bb, metricsAddr, runID.String(), logger.Info, logger.Error)
		defer shutdown()
	}

	logger.Info("stress starting",
		"writers", writers,
		"readers", readers,
		"duration", duration.String(),
		"shards", bb.Config().ShardCount,
	)

	result := runStressWorkers(ctx, bb, writers, readers)

	logger.Info("stress finished",
		"reads", result.reads.Load(),
		"writes", result.writes.Load(),
		"torn", result.torn.Load(),
	)

	return reportStress(cmd.OutOrStdout(), cmd.ErrOrStderr(), runID.String(), result, bb.Stats(), duration)
}

// reportStress prints the run summary and returns errTornRead if any reader
// observed a torn vector.
func reportStress(out, errOut io.Writer, runID string, result *stressResult, stats store.Stats, duration time.Duration) error {
	reads, writes, torn := result.reads.Load(), result.writes.Load(), result.torn.Load()
	seconds := duration.Seconds()

	heading(out, "stress run "+runID)
	fmt.Fprintf(out, "  reads   %s (%s)\n", humanize.Comma(int64(reads)), humanize.SIWithDigits(float64(reads)/seconds, 2, "op/s"))
	fmt.Fprintf(out, "  writes  %s (%s)\n", humanize.Comma(int64(writes)), humanize.SIWithDigits(float64(writes)/seconds, 2, "op/s"))
	fmt.Fprintf(out, "  misses  %s\n", humanize.Comma(int64(stats.Vec3.Misses)))

	if torn > 0 {
		failure(errOut, "%s torn reads", humanize.Comma(int64(torn)))

		return fmt.Errorf("%w: %d times", errTornRead, torn)
	}

	success(out, "no torn reads")

	return nil
}

// stressValue maps the n-th write to its published component value. Values
// repeat only every stressValueRange writes, so a reader mixing two writes
// that are closer together than that sees unequal components.
func stressValue(n uint64) float32 {
	return float32(n % stressValueRange)
}

// runStressWorkers runs writers and readers until ctx is done.
func runStressWorkers(ctx context.Context, bb *store.Blackboard, writers, readers int) *stressResult {
	var (
		result  stressResult
		counter atomic.Uint64
	)

	g, gctx := errgroup.WithContext(ctx)

	for range writers {
		g.Go(func() error {
			for gctx.Err() == nil {
				t := stressValue(counter.Add(1))

				bb.SetVec3(stressVec3Key, store.Vec3{t, t, t})
				bb.SetInt(stressIntKey, int32(t))
				bb.SetFloat(stressFloatKey, t)
				result.writes.Add(3)
			}

			return nil
		})
	}

	for range readers {
		g.Go(func() error {
			var reads, torn uint64

			for gctx.Err() == nil {
				v := bb.GetVec3(stressVec3Key, store.Vec3{})
				_ = bb.GetInt(stressIntKey, 0)
				_ = bb.GetFloat(stressFloatKey, 0)

				if v[0] != v[1] || v[1] != v[2] {
					torn++
				}

				reads += 3
			}

			result.reads.Add(reads)
			result.torn.Add(torn)

			return nil
		})
	}

	_ = g.Wait()

	return &result
}

// serveMetrics starts an HTTP server exposing the blackboard collector and
// returns a function that shuts it down.
func serveMetrics(bb *store.Blackboard, addr, runID string, info, logError func(string, ...any)) func() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		metrics.NewCollector(bb, prometheus.Labels{"run_id": runID}),
		collectors.NewGoCollector(),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		info("serving metrics", "addr", addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logError("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		_ = server.Shutdown(ctx)
	}
}
