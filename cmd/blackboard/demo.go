package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/blackboard/blackboard"
	"github.com/oshokin/blackboard/blackboard/params"
	"github.com/oshokin/blackboard/blackboard/store"
	"github.com/oshokin/blackboard/config"
)

const (
	// controlInterval paces the simulated control surface at human speed.
	controlInterval = 50 * time.Millisecond
	// convergeToggleEvery flips accumulation on and off during the demo.
	convergeToggleEvery = 2 * time.Second
	// phiSweepPerSecond is how fast light 0 orbits, in radians per second.
	phiSweepPerSecond = math.Pi / 2
)

// demoCmd runs a simulated control surface against a render loop.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a simulated control surface and render loop",
	Long: `Run a simulated control surface and render loop sharing the blackboard.

The control loop publishes parameters at human speed (light 0 orbits, the
convergence toggle flips every two seconds). The render loop reads every
parameter once per frame and prints a summary line every --report-every frames.

Example:
  blackboard demo --fps 60 --frames 300
  blackboard demo -p preset.yaml`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringP("preset", "p", "", "path to a preset file applied before the loops start")
	demoCmd.Flags().Int("fps", 60, "render loop frame rate")
	demoCmd.Flags().Int("frames", 180, "number of frames to render")
	demoCmd.Flags().Int("report-every", 30, "print a frame summary every N frames")
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	fps, _ := cmd.Flags().GetInt("fps")
	frames, _ := cmd.Flags().GetInt("frames")
	reportEvery, _ := cmd.Flags().GetInt("report-every")

	if fps <= 0 || frames <= 0 || reportEvery <= 0 {
		return fmt.Errorf("--fps, --frames and --report-every must be positive")
	}

	logger = logger.With("run_id", uuid.NewString())

	if err := applyPresetFlag(cmd, logger); err != nil {
		return err
	}

	bb := blackboard.Default()
	publisher := params.NewPublisher(bb)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("demo starting", "fps", fps, "frames", frames)

	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runControlLoop(gctx, publisher, logger)
	})

	var rendered int

	g.Go(func() error {
		// The render loop owns the demo length; stop the control loop with it.
		defer cancel()

		var err error

		rendered, err = runRenderLoop(gctx, bb, cmd.OutOrStdout(), fps, frames, reportEvery)

		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(started)
	success(cmd.OutOrStdout(), "rendered %s frames in %s", humanize.Comma(int64(rendered)), elapsed.Round(time.Millisecond))
	logger.Info("demo finished", "frames", rendered, "elapsed", elapsed.String())

	return nil
}

// applyPresetFlag configures the process-wide store from --preset, if given,
// and publishes the preset values.
func applyPresetFlag(cmd *cobra.Command, logger *slog.Logger) error {
	path, _ := cmd.Flags().GetString("preset")
	if path == "" {
		params.NewPublisher(blackboard.Default()).PublishDefaults()

		return nil
	}

	preset, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load preset: %w", err)
	}

	if err := blackboard.Configure(preset.Store); err != nil {
		return fmt.Errorf("failed to configure blackboard: %w", err)
	}

	if err := preset.Apply(blackboard.Default()); err != nil {
		return fmt.Errorf("failed to apply preset: %w", err)
	}

	logger.Info("preset applied",
		"path", path,
		"lights", len(preset.Render.Lights),
		"raw_entries", len(preset.Ints)+len(preset.Floats)+len(preset.Vec3s),
	)

	return nil
}

// runControlLoop plays the control surface: light 0 orbits, its brightness
// pulses and accumulation is toggled periodically.
func runControlLoop(ctx context.Context, publisher *params.Publisher, logger *slog.Logger) error {
	ticker := time.NewTicker(controlInterval)
	defer ticker.Stop()

	started := time.Now()
	converge := false
	lastToggle := started

	publisher.SetNumLights(max(1, int(blackboard.GetInt(params.KeyNumLights, 0))))

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(started).Seconds()

			phi := math.Mod(elapsed*phiSweepPerSecond, 4*math.Pi) - 2*math.Pi
			if err := publisher.SetLightAngles(0, phi, math.Pi/4); err != nil {
				return err
			}

			brightness := float32(1 + math.Sin(elapsed))
			if err := publisher.SetLightBrightness(0, brightness); err != nil {
				return err
			}

			if now.Sub(lastToggle) >= convergeToggleEvery {
				converge = !converge
				lastToggle = now

				publisher.SetConverge(converge)
				logger.Debug("converge toggled", "converge", converge)
			}
		}
	}
}

// runRenderLoop reads the frame parameters at fps until frames are rendered
// or ctx is done, and returns the number of frames rendered.
func runRenderLoop(ctx context.Context, bb *store.Blackboard, out io.Writer, fps, frames, reportEvery int) (int, error) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var (
		frame       params.Frame
		accumulator params.Accumulator
	)

	for rendered := 0; rendered < frames; {
		select {
		case <-ctx.Done():
			return rendered, nil
		case <-ticker.C:
		}

		params.ReadFrameInto(bb, &frame)
		accumulated := accumulator.Next(&frame)
		rendered++

		if rendered%reportEvery == 0 {
			printFrame(out, rendered, accumulated, &frame)
		}
	}

	return frames, nil
}

// printFrame prints a one-line summary of a frame.
func printFrame(out io.Writer, index int, accumulated int32, frame *params.Frame) {
	lights := frame.ActiveLights()

	line := fmt.Sprintf("frame %5d  acc %4d  converge=%-5t  ao=%d rays/%s  lights=%d",
		index, accumulated, frame.Converge, frame.AORaysPerFrame,
		humanize.FtoaWithDigits(float64(frame.AOMaxDistance), 2), len(lights))

	if len(lights) > 0 {
		line += "  light0 v=" + formatValue(lights[0].Direction) + " I=" + formatValue(lights[0].Intensity)
	}

	fmt.Fprintln(out, line)
}
