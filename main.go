package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/reacher/ecs/entity"
	"github.com/milk9111/reacher/input"
	"github.com/milk9111/reacher/prefabs"
	"github.com/milk9111/reacher/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	debug bool

	scriptName string
	ticks      int
	watch      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reacher",
	Short: "Side-on character controller with a cursor-following hand",
	Long: `reacher opens a window with a player that runs and jumps on a floor while a
hand follows the mouse cursor within a fixed reach of the player.

Controls come from prefabs/input.yaml (A/D or arrows to move, W or Space to jump).
F1 toggles the physics overlay and Escape closes the window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow()
	},
}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a scripted scenario without a window",
	Long: `sim replays a tengo scenario from prefabs/scripts against the real physics
substrate and prints a summary of the run. With --watch the scenario is re-run
every time its script changes on disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runSim(ctx, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and the physics overlay")

	simCmd.Flags().StringVarP(&scriptName, "script", "s", "", "Scenario script name (default: world.yaml scenario)")
	simCmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "Maximum ticks to run (0: until the script calls done)")
	simCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-run the scenario when its script changes")

	rootCmd.AddCommand(simCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runWindow() error {
	world, err := prefabs.LoadWorldSpec()
	if err != nil {
		return err
	}
	inputSpec, err := prefabs.LoadInputSpec()
	if err != nil {
		return err
	}
	bindings, err := input.ParseBindings(inputSpec.Bindings)
	if err != nil {
		return err
	}
	scene, err := entity.LoadSceneSpec()
	if err != nil {
		return err
	}

	game, err := NewGame(world, scene, bindings, debug, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(world.Width, world.Height)
	ebiten.SetWindowTitle(world.Title)
	ebiten.SetTPS(world.TickRate)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runSim(ctx context.Context, out io.Writer) error {
	world, err := prefabs.LoadWorldSpec()
	if err != nil {
		return err
	}
	scene, err := entity.LoadSceneSpec()
	if err != nil {
		return err
	}

	name := scriptName
	if name == "" {
		name = world.Scenario
	}
	if name == "" {
		return errors.New("no scenario script given and world.yaml names none")
	}

	if !watch {
		return runScenario(ctx, out, world, scene, name)
	}

	path := prefabs.ScriptPath(name)
	watcher, err := prefabs.NewWatcher(path)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := runScenario(ctx, out, world, scene, name); err != nil {
		logger.Warn("scenario failed", zap.String("script", name), zap.Error(err))
	}
	logger.Info("watching scenario", zap.String("path", path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Info("scenario changed", zap.String("path", changed))
			if err := runScenario(ctx, out, world, scene, name); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Warn("scenario failed", zap.String("script", name), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

func runScenario(ctx context.Context, out io.Writer, world *prefabs.WorldSpec, scene entity.SceneSpec, name string) error {
	source, err := input.LoadScriptSource(name)
	if err != nil {
		return err
	}
	s, err := sim.New(sim.Config{
		Delta:  world.Delta(),
		Scene:  scene,
		Input:  source,
		Logger: logger.With(zap.String("script", name)),
	})
	if err != nil {
		return err
	}

	sum, err := s.Run(ctx, ticks)
	if err != nil {
		return err
	}

	final := sum.Final
	fmt.Fprintf(out, "%s: %d ticks, %d jumps (%d ascents completed), max height %.3f\n",
		name, sum.Ticks, sum.AscentsStarted, sum.AscentsEnded, sum.MaxHeight)
	fmt.Fprintf(out, "  player (%.3f, %.3f, %.3f) grounded=%v phase=%s\n",
		final.Player.X(), final.Player.Y(), final.Player.Z(), final.Grounded, final.Phase)
	fmt.Fprintf(out, "  hand   (%.3f, %.3f, %.3f)\n",
		final.Hand.X(), final.Hand.Y(), final.Hand.Z())
	return nil
}
