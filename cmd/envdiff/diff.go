package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"envdiff/internal/diag"
	"envdiff/internal/engine"
	"envdiff/internal/extension"
	"envdiff/internal/observ"
	"envdiff/internal/snapshot"
	"envdiff/internal/summary"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] <old.envsnap> <new.envsnap>",
	Short: "Compare two snapshots and report semantic changes",
	Long:  `Compare two snapshot containers and report declaration additions, removals, renames, moves, type/value changes, metadata changes and import-graph changes.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().Bool("ignore-internal", true, "exclude system-generated declarations")
	diffCmd.Flags().StringSlice("extensions", nil, "extension adapters to run (default: all built-ins)")
	diffCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	diffCmd.Flags().Bool("ui", false, "show live phase progress")
	diffCmd.Flags().Int("max-warnings", 100, "maximum number of warnings to collect")
	diffCmd.Flags().Bool("timings", false, "print per-phase wall times to stderr")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	oldPath, newPath := args[0], args[1]

	ignoreInternal, err := cmd.Flags().GetBool("ignore-internal")
	if err != nil {
		return fmt.Errorf("failed to get ignore-internal flag: %w", err)
	}
	extensions, err := cmd.Flags().GetStringSlice("extensions")
	if err != nil {
		return fmt.Errorf("failed to get extensions flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	useUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	maxWarnings, err := cmd.Flags().GetInt("max-warnings")
	if err != nil {
		return fmt.Errorf("failed to get max-warnings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	cfg, err := loadToolConfig(".")
	if err != nil {
		return err
	}
	useColor, err := resolveColor(cmd, cfg)
	if err != nil {
		return err
	}
	if len(extensions) == 0 {
		extensions = cfg.Extensions.Enabled
	}

	bag := diag.NewBag(maxWarnings)
	opts := engine.Options{
		IncludeInternal: !ignoreInternal,
		Classifier:      snapshot.PrefixClassifier(snapshot.DefaultClassifier, cfg.Internal.Prefixes),
		Registry:        extension.DefaultRegistry(extensions),
		Reporter:        diag.BagReporter{Bag: bag},
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	run := func(sink engine.ProgressSink) (engine.Result, error) {
		if timer != nil {
			sink = timerSink{timer: timer, next: sink}
		}
		opts.Progress = sink
		oldSnap, newSnap, err := loadSnapshots(cmd.Context(), oldPath, newPath, sink)
		if err != nil {
			return engine.Result{}, err
		}
		return engine.Compare(cmd.Context(), oldSnap, newSnap, opts), nil
	}

	var result engine.Result
	if useUI && isTerminal(os.Stdout) {
		title := fmt.Sprintf("envdiff %s %s", oldPath, newPath)
		result, err = runDiffWithUI(title, run)
	} else {
		result, err = run(nil)
	}
	if err != nil {
		return err
	}

	if !quiet {
		for _, d := range bag.Items() {
			fmt.Fprintln(cmd.ErrOrStderr(), d)
		}
	}

	renderStart := time.Now()
	var out string
	if format == "json" {
		data, err := summary.RenderJSON(result.Diffs)
		if err != nil {
			return err
		}
		out = string(data) + "\n"
	} else {
		out = summary.Render(result.Diffs, summary.Options{Color: useColor})
	}
	if timer != nil {
		timer.Record(string(engine.PhaseRender), time.Since(renderStart), "")
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// loadSnapshots reads both containers concurrently. A failure on either
// side fails the whole invocation.
func loadSnapshots(ctx context.Context, oldPath, newPath string, sink engine.ProgressSink) (*snapshot.Snapshot, *snapshot.Snapshot, error) {
	var oldSnap, newSnap *snapshot.Snapshot
	start := time.Now()
	progress(sink, engine.Event{Phase: engine.PhaseLoad, Status: engine.StatusWorking, Detail: oldPath})

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		oldSnap, err = snapshot.Load(oldPath)
		return err
	})
	g.Go(func() error {
		var err error
		newSnap, err = snapshot.Load(newPath)
		return err
	})
	if err := g.Wait(); err != nil {
		progress(sink, engine.Event{Phase: engine.PhaseLoad, Status: engine.StatusError, Err: err})
		return nil, nil, err
	}
	progress(sink, engine.Event{Phase: engine.PhaseLoad, Status: engine.StatusDone, Elapsed: time.Since(start)})
	return oldSnap, newSnap, nil
}

func progress(sink engine.ProgressSink, evt engine.Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

// timerSink records completed phases into a Timer and forwards everything
// to the wrapped sink.
type timerSink struct {
	timer *observ.Timer
	next  engine.ProgressSink
}

func (s timerSink) OnEvent(evt engine.Event) {
	if evt.Status == engine.StatusDone {
		s.timer.Record(string(evt.Phase), evt.Elapsed, evt.Detail)
	}
	if s.next != nil {
		s.next.OnEvent(evt)
	}
}

// resolveColor turns the tri-state color flag (with the config fallback)
// into a concrete decision for stdout.
func resolveColor(cmd *cobra.Command, cfg toolConfig) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	if !cmd.Root().PersistentFlags().Changed("color") && cfg.Output.Color != "" {
		mode = cfg.Output.Color
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("invalid color mode %q (expected: auto|on|off)", mode)
	}
}
