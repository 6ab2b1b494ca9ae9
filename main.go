// ABOUTME: Entry point for the mood dashboard
// ABOUTME: Defines the cobra command tree and routes to the TUI or one-shot analysis

// Package main provides the mood-dashboard command, an interactive and scriptable
// client for the mood analysis backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mood-dashboard/analysis"
)

const debugLogFile = "mood-dashboard-debug.log"

// Persistent flags shared by every command
var (
	configPath string
	debugLogOn bool
	cpuprofile string
	memprofile string
	prof       *profiler
)

var (
	watchOpts   WatchOptions
	analyzeOpts AnalyzeOptions
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mood-dashboard",
	Short: "Explore mood-based playlist analyses from the terminal",
	Long: `mood-dashboard asks the mood analysis backend for a playlist analysis
and shows it as a chart plus a list of track cards.

Without a subcommand it starts the interactive dashboard (same as "watch").`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { teardown() },
	RunE:              runWatch,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Start the interactive dashboard",
	Long: `Start the terminal dashboard. Changing any selector re-runs the analysis.
The config file is reloaded when it changes on disk.

Example:
  mood-dashboard watch --config ./mood-dashboard.toml`,
	RunE: runWatch,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and export the chart",
	Long: `Run an analysis without the interactive dashboard. The chart is written
as an image and the track cards are printed as a table.

Selectors that are not given on the command line fall back to the
configured defaults.

Examples:
  mood-dashboard analyze --mood sad --type topSongs
  mood-dashboard analyze --all --out ./charts --format svg
  mood-dashboard analyze --mood chill --html cards.html`,
	RunE: runAnalyze,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default ./mood-dashboard.toml or ~/.config/mood-dashboard/config.toml)")
	pf.BoolVar(&debugLogOn, "debug", false, "enable debug logging to "+debugLogFile)
	pf.StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to file")
	pf.StringVar(&memprofile, "memprofile", "", "write memory profile to file")

	watchCmd.Flags().BoolVar(&watchOpts.NoReload, "no-reload", false, "do not reload the config file when it changes")

	af := analyzeCmd.Flags()
	af.StringVarP(&analyzeOpts.Mood, "mood", "m", "", "mood to analyze (default from config)")
	af.StringVarP(&analyzeOpts.Type, "type", "t", "", "visualization type: audioFeatures, genreDistribution or topSongs")
	af.StringVarP(&analyzeOpts.Sort, "sort", "s", "", "sorting method (default from config)")
	af.BoolVarP(&analyzeOpts.All, "all", "a", false, "export every visualization type")
	af.StringVarP(&analyzeOpts.OutDir, "out", "o", "", "directory for chart images (default from config)")
	af.StringVarP(&analyzeOpts.Format, "format", "f", "", "chart image format: png or svg (default from config)")
	af.StringVar(&analyzeOpts.HTMLPath, "html", "", "also write the track cards as HTML to this file")

	_ = analyzeCmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		types := analysis.VisualizationTypes()
		names := make([]string, len(types))

		for i, t := range types {
			names[i] = string(t)
		}

		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(watchCmd, analyzeCmd)
}

// setup starts profiling and debug logging before any command runs
func setup(*cobra.Command, []string) error {
	p, err := startProfiling(cpuprofile, memprofile)
	if err != nil {
		return err
	}

	prof = p

	if debugLogOn {
		return SetupDebugLog(debugLogFile)
	}

	return nil
}

func teardown() {
	if prof != nil {
		prof.stop()
	}
}

func runWatch(*cobra.Command, []string) error {
	watchOpts.ConfigPath = configPath

	return RunTUI(watchOpts)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	opts := analyzeOpts
	opts.ConfigPath = configPath
	opts.HasMood = cmd.Flags().Changed("mood")
	opts.HasType = cmd.Flags().Changed("type")
	opts.HasSort = cmd.Flags().Changed("sort")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return RunAnalyze(ctx, opts, cmd.OutOrStdout())
}
