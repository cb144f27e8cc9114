package main

import (
	"fmt"
	"os"

	"github.com/baserock/megarepo/internal/aggregate"
	"github.com/baserock/megarepo/internal/alias"
	"github.com/baserock/megarepo/internal/config"
	"github.com/baserock/megarepo/internal/git"
	"github.com/baserock/megarepo/internal/models"
	"github.com/baserock/megarepo/internal/proc"
	"github.com/baserock/megarepo/internal/sources"
	"github.com/baserock/megarepo/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	gitCacheDir string
	modeFlag    string
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "megarepo DEFINITION_FILE OUTPUT_DIR",
		Short: "Aggregate a build definition's source repositories into one megarepo",
		Args:  cobra.ExactArgs(2),
		RunE:  runAggregate,
	}

	rootCmd.Flags().StringVarP(&gitCacheDir, "git-cache-dir", "c", "", "local git cache directory (default from config)")
	rootCmd.Flags().StringVarP(&modeFlag, "mode", "m", models.ModeSubmodule.String(), "aggregation mode: "+models.ModeNames())
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAggregate(cmd *cobra.Command, args []string) error {
	mode, err := models.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if gitCacheDir != "" {
		cfg.Paths.GitCacheDir = gitCacheDir
	}
	logger.Debug("using git cache", "dir", cfg.Paths.GitCacheDir, "remote_cache", cfg.Remote.CacheURL)

	resolver, err := alias.NewResolver(cfg.Aliases)
	if err != nil {
		return err
	}

	definitionFile, outputDir := args[0], args[1]

	collector := sources.NewCollector(resolver, logger)
	set, err := collector.Collect(definitionFile)
	if err != nil {
		return fmt.Errorf("collecting sources for %s: %w", definitionFile, err)
	}
	logger.Info("collected desired sources", "definition", definitionFile, "count", set.Len())

	g := git.New(proc.ExecRunner{})
	strategy := aggregate.New(mode, outputDir, g, cfg, logger)
	director := aggregate.NewDirector(outputDir, mode, strategy, g, logger)

	results, err := director.Converge(set)
	if err != nil {
		return err
	}

	fmt.Print(ui.RenderSummary(mode, results))
	return nil
}
