package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pmallory/sessionsearch/internal/config"
	"github.com/pmallory/sessionsearch/internal/index"
	"github.com/pmallory/sessionsearch/internal/render"
	"github.com/pmallory/sessionsearch/internal/search"
)

// deepSearchTimeout bounds a single ripgrep run.
const deepSearchTimeout = 60 * time.Second

var (
	deep     bool
	openclaw bool
	agent    string
	limit    int
	project  string
	verbose  bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sessionsearch <query>...",
	Short: "Search AI agent session history",
	Long: `sessionsearch finds past Claude Code or OpenClaw sessions on this
machine. Query words are ANDed together; quote a phrase to match it
as a whole.

By default it scans session metadata (pre-built sessions-index.json
files for Claude Code, session file headers for OpenClaw), which is
instant. With --deep it searches full message content via ripgrep,
which is slower but thorough.`,
	Example: `  sessionsearch kubernetes rbac
  sessionsearch --deep "connection refused"
  sessionsearch --project myapp --limit 5 migration
  sessionsearch --openclaw --agent main heartbeat config`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSearch,
}

func init() {
	rootCmd.Flags().BoolVar(&deep, "deep", false,
		"Search full message content (slower)")
	rootCmd.Flags().BoolVar(&openclaw, "openclaw", false,
		"Search OpenClaw sessions instead of Claude Code")
	rootCmd.Flags().StringVar(&agent, "agent", "main",
		"OpenClaw agent whose sessions to search")
	rootCmd.Flags().IntVar(&limit, "limit", search.DefaultLimit,
		"Maximum results to show")
	rootCmd.Flags().StringVar(&project, "project", "",
		"Only sessions from projects matching this substring")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v",
		false, "Enable debug logging")
}

func runSearch(cmd *cobra.Command, args []string) error {
	terms := search.ParseTerms(args)
	if len(terms) == 0 {
		return fmt.Errorf("no search query provided")
	}
	query := strings.Join(terms, " ")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if openclaw {
		return runOpenClaw(cmd.Context(), cfg, terms, query)
	}
	return runClaude(cmd.Context(), cfg, terms, query)
}

func runClaude(
	ctx context.Context, cfg config.Config,
	terms []string, query string,
) error {
	base := cfg.ClaudeProjectsDir
	if _, err := os.Stat(base); err != nil {
		return fmt.Errorf(
			"projects directory not found: %s", base,
		)
	}

	if deep {
		ctx, cancel := context.WithTimeout(ctx, deepSearchTimeout)
		defer cancel()

		opts := search.Options{
			Terms:         terms,
			Limit:         limit,
			ProjectFilter: project,
		}
		matches, err := search.DeepClaude(ctx, base, opts, logger)
		if err != nil {
			return err
		}
		render.DeepResults(os.Stdout, matches, query, limit, false)
		return nil
	}

	matches := index.Search(base, project, terms, logger)
	render.IndexResults(os.Stdout, matches, query, limit)
	return nil
}

func runOpenClaw(
	ctx context.Context, cfg config.Config,
	terms []string, query string,
) error {
	base := cfg.OpenClawSessionsDir(agent)
	if _, err := os.Stat(base); err != nil {
		return fmt.Errorf(
			"OpenClaw sessions directory not found: %s "+
				"(is OpenClaw installed with session history?)",
			base,
		)
	}

	if deep {
		ctx, cancel := context.WithTimeout(ctx, deepSearchTimeout)
		defer cancel()

		opts := search.Options{Terms: terms, Limit: limit}
		matches, err := search.DeepOpenClaw(ctx, base, opts, logger)
		if err != nil {
			return err
		}
		render.DeepResults(os.Stdout, matches, query, limit, true)
		return nil
	}

	matches := search.OpenClawMetadata(base, terms, limit, logger)
	render.OpenClawResults(os.Stdout, matches, query, limit)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
