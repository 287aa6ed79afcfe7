package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/naka-gawa/pr-stats/internal/config"
	"github.com/naka-gawa/pr-stats/internal/gateway"
	"github.com/naka-gawa/pr-stats/internal/report"
	"github.com/naka-gawa/pr-stats/internal/usecase"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat",
	Short: "Prints monthly statistics of merged pull requests as CSV",
	Long: `Splits the time from --start until now (or --end) into one-month windows,
collects the pull requests merged in each window and prints one CSV row per window.
Use --query for a GitHub search (requires GITHUB_TOKEN) or --input for a JSON log file.`,
	Example: `  pr-stats stat --query "repo:owner/name" --start 2024-01-01
  pr-stats stat --input prs.json --start 2024-01-01 --end 2024-07-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Flag errors above print usage; failures past this point do not.
		cmd.SilenceUsage = true

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		cfg := config.Config{Verbose: verbose}
		cfg.Input, _ = cmd.Flags().GetString("input")
		cfg.Query, _ = cmd.Flags().GetString("query")
		cfg.Start, _ = cmd.Flags().GetString("start")
		cfg.End, _ = cmd.Flags().GetString("end")
		cfg.Delay, _ = cmd.Flags().GetDuration("delay")
		cfg.Token = config.LoadEnv(logger)

		return runStat(ctx, cfg, cmd.OutOrStdout(), logger)
	},
}

// runStat wires the source, the writer and the reporter for one run.
func runStat(ctx context.Context, cfg config.Config, out io.Writer, logger *log.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	start, err := usecase.ParseStart(cfg.Start)
	if err != nil {
		return err
	}
	var end time.Time
	if cfg.End != "" {
		if end, err = usecase.ParseStart(cfg.End); err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
	}

	var source gateway.Source
	if cfg.Query != "" {
		source, err = gateway.NewGitHubGateway(cfg.Token, cfg.Query, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
	} else {
		source, err = gateway.NewLogFileGateway(cfg.Input)
		if err != nil {
			return err
		}
	}

	reporter := usecase.NewReporter(source, report.NewCSVWriter(out), usecase.SystemClock{}, cfg.Delay, logger)
	return reporter.Run(ctx, start, end)
}

func init() {
	rootCmd.AddCommand(statCmd)
	statCmd.Flags().StringP("input", "i", "", "Path to a JSON log of pull requests")
	statCmd.Flags().StringP("query", "q", "", "GitHub search query, e.g. \"repo:owner/name\"")
	statCmd.Flags().StringP("start", "s", "", "Start of the first window, ISO-8601 (required)")
	statCmd.Flags().StringP("end", "e", "", "Stop before windows starting at or after this date (default: now)")
	statCmd.Flags().Duration("delay", usecase.DefaultDelay, "Pause between windows")
	statCmd.MarkFlagRequired("start")
}
