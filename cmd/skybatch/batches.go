package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyglowlab/skybatch/internal/app"
)

var batchesCmd = &cobra.Command{
	Use:   "batches [INPUT_PATH] [BATCH_NAME]",
	Short: "Make the execution batches",
	Long: `Makes the execution batches.

INPUT_PATH is the folder containing the experiment document and the static
assets (default "."). BATCH_NAME optionally overrides the batch_file_name
defined in the experiment document.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := "."
		if len(args) > 0 {
			input = args[0]
		}
		batchName := ""
		if len(args) > 1 {
			batchName = args[1]
		}

		compact, _ := cmd.Flags().GetBool("compact")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		scheduler, _ := cmd.Flags().GetString("scheduler")
		workers, _ := cmd.Flags().GetInt("workers")
		solver, _ := cmd.Flags().GetString("solver")
		logLevel, _ := cmd.Flags().GetString("log-level")
		logFormat, _ := cmd.Flags().GetString("log-format")

		a := app.NewApp(os.Stderr, app.Config{
			InputPath:  input,
			BatchName:  batchName,
			SolverPath: solver,
			Compact:    compact,
			BatchSize:  batchSize,
			Scheduler:  scheduler,
			Workers:    workers,
			LogLevel:   logLevel,
			LogFormat:  logFormat,
		})
		res, err := a.Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Done. %d runs prepared (%d combinations before pruning).\n",
			res.Retained, res.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchesCmd)

	batchesCmd.Flags().BoolP("compact", "c", false,
		"Chain similar executions; fewer runs at the cost of longer individual executions")
	batchesCmd.Flags().IntP("batch-size", "N", 300, "Number of runs per produced batch file")
	batchesCmd.Flags().StringP("scheduler", "s", "sequential", "Job scheduler: sequential, parallel or slurm")
	batchesCmd.Flags().Int("workers", 1, "Concurrent sandbox construction workers")
	batchesCmd.Flags().String("solver", "", "Path to the solver executable (default <INPUT_PATH>/bin/skysim)")
	batchesCmd.Flags().String("log-level", "info", "Logging level: debug, info, warn or error")
	batchesCmd.Flags().String("log-format", "text", "Log output format: text or json")
}
