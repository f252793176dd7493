package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-bias-checker/internal/pipeline"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		csvPath string
		outputs outputFlags
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a CSV of resumes for demographic bias",
		Long: "Reads a CSV with a header row, infers gender and race for every resume, groups match " +
			"scores by demographic and applies the 80% rule. The enriched records replace the stored session.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("failed to open CSV: %w", err)
			}
			defer func() { _ = f.Close() }()

			result, err := pipeline.RunCSV(cmd.Context(), f, a.runOptions())
			if err != nil {
				return err
			}
			return a.finish(cmd.Context(), result, &outputs)
		},
	}

	cmd.Flags().StringVarP(&csvPath, "csv", "c", "", "Path to the resume CSV file (required)")
	cmd.Flags().Uint64("seed", 0, "Seed for substituted scores when a row has none (0 = unseeded)")
	_ = cmd.MarkFlagRequired("csv")
	_ = a.v.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	outputs.register(cmd)

	return cmd
}
