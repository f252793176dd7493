package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-bias-checker/internal/ingestion"
	"github.com/jonathan/resume-bias-checker/internal/pipeline"
)

func newSampleCmd(a *app) *cobra.Command {
	var outputs outputFlags

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Analyze the built-in ten-resume sample dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := pipeline.Run(cmd.Context(), ingestion.SampleRecords(), a.runOptions())
			if err != nil {
				return err
			}
			return a.finish(cmd.Context(), result, &outputs)
		},
	}
	outputs.register(cmd)

	return cmd
}
