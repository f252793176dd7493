package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		out string
		pdf bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the stored session as a LaTeX or PDF report",
		Long: "Renders the bias report for the stored session. Without --out the file is named " +
			"Resume_Bias_Report_YYYY-MM-DD.tex (or .pdf with --pdf) in the current directory.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.restore(cmd.Context())
			if err != nil {
				return err
			}
			path, err := a.exportReport(cmd.Context(), result, out, pdf)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Report written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path to the output file")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Compile the report to PDF with pdflatex")

	return cmd
}
