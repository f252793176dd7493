package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored session without re-running inference",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.restore(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.PrintResult(result)

			if out != "" {
				if err := writeJSON(out, result); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Results written to %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Also write the restored result as JSON to this file")

	return cmd
}
