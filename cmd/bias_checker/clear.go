package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeStore(st)

			if err := st.Delete(cmd.Context(), a.cfg.SessionKey); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
			fmt.Fprintf(a.out, "Session %q cleared\n", a.cfg.SessionKey)
			return nil
		},
	}
}
