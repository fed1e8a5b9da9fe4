package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report MLS Grid, WordPress and CRM configuration and connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), a.status(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
