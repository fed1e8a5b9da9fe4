package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var areasSlug string

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Print service area guides",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		if areasSlug == "" {
			return printJSON(cmd.OutOrStdout(), a.data.ServiceAreas)
		}
		area, ok := a.data.ServiceArea(areasSlug)
		if !ok {
			return eris.Errorf("area %q not found", areasSlug)
		}
		return printJSON(cmd.OutOrStdout(), area)
	},
}

func init() {
	areasCmd.Flags().StringVar(&areasSlug, "slug", "", "print one area by slug")
	rootCmd.AddCommand(areasCmd)
}
