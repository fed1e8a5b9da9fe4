package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/chfrealty/horsefarm/internal/sitemap"
)

var sitemapRobots bool

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print sitemap.xml (or robots.txt with --robots)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sitemapRobots {
			_, err := io.WriteString(cmd.OutOrStdout(), sitemap.Robots(cfg.Site.URL))
			return err
		}
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		_, err = a.sitemap.Write(cmd.Context(), cmd.OutOrStdout())
		return err
	},
}

func init() {
	sitemapCmd.Flags().BoolVar(&sitemapRobots, "robots", false, "print robots.txt instead")
	rootCmd.AddCommand(sitemapCmd)
}
