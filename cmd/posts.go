package main

import (
	"github.com/spf13/cobra"

	"github.com/chfrealty/horsefarm/internal/content"
	"github.com/chfrealty/horsefarm/internal/model"
)

var (
	postsSlug     string
	postsQuery    string
	postsCategory string
	postsRelated  int
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Print blog posts (live from WordPress, or the fallback dataset)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if postsSlug != "" {
			post, ok := a.content.Post(ctx, postsSlug)
			if !ok {
				return post.Reason
			}
			if postsRelated > 0 {
				return printJSON(out, a.content.Related(ctx, post.Value, postsRelated).Value)
			}
			return printJSON(out, post.Value)
		}

		posts := a.content.Posts(ctx).Value
		if postsCategory != "" {
			posts = content.InCategory(posts, postsCategory)
		}
		posts = content.Matching(posts, postsQuery)
		if posts == nil {
			posts = []model.BlogPost{}
		}
		return printJSON(out, posts)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print blog categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), a.content.Categories(cmd.Context()).Value)
	},
}

func init() {
	postsCmd.Flags().StringVar(&postsSlug, "slug", "", "print one post by slug")
	postsCmd.Flags().StringVar(&postsQuery, "query", "", "case-insensitive text search")
	postsCmd.Flags().StringVar(&postsCategory, "category", "", "category slug")
	postsCmd.Flags().IntVar(&postsRelated, "related", 0, "with --slug, print N related posts instead")
	rootCmd.AddCommand(postsCmd, categoriesCmd)
}
