package main

import (
	"github.com/decorlens/backend/internal/domain"
	"github.com/spf13/cobra"
)

func newRecommendCmd(root *rootOptions) *cobra.Command {
	var (
		style      string
		categories []string
		maxItems   int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Select furniture for a style and a list of categories",
		Example: `  furnishctl recommend --catalog products.json --style nordic --category sofa --category lt
  furnishctl recommend --catalog products.json --style modern --category sofa,rug --max-items 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := root.service()
			if err != nil {
				return err
			}

			result, err := service.Recommend(cmd.Context(), &domain.SelectionRequest{
				Style:      domain.Style(style),
				Categories: categories,
				MaxItems:   maxItems,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", string(domain.StyleModern), "design style")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "requested category, repeatable or comma separated (required)")
	cmd.Flags().IntVarP(&maxItems, "max-items", "n", 0, "maximum number of items (default from engine)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
