package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/decorlens/backend/internal/domain"
	"github.com/spf13/cobra"
)

func newMatchCmd(root *rootOptions) *cobra.Command {
	var (
		style     string
		itemsFile string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Bind detected items from a JSON file to catalog products",
		Long: `match reads a JSON array of detected items, each with number, category and
position {x, y} in percent, and binds every distinct category to one product.
Use --items - to read the array from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readDetectedItems(itemsFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			service, err := root.service()
			if err != nil {
				return err
			}

			results, err := service.MatchDetections(cmd.Context(), &domain.DetectionRequest{
				Style: domain.Style(style),
				Items: items,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"items": results})
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "design style used to rank products")
	cmd.Flags().StringVarP(&itemsFile, "items", "i", "", "detected items JSON file, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("items")
	return cmd
}

func readDetectedItems(path string, stdin io.Reader) ([]domain.DetectedItem, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	var items []domain.DetectedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no detected items", domain.ErrInvalidRequest)
	}
	return items, nil
}
