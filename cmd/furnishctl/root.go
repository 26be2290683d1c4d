package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/decorlens/backend/internal/infrastructure/catalog"
	"github.com/decorlens/backend/internal/infrastructure/taxonomy"
	"github.com/decorlens/backend/internal/logger"
	"github.com/decorlens/backend/internal/usecase"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	catalogFile    string
	taxonomyFile   string
	approvedStatus string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "furnishctl",
		Short: "Run the furniture selection engine against a local catalog file",
		Long: `furnishctl loads a JSON catalog file and runs the same selection engine the
server uses, printing results as JSON. The vision model is not used; selection
always follows the local ranking.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "catalog JSON file (required)")
	cmd.PersistentFlags().StringVar(&opts.taxonomyFile, "taxonomy", "", "taxonomy YAML file (embedded default when empty)")
	cmd.PersistentFlags().StringVar(&opts.approvedStatus, "approved-status", "approved", "document status treated as orderable; empty accepts all")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	_ = cmd.MarkPersistentFlagRequired("catalog")

	cmd.AddCommand(newRecommendCmd(opts))
	cmd.AddCommand(newMatchCmd(opts))
	return cmd
}

func (o *rootOptions) service() (*usecase.FurnishingService, error) {
	tax, err := taxonomy.Load(o.taxonomyFile)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	products, err := catalog.LoadMemoryCatalog(o.catalogFile, o.approvedStatus)
	if err != nil {
		return nil, err
	}

	log := logger.NewStructured(o.logLevel, "console")
	log.Debug("catalog loaded", map[string]interface{}{"documents": products.Size()})

	return usecase.NewFurnishingService(products, tax, nil, nil, usecase.FurnishingServiceConfig{}, log), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
