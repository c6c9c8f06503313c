package main

import (
	"context"

	"shopify-template-sync/internal/infrastructure/config"
	"shopify-template-sync/internal/infrastructure/shopify"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "templatesync",
	Short: "Sync a JSON theme template and its images across Shopify stores",
	Long: "templatesync downloads a template from the source shop, pushes it to the selected shops\n" +
		"and re-creates every shopify://shop_images reference in each target's file library.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSync,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP(config.KeyConfig, "c", config.DefaultConfigPath, "path to the shop config file")
	pf.String(config.KeyAPIVersion, shopify.DefaultAPIVersion, "Admin API version")
	pf.String(config.KeyDir, ".", "working directory templates are downloaded into")
	pf.String(config.KeyLogLevel, "warn", "log level (debug, info, warn, error)")

	f := rootCmd.Flags()
	f.StringP(config.KeyEnv, "e", "", "source shop (default: first shop in the config file)")
	f.BoolP(config.KeyYes, "y", false, "answer yes to every confirmation")
	f.StringP(config.KeyTemplate, "t", "", "template to sync, e.g. product or templates/product.json")
	f.StringSliceP(config.KeyShop, "s", nil, "target shop, repeatable (default: ask)")
	f.String(config.KeyMetricsFile, "", "write Prometheus textfile metrics to this path")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
