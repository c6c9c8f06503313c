package main

import (
	"fmt"

	"shopify-template-sync/internal/infrastructure/shopify"

	"github.com/spf13/cobra"
)

var shopsCmd = &cobra.Command{
	Use:   "shops",
	Short: "List the configured shops",
	Long:  "List the shops of the config file in declaration order. The default source shop is marked with *.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.shops.Len() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No shops configured.")
			return nil
		}

		def := a.shops.Default()
		for _, name := range a.shops.Names() {
			shop, _ := a.shops.Get(name)
			marker := " "
			if name == def {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %-36s theme %d\n", marker, name, shop.Store, shop.ThemeID)
		}

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		checker := shopify.NewAccessChecker(shopify.NewClientPool(a.opts.APIVersion, a.httpClient()), a.logger)
		failed := 0
		for _, st := range checker.CheckAll(cmd.Context(), a.shops) {
			switch {
			case st.Err != nil:
				failed++
				a.reporter.Failure("%s: check failed", st.Shop)
				a.reporter.Detail("%v", st.Err)
			case !st.Valid:
				failed++
				a.reporter.Failure("%s: access token rejected", st.Shop)
			default:
				a.reporter.Success("%s: ok (%s)", st.Shop, st.ShopName)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d shops failed the access check", failed, a.shops.Len())
		}
		return nil
	},
}

func init() {
	shopsCmd.Flags().Bool("check", false, "verify each shop's access token against the Admin API")
	rootCmd.AddCommand(shopsCmd)
}
