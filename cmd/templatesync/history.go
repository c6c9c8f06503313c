package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sync runs",
	Long:  "Show the most recent sync runs saved in MongoDB (MONGODB_URI).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.opts.MongoURI == "" {
			return errors.New("history needs MONGODB_URI to be set")
		}
		repo, err := a.history(cmd.Context())
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt64("limit")
		runs, err := repo.ListRecent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sync runs recorded.")
			return nil
		}

		for _, run := range runs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %-36s %d shop(s), %d failed\n",
				run.StartedAt.Local().Format(time.DateTime), run.Source, run.Template, len(run.Outcomes), run.Failures())
			for _, o := range run.Outcomes {
				status := "pushed"
				switch {
				case o.PushError != "":
					status = "push failed: " + o.PushError
				case o.PushSkipped:
					status = "kept existing"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "    %-10s %s, %d/%d images\n", o.Shop, status, o.ImagesUploaded, o.ImagesFound)
				if o.ImageError != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "    %-10s image error: %s\n", "", o.ImageError)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int64("limit", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
