package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/cda/internal/pipeline"
)

func convertCmd(a *app) *cobra.Command {
	var opts pipeline.Options

	c := &cobra.Command{
		Use:   "convert",
		Short: "Convert every workbook in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conv, _, err := a.converter()
			if err != nil {
				return err
			}

			summary, err := pipeline.NewRunner(conv, opts, a.logger).Run(cmd.Context())
			for _, dir := range summary.Converted {
				fmt.Fprintln(cmd.OutOrStdout(), dir)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "converted %d workbook(s)\n", len(summary.Converted))
			return nil
		},
	}

	c.Flags().StringVarP(&opts.InputDir, "input", "i", a.cfg.Paths.InputDir, "Directory scanned for .xlsx workbooks")
	c.Flags().StringVarP(&opts.OutputDir, "output", "o", a.cfg.Paths.OutputDir, "Directory receiving one folder per workbook")
	c.Flags().BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "Convert the remaining workbooks after a failure")
	return c
}
