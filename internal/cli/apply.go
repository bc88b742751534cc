package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/cda/internal/apply"
	"github.com/JonMunkholm/cda/internal/pipeline"
)

func applyCmd(a *app) *cobra.Command {
	var dryRun bool

	c := &cobra.Command{
		Use:   "apply WORKBOOK",
		Short: "Convert one workbook and run its script against PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !dryRun {
				if err := a.cfg.RequireDatabase(); err != nil {
					return err
				}
			}

			conv, _, err := a.converter()
			if err != nil {
				return err
			}

			res, err := pipeline.ConvertFile(cmd.Context(), conv, args[0])
			if err != nil {
				return err
			}

			if dryRun {
				_, err := io.WriteString(cmd.OutOrStdout(), res.SQL)
				return err
			}

			pool, err := apply.Connect(cmd.Context(), a.cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()
			a.logger.Info("connected to database", "name", apply.DatabaseName(a.cfg.Database.URL))

			exec := apply.NewExecutor(pool, a.cfg.Database.ApplyTimeout, a.logger)
			if err := exec.Apply(cmd.Context(), res.SQL); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %d statement(s)\n", apply.Statements(res.SQL))
			return nil
		},
	}

	c.Flags().BoolVar(&dryRun, "dry-run", false, "Print the script instead of running it")
	return c
}
