// Package cli wires the converter, the schema applier and the HTTP service
// into the cda command.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/cda/internal/catalog"
	"github.com/JonMunkholm/cda/internal/config"
	"github.com/JonMunkholm/cda/internal/keywords"
	"github.com/JonMunkholm/cda/internal/logging"
	"github.com/JonMunkholm/cda/internal/pipeline"
	"github.com/JonMunkholm/cda/internal/sqltype"
)

// app is the state shared by the subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	logLevel  string
	logFormat string
}

// Execute runs the cda command with os.Args.
func Execute(ctx context.Context, cfg *config.Config) error {
	return newRootCmd(cfg).ExecuteContext(ctx)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg, logger: slog.Default()}
	convert := convertCmd(a)

	cmd := &cobra.Command{
		Use:          "cda",
		Short:        "Convert data model workbooks into a kernel document and PostgreSQL DDL",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.logger = logging.Setup(a.logLevel, a.logFormat)
		},
		// Without a subcommand, cda converts the input directory.
		RunE: convert.RunE,
	}
	cmd.Flags().AddFlagSet(convert.Flags())

	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", cfg.Logging.Level, "debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", cfg.Logging.Format, "text or json")

	cmd.AddCommand(convert, applyCmd(a), serveCmd(a))
	return cmd
}

// converter builds the workbook converter from the configured keyword list,
// the built-in picklist catalog and the PostgreSQL type map.
func (a *app) converter() (*pipeline.Converter, *catalog.Catalog, error) {
	kw, err := a.keywords()
	if err != nil {
		return nil, nil, err
	}
	cat := catalog.Default()
	return pipeline.NewConverter(cat, sqltype.Postgres(), kw, a.logger), cat, nil
}

func (a *app) keywords() (*keywords.Set, error) {
	if path := a.cfg.Paths.KeywordsFile; path != "" {
		kw, err := keywords.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load keywords: %w", err)
		}
		a.logger.Debug("keywords loaded", "file", path, "count", kw.Len())
		return kw, nil
	}
	return keywords.Default()
}
