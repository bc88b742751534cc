// Package pipeline wires the conversion stages together: workbook to
// kernel, kernel to YAML document and SQL script, and the batch run over an
// input directory that writes both artifacts per workbook.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/cda/internal/catalog"
	"github.com/JonMunkholm/cda/internal/document"
	"github.com/JonMunkholm/cda/internal/kernel"
	"github.com/JonMunkholm/cda/internal/keywords"
	"github.com/JonMunkholm/cda/internal/logging"
	"github.com/JonMunkholm/cda/internal/sqlgen"
	"github.com/JonMunkholm/cda/internal/sqltype"
)

// Result holds everything produced from one workbook. Nothing is written
// until the whole Result exists, so a failing workbook leaves no output.
type Result struct {
	Kernel   *kernel.Kernel
	Document []byte
	SQL      string
	Warnings []sqlgen.ValidationError
}

// Converter turns a workbook into a Result. It only holds read-only tables
// and is safe for concurrent use.
type Converter struct {
	catalog *catalog.Catalog
	sql     *sqlgen.Builder
	logger  *slog.Logger
}

// NewConverter creates a Converter. A nil logger means slog.Default().
func NewConverter(cat *catalog.Catalog, types *sqltype.Resolver, kw *keywords.Set, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		catalog: cat,
		sql:     sqlgen.NewBuilder(types, kw),
		logger:  logger,
	}
}

// Convert builds the kernel of src and renders both artifacts.
func (c *Converter) Convert(ctx context.Context, src kernel.Source) (*Result, error) {
	logger := logging.FromContextWith(ctx, c.logger)

	k, err := kernel.NewBuilder(c.catalog, logger).Build(src)
	if err != nil {
		return nil, err
	}

	doc, err := document.Marshal(k)
	if err != nil {
		return nil, err
	}

	script, err := c.sql.Build(k)
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	var warnings []sqlgen.ValidationError
	for _, pc := range k.Picklists {
		for _, w := range sqlgen.ValidateValues(pc) {
			logger.Warn("picklist value does not fit column",
				"table", w.Table,
				"column", w.Column,
				"row", w.Row,
				"value", w.Value,
				"reason", w.Message,
			)
			warnings = append(warnings, w)
		}
	}

	return &Result{Kernel: k, Document: doc, SQL: script, Warnings: warnings}, nil
}
