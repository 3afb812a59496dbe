// seed_quotations genera el script SQL del listado de cotizaciones:
// la tabla quotations y, opcionalmente, las cotizaciones de ejemplo.
//
// Uso: go run ./cmd/seed_quotations [--out archivo.sql] [--schema-only]
// Sin --out escribe en la salida estándar.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outPath    string
		schemaOnly bool
	)
	cmd := &cobra.Command{
		Use:   "seed_quotations",
		Short: "Genera el SQL de la tabla quotations con datos de ejemplo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []*entity.QuotationSummary
			if !schemaOnly {
				rows = memory.SampleQuotations()
			}
			if outPath == "" {
				return writeSeed(cmd.OutOrStdout(), rows)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("crear archivo: %w", err)
			}
			defer f.Close()
			if err := writeSeed(f, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Generado %s: %d cotizaciones\n", outPath, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "archivo de salida (por defecto stdout)")
	cmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "solo la definición de la tabla")
	return cmd
}

func writeSeed(w io.Writer, rows []*entity.QuotationSummary) error {
	var b strings.Builder
	b.WriteString("-- Listado de cotizaciones\n\n")
	b.WriteString(postgres.SchemaSQL)
	b.WriteString("\n")
	if len(rows) > 0 {
		b.WriteString("\nINSERT INTO quotations (number, customer_name, issue_date, valid_until, total, status) VALUES\n")
		for i, r := range rows {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %s, '%s')",
				escapeSQL(r.Number), escapeSQL(r.CustomerName),
				r.Date.Format("2006-01-02"), r.ValidUntil.Format("2006-01-02"),
				r.Total.StringFixed(2), escapeSQL(r.Status))
			if i < len(rows)-1 {
				b.WriteString(",\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString("ON CONFLICT (number) DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
