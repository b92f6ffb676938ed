package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blochwalk/blochwalk/internal/domain"
)

// catalogRow is the command's view of one gate, local or remote.
type catalogRow struct {
	name       string
	title      string
	takesTheta bool
	takesPhi   bool
	matrix     [2][2]complex128
}

// newGatesCommand creates the "gates" subcommand that lists the gate
// catalog.
func newGatesCommand(opts *Options) *cobra.Command {
	var showMatrix bool

	cmd := &cobra.Command{
		Use:   "gates",
		Short: "List the supported gates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := loadCatalog(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return printCatalog(cmd.OutOrStdout(), rows, showMatrix)
		},
	}

	cmd.Flags().BoolVar(&showMatrix, "matrix", false, "Include the unitary matrix of each gate")

	return cmd
}

// loadCatalog reads the catalog locally, or from the server when
// --server is set.
func loadCatalog(ctx context.Context, opts *Options) ([]catalogRow, error) {
	if opts.Server == "" {
		catalog := domain.Catalog()

		rows := make([]catalogRow, 0, len(catalog))
		for _, g := range catalog {
			rows = append(rows, catalogRow{
				name:       g.Name,
				title:      g.Title,
				takesTheta: g.TakesTheta,
				takesPhi:   g.TakesPhi,
				matrix:     g.Matrix,
			})
		}

		return rows, nil
	}

	logger := LoggerFromContext(ctx)

	client, err := newRemoteClient(opts, logger)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	gates, err := client.ListGates(reqCtx)
	if err != nil {
		return nil, err
	}

	rows := make([]catalogRow, 0, len(gates))
	for _, g := range gates {
		rows = append(rows, catalogRow{
			name:       g.Name,
			title:      g.Title,
			takesTheta: g.TakesTheta,
			takesPhi:   g.TakesPhi,
			matrix:     g.Matrix,
		})
	}

	return rows, nil
}

// printCatalog writes the gate table, optionally with matrices.
func printCatalog(out io.Writer, rows []catalogRow, showMatrix bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tANGLES")

	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.name, row.title, angleSpec(row))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if !showMatrix {
		return nil
	}

	for _, row := range rows {
		fmt.Fprintf(out, "\n%s:\n", row.name)
		for _, matrixRow := range row.matrix {
			fmt.Fprintf(out, "  [%s  %s]\n",
				formatComplex(matrixRow[0]), formatComplex(matrixRow[1]))
		}
	}

	return nil
}

// angleSpec describes which angle arguments a gate takes.
func angleSpec(row catalogRow) string {
	switch {
	case row.takesTheta && row.takesPhi:
		return "θ:φ"
	case row.takesTheta:
		return "θ"
	case row.takesPhi:
		return "φ"
	default:
		return "-"
	}
}

// formatComplex renders a matrix entry compactly.
func formatComplex(c complex128) string {
	return fmt.Sprintf("%+.3f%+.3fi", real(c), imag(c))
}
