package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salesclean/internal/sample"
	"github.com/JonMunkholm/salesclean/internal/tabular"
)

var sampleFlags struct {
	output string
	opts   sample.Options
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic sales export",
	Long: `Writes a synthetic sales export with a controllable mix of defects:
duplicate order lines, SALES values that disagree with quantity x price,
inconsistently cased STATUS values and missing STATE cells.

The output is written as latin1, like the exports it imitates.`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	d := sample.DefaultOptions()
	f := sampleCmd.Flags()
	f.StringVarP(&sampleFlags.output, "output", "o", "sales_data_sample.csv", "output file, .csv or .xlsx")
	f.IntVarP(&sampleFlags.opts.Rows, "rows", "n", d.Rows, "number of data rows")
	f.Int64Var(&sampleFlags.opts.Seed, "seed", d.Seed, "random seed")
	f.Float64Var(&sampleFlags.opts.DuplicateRate, "duplicates", d.DuplicateRate, "fraction of duplicated rows")
	f.Float64Var(&sampleFlags.opts.MismatchRate, "mismatches", d.MismatchRate, "fraction of rows with a wrong SALES value")
	f.Float64Var(&sampleFlags.opts.DirtyStatus, "dirty-status", d.DirtyStatus, "fraction of rows with badly cased STATUS")
	f.Float64Var(&sampleFlags.opts.MissingState, "missing-state", d.MissingState, "fraction of rows without STATE")
	f.BoolVar(&sampleFlags.opts.DayFirstDates, "day-first", d.DayFirstDates, "write ORDERDATE as D/M/YYYY")
	f.BoolVar(&sampleFlags.opts.IncludeTimeOfDay, "with-time", d.IncludeTimeOfDay, `append " 0:00" to ORDERDATE`)
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	opts := sampleFlags.opts
	if opts.Rows < 0 {
		return fmt.Errorf("--rows must be >= 0, got %d", opts.Rows)
	}

	header, rows := sample.Generate(opts)

	cells := make([][]any, len(rows))
	for i, row := range rows {
		cells[i] = make([]any, len(row))
		for j, v := range row {
			cells[i][j] = v
		}
	}

	err := tabular.Write(sampleFlags.output, header, cells, tabular.WriteOptions{
		Encoding: tabular.EncodingLatin1,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(rows), sampleFlags.output)
	return nil
}
