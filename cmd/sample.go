package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"csv-lint/internal/sample"
	"csv-lint/internal/schema"

	"github.com/spf13/cobra"
)

var (
	violationP float64
	sampleSeed int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample <count>",
	Short: "Generate CSV rows that satisfy the schema",
	Long: `Writes rows to stdout that pass every rule in the schema (plus a
header row in named mode). With --violations, each cell instead breaks
one of its rules with the given probability; piping that back through
'lint' is a quick end-to-end smoke test.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadSchema()
		if err != nil {
			return err
		}
		if len(def.Rules) == 0 {
			return fmt.Errorf("schema has no columnDefs to generate from")
		}

		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid row count %q", args[0])
		}
		if violationP < 0 || violationP > 1 {
			return fmt.Errorf("violations probability must be in [0, 1], got %g", violationP)
		}

		comma, err := delimiterRune()
		if err != nil {
			return err
		}

		seed := sampleSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gen := sample.New(seed)

		w := csv.NewWriter(os.Stdout)
		w.Comma = comma
		if def.Mode == schema.Named {
			if err := w.Write(gen.HeaderRow(def)); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			var row []string
			if violationP > 0 {
				row = gen.ViolationChance(def, violationP)
			} else {
				row = gen.Row(def)
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	},
}

func init() {
	RootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().Float64Var(&violationP, "violations", 0, "probability that each cell breaks one of its rules")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "RNG seed for reproducible output (0 = time-based)")
}
