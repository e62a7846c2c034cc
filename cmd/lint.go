package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"csv-lint/internal/lint"
	"csv-lint/internal/schema"
	"csv-lint/internal/source"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	delimiter string
	progress  bool
	limitRows int
)

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Lint a CSV file (or stdin) against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadSchema()
		if err != nil {
			return err
		}
		comma, err := delimiterRune()
		if err != nil {
			return err
		}

		in := os.Stdin
		fromFile := len(args) == 1 && args[0] != "-"
		if fromFile {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer f.Close()
			in = f
		}

		// Progress tracks the byte offset into the file; row counts are
		// unknown up front on a stream.
		var reader io.Reader = in
		var bar *uiprogress.Bar
		var counter *countingReader
		if progress && fromFile {
			if info, err := in.Stat(); err == nil && info.Size() > 0 {
				counter = &countingReader{r: in}
				reader = counter
				uiprogress.Start()
				bar = uiprogress.AddBar(int(info.Size())).AppendCompleted().PrependElapsed()
			}
		}

		src, err := source.NewFileSource(reader, comma, def.Mode == schema.Named)
		if err != nil {
			return err
		}

		rep := lint.NewReporter(os.Stdout)
		checker := lint.NewChecker(def, rep)

		var onRecord func()
		if bar != nil {
			onRecord = func() { bar.Set(int(counter.n)) }
		}

		start := time.Now()
		problems, err := checker.Run(source.Limit(src, limitRows), onRecord)
		if bar != nil {
			bar.Set(bar.Total)
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		log.Printf("Checked %d rows in %s: %d problem(s) found",
			checker.Rows(), time.Since(start).Round(time.Millisecond), problems)
		if problems > 0 {
			exitStatus = 1
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", `field delimiter (single character, \t for tab)`)
	lintCmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar (regular files only)")
	lintCmd.Flags().IntVar(&limitRows, "limit", 0, "stop after N records (0 = all)")

	viper.BindPFlag("settings.delimiter", lintCmd.Flags().Lookup("delimiter"))
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
