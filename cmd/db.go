package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"csv-lint/internal/dialect"
	"csv-lint/internal/lint"
	"csv-lint/internal/source"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn        string
	driverName string
	dbLimit    int
)

var dbCmd = &cobra.Command{
	Use:   "db <table>",
	Short: "Lint the rows of a database table",
	Long: `Reads every row of a table (columns in table order, NULL as the
empty cell) and applies the same schema checks as 'lint'. In named mode
the rules match the result-set column names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]

		def, err := loadSchema()
		if err != nil {
			return err
		}

		// Connection: active config entry, falling back to flags.
		connDSN := ""
		connDriver := ""
		if config, err := GetActiveSourceConfig(); err == nil {
			connDSN = config.DSN
			connDriver = config.Driver
		} else {
			connDSN = viper.GetString("database.dsn")
			connDriver = viper.GetString("database.driver")
		}
		if connDSN == "" {
			return fmt.Errorf("no database configured: add a databases entry to the config or pass --dsn")
		}
		if connDriver == "" {
			connDriver = dialect.DetectDriver(connDSN)
		}

		db, err := sql.Open(connDriver, connDSN)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		d := dialect.GetDialect(connDriver)
		log.Printf("Using dialect: %s", connDriver)

		query := d.SelectRowsQuery(table)
		if dbLimit > 0 {
			query = d.LimitRowsQuery(query, dbLimit)
		}

		rows, err := db.Query(query)
		if err != nil {
			return fmt.Errorf("failed to query table %s: %w", table, err)
		}

		src, err := source.NewDBSource(rows)
		if err != nil {
			rows.Close()
			return err
		}
		defer src.Close()

		rep := lint.NewReporter(os.Stdout)
		checker := lint.NewChecker(def, rep)
		problems, err := checker.Run(src, nil)
		if err != nil {
			return err
		}

		log.Printf("Checked %d rows of %s: %d problem(s) found", checker.Rows(), table, problems)
		if problems > 0 {
			exitStatus = 1
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dbCmd)

	dbCmd.Flags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")
	dbCmd.Flags().StringVar(&driverName, "driver", "", "database driver (mysql, postgres, mssql, oracle)")
	dbCmd.Flags().IntVar(&dbLimit, "limit", 0, "read at most N rows (0 = all)")

	viper.BindPFlag("database.dsn", dbCmd.Flags().Lookup("dsn"))
	viper.BindPFlag("database.driver", dbCmd.Flags().Lookup("driver"))
}
