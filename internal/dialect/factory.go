package dialect

import "strings"

// GetDialect returns the Dialect implementation for a driver name.
func GetDialect(driver string) Dialect {
	switch driver {
	case "postgres":
		return &PostgresDialect{}
	case "sqlserver", "mssql":
		return &MSSQLDialect{}
	case "oracle":
		return &OracleDialect{}
	default: // mysql
		return &MysqlDialect{}
	}
}

// DetectDriver guesses the driver name from a DSN when the config does not
// name one explicitly.
func DetectDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "oracle://"):
		return "oracle"
	case strings.HasPrefix(dsn, "sqlserver://") || strings.Contains(dsn, "server="):
		return "mssql"
	case strings.Contains(dsn, "postgres") || strings.Contains(dsn, "sslmode"):
		return "postgres"
	default:
		return "mysql"
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
