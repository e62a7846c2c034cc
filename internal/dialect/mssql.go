package dialect

import (
	"fmt"
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (d *MSSQLDialect) SelectRowsQuery(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) LimitRowsQuery(query string, limit int) string {
	// T-SQL has no trailing LIMIT; inject TOP after the first SELECT.
	trimmed := strings.TrimSpace(query)
	if strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return "SELECT TOP " + fmt.Sprint(limit) + trimmed[len("SELECT"):]
	}
	return query
}
