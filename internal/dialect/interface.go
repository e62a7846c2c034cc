package dialect

// Dialect abstracts database-specific SQL for reading a table's rows.
// The linter only ever reads; there are no write paths here.
type Dialect interface {
	// QuoteIdent quotes a table or column identifier.
	QuoteIdent(name string) string
	// SelectRowsQuery builds the full-table read for linting.
	SelectRowsQuery(table string) string
	// LimitRowsQuery caps an existing query at limit rows.
	LimitRowsQuery(query string, limit int) string
}
