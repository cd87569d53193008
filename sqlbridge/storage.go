package sqlbridge

import (
	"context"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// convertingDeclTypes are the declared column types for which the sqlite
// driver rewrites values while scanning: integers become bool under
// "boolean", and integers and text become time.Time under the date types.
var convertingDeclTypes = map[string]bool{
	"boolean":   true,
	"date":      true,
	"datetime":  true,
	"timestamp": true,
}

// storageClassQuery returns a statement that yields the same rows as stmt
// with every value in its stored class. If a result column of stmt has a
// converting declared type, stmt is wrapped in a CTE that re-projects each
// column as an expression; expression columns carry no declared type.
//
// The statement is only prepared here, never stepped. stmt comes back
// unchanged when no column needs it, when it writes (RETURNING), or when
// the wrapped form does not prepare. Prepare errors are left for the caller
// to hit and report on the real run.
func (c *Conn) storageClassQuery(ctx context.Context, stmt string) string {
	conn, err := c.sqlDB.Conn(ctx)
	if err != nil {
		return stmt
	}
	defer conn.Close()

	query := stmt
	_ = conn.Raw(func(driverConn any) error {
		sc, ok := driverConn.(*sqlite3.SQLiteConn)
		if !ok {
			return nil
		}
		cols, convert, err := inspectColumns(ctx, sc, stmt)
		if err != nil || !convert {
			return err
		}
		wrapped := wrapColumns(stmt, cols)
		ws, err := sc.PrepareContext(ctx, wrapped)
		if err != nil {
			return err
		}
		_ = ws.Close()
		query = wrapped
		return nil
	})
	return query
}

// inspectColumns prepares stmt and reports its result column names and
// whether any of them has a converting declared type.
func inspectColumns(ctx context.Context, sc *sqlite3.SQLiteConn, stmt string) ([]string, bool, error) {
	ds, err := sc.PrepareContext(ctx, stmt)
	if err != nil {
		return nil, false, err
	}
	defer ds.Close()

	st, ok := ds.(*sqlite3.SQLiteStmt)
	if !ok || !st.Readonly() {
		return nil, false, nil
	}
	dr, err := st.QueryContext(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer dr.Close()

	rows, ok := dr.(*sqlite3.SQLiteRows)
	if !ok {
		return nil, false, nil
	}
	for _, t := range rows.DeclTypes() {
		if convertingDeclTypes[t] {
			return rows.Columns(), true, nil
		}
	}
	return nil, false, nil
}

// wrapColumns renames the columns of stmt positionally through a CTE and
// selects each one back under its original name. coalesce(x, NULL) returns
// x with its storage class intact. Parameters keep their order since stmt
// is embedded verbatim.
func wrapColumns(stmt string, cols []string) string {
	var b strings.Builder
	b.WriteString("WITH nb_source(")
	for i := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "c%d", i)
	}
	b.WriteString(") AS (\n")
	b.WriteString(strings.TrimRight(strings.TrimSpace(stmt), "; \t\r\n"))
	b.WriteString("\n) SELECT ")
	for i, name := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "coalesce(c%d, NULL) AS %s", i, quoteIdent(name))
	}
	b.WriteString(" FROM nb_source")
	return b.String()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
