package sqlset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

/*
MaxRowInsertionsPerStatement is the maximum number of rows added with
a single insert command by WriteDataset. Writing more will result in
making more insertion commands.
*/
const MaxRowInsertionsPerStatement = 10

/*
Adapter is an interface providing the database specific details needed
to read and write datasets.
*/
type Adapter interface {
	// DB returns the database handle to run the statements on
	DB() *sql.DB
	// ColumnName takes the name of a feature, a label or a table and
	// returns it as a quoted identifier for the database, or an error
	// if it cannot be used as one
	ColumnName(string) (string, error)
	// Placeholder returns the placeholder for the i-th (starting at 1)
	// parameter of a statement
	Placeholder(i int) string
	// Close releases the database handle
	Close() error
}

/*
ListColumns takes a context, an Adapter and the name of a table and
returns the names of the columns of the table, in order.
*/
func ListColumns(ctx context.Context, a Adapter, table string) ([]string, error) {
	qt, err := a.ColumnName(table)
	if err != nil {
		return nil, err
	}
	rows, err := a.DB().QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s LIMIT 0`, qt))
	if err != nil {
		return nil, fmt.Errorf("querying columns of %s: %w", table, err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}
	return columns, nil
}

/*
ReadDataset takes a context, an Adapter, the name of a table and an
optional *feature.Metadata and returns the metadata describing the
columns read and a dataset with a row for every row of the table.

Without metadata, every column of the table but the last is a feature
and the last one is the label. With metadata, the columns it names are
selected in its order.

A *dataset.SchemaError is returned if a selected column holds a NULL
value.
*/
func ReadDataset(ctx context.Context, a Adapter, table string, md *feature.Metadata) (*feature.Metadata, dataset.Dataset, error) {
	s := dataset.Dataset{}
	md, err := ReadDatasetByRow(ctx, a, table, md, func(_ int, r dataset.Row) (bool, error) {
		s = append(s, r)
		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return md, s, nil
}

/*
ReadDatasetByRow works like ReadDataset, but instead of collecting the
rows it calls the lambda function with every row and its index. If the
lambda function returns true it will continue with the next row,
otherwise it will stop.
*/
func ReadDatasetByRow(ctx context.Context, a Adapter, table string, md *feature.Metadata, lambda func(int, dataset.Row) (bool, error)) (*feature.Metadata, error) {
	if md == nil {
		columns, err := ListColumns(ctx, a, table)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			return nil, &dataset.SchemaError{Row: -1, Reason: fmt.Sprintf("table %s has no columns", table)}
		}
		md = &feature.Metadata{Features: feature.Names(columns[:len(columns)-1]), Label: columns[len(columns)-1]}
		if err = md.Validate(); err != nil {
			return nil, &dataset.SchemaError{Row: -1, Reason: fmt.Sprintf("columns of table %s: %v", table, err)}
		}
	}
	query, err := selectStatement(a, table, md.Columns())
	if err != nil {
		return nil, err
	}
	rows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rows of %s: %w", table, err)
	}
	defer rows.Close()
	columns := md.Columns()
	for j := 0; rows.Next(); j++ {
		values := make([]sql.NullString, len(columns))
		dest := make([]interface{}, 0, len(columns))
		for i := range values {
			dest = append(dest, &values[i])
		}
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning row %d of %s: %w", j, table, err)
		}
		row := make(dataset.Row, 0, len(columns))
		for i, v := range values {
			if !v.Valid {
				return nil, &dataset.SchemaError{Row: j, Reason: fmt.Sprintf("column %s is NULL", columns[i])}
			}
			row = append(row, v.String)
		}
		ok, err := lambda(j, row)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	err = rows.Err()
	if err != nil {
		return nil, err
	}
	return md, rows.Close()
}

/*
WriteDataset takes a context, an Adapter, the name of a table, the
metadata describing the columns of a dataset and the dataset, ensures
the table exists with a TEXT column for each feature and the label and
adds the rows of the dataset to it. It returns the number of rows
added and an error if not all of them could be.
*/
func WriteDataset(ctx context.Context, a Adapter, table string, md *feature.Metadata, s dataset.Dataset) (int, error) {
	err := s.Validate(md.Features)
	if err != nil {
		return 0, err
	}
	err = CreateTable(ctx, a, table, md)
	if err != nil {
		return 0, err
	}
	var added int
	for start := 0; start < len(s); start += MaxRowInsertionsPerStatement {
		end := start + MaxRowInsertionsPerStatement
		if end > len(s) {
			end = len(s)
		}
		err = insertRows(ctx, a, table, md.Columns(), s[start:end])
		if err != nil {
			return added, fmt.Errorf("inserting rows %d to %d: %w", start, end, err)
		}
		added = end
	}
	return added, nil
}

// CreateTable ensures a table for datasets described by the metadata exists
func CreateTable(ctx context.Context, a Adapter, table string, md *feature.Metadata) error {
	var createStmtBuf bytes.Buffer
	qt, err := a.ColumnName(table)
	if err != nil {
		return err
	}
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", qt))
	for i, c := range md.Columns() {
		qc, err := a.ColumnName(c)
		if err != nil {
			return err
		}
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		createStmtBuf.WriteString(fmt.Sprintf("%s TEXT NOT NULL", qc))
	}
	createStmtBuf.WriteString(")")
	_, err = a.DB().ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring table %s exists: %w", table, err)
	}
	return nil
}

func insertRows(ctx context.Context, a Adapter, table string, columns []string, rows dataset.Dataset) error {
	var insertStmtBuf bytes.Buffer
	qt, err := a.ColumnName(table)
	if err != nil {
		return err
	}
	insertStmtBuf.WriteString(fmt.Sprintf("INSERT INTO %s (", qt))
	for i, c := range columns {
		qc, err := a.ColumnName(c)
		if err != nil {
			return err
		}
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString(qc)
	}
	insertStmtBuf.WriteString(") VALUES ")
	values := make([]interface{}, 0, len(rows)*len(columns))
	for j, r := range rows {
		if j > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString("(")
		for i, v := range r {
			if i > 0 {
				insertStmtBuf.WriteString(", ")
			}
			values = append(values, v)
			insertStmtBuf.WriteString(a.Placeholder(len(values)))
		}
		insertStmtBuf.WriteString(")")
	}
	_, err = a.DB().ExecContext(ctx, insertStmtBuf.String(), values...)
	return err
}

func selectStatement(a Adapter, table string, columns []string) (string, error) {
	var queryBuf bytes.Buffer
	queryBuf.WriteString("SELECT ")
	for i, c := range columns {
		qc, err := a.ColumnName(c)
		if err != nil {
			return "", err
		}
		if i > 0 {
			queryBuf.WriteString(", ")
		}
		queryBuf.WriteString(qc)
	}
	qt, err := a.ColumnName(table)
	if err != nil {
		return "", err
	}
	queryBuf.WriteString(fmt.Sprintf(" FROM %s", qt))
	return queryBuf.String(), nil
}
