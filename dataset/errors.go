package dataset

import "fmt"

// DatasetError represents an error on an operation over a dataset
type DatasetError string

/*
ErrEmptyDataset is the error returned when an operation that needs at
least one row, such as computing the entropy of the labels, is invoked
on a dataset without rows.
*/
const ErrEmptyDataset = DatasetError("dataset has no rows")

func (de DatasetError) Error() string {
	return string(de)
}

/*
SchemaError is the error returned when rows do not match the shape
expected for them: rows of different widths, a number of feature names
that does not match the number of feature columns, a reference to a
column that does not exist, or a value that cannot be obtained for a
column.
*/
type SchemaError struct {
	// Row is the index of the offending row, or -1 when the error
	// is not about a specific row.
	Row    int
	Reason string
}

func (se *SchemaError) Error() string {
	if se.Row < 0 {
		return fmt.Sprintf("schema error: %s", se.Reason)
	}
	return fmt.Sprintf("schema error on row %d: %s", se.Row, se.Reason)
}

func schemaErrorf(row int, format string, a ...interface{}) *SchemaError {
	return &SchemaError{Row: row, Reason: fmt.Sprintf(format, a...)}
}
