package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

/*
ReadDataset takes an io.Reader for a CSV stream and an optional
*feature.Metadata and returns the metadata describing the columns read
and a dataset with the rows parsed from the reader, or an error.

The header or first row of the CSV content is expected to name the
columns. Without metadata, every column but the last is a feature and
the last one is the label. With metadata, the columns it names are
taken, in its order, and any other column is ignored. Values are kept
as found.

A *dataset.SchemaError is returned if the header lacks a column named
on the metadata, if the header has repeated names, or if a row does not
have as many values as the header.
*/
func ReadDataset(reader io.Reader, md *feature.Metadata) (*feature.Metadata, dataset.Dataset, error) {
	s := dataset.Dataset{}
	md, err := ReadDatasetByRow(reader, md, func(_ int, r dataset.Row) (bool, error) {
		s = append(s, r)
		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return md, s, nil
}

/*
ReadDatasetByRow takes an io.Reader for a CSV stream, an optional
*feature.Metadata and a lambda function on an integer and a
dataset.Row that returns a boolean value. It parses the rows from the
reader as ReadDataset does and for each it calls the lambda function
with the row and its index as parameters. If the lambda function returns
true, it will continue processing the next row, otherwise it will stop.
It returns the metadata describing the columns of the rows, or an error
if something goes wrong when reading the stream or parsing a row.
*/
func ReadDatasetByRow(reader io.Reader, md *feature.Metadata, lambda func(int, dataset.Row) (bool, error)) (*feature.Metadata, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if md == nil {
		if len(header) == 0 {
			return nil, &dataset.SchemaError{Row: -1, Reason: "header has no columns"}
		}
		md = &feature.Metadata{
			Features: feature.Names(header[:len(header)-1]).Clone(),
			Label:    header[len(header)-1],
		}
		if err = md.Validate(); err != nil {
			return nil, &dataset.SchemaError{Row: -1, Reason: fmt.Sprintf("parsing header: %v", err)}
		}
	}
	columns, err := columnIndexes(header, md.Columns())
	if err != nil {
		return nil, err
	}
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
		if len(record) != len(header) {
			return nil, &dataset.SchemaError{Row: l - 2, Reason: fmt.Sprintf("line %d has %d values, header has %d", l, len(record), len(header))}
		}
		row := make(dataset.Row, 0, len(columns))
		for _, c := range columns {
			row = append(row, record[c])
		}
		ok, err := lambda(l-2, row)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return md, nil
}

/*
ReadDatasetFromFilePath takes a filepath string and an optional
*feature.Metadata, opens the file to which the filepath points to and
uses ReadDataset to return the metadata and dataset read from it. If
the filepath is "" os.Stdin is read instead. It will return an error if
the given filepath cannot be opened for reading.
*/
func ReadDatasetFromFilePath(filepath string, md *feature.Metadata) (*feature.Metadata, dataset.Dataset, error) {
	f, closeFile, err := open(filepath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading dataset: %w", err)
	}
	defer closeFile()
	md, s, err := ReadDataset(f, md)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return md, s, err
}

/*
ReadSamples takes an io.Reader for a CSV stream and the names of the
features of a model and returns the samples read from it, each holding
the values of the features in the order of names. The header must name
every feature; other columns, like a label column, are ignored.
*/
func ReadSamples(reader io.Reader, names feature.Names) ([][]string, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns, err := columnIndexes(header, names)
	if err != nil {
		return nil, err
	}
	samples := [][]string{}
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
		if len(record) != len(header) {
			return nil, &dataset.SchemaError{Row: l - 2, Reason: fmt.Sprintf("line %d has %d values, header has %d", l, len(record), len(header))}
		}
		sample := make([]string, 0, len(columns))
		for _, c := range columns {
			sample = append(sample, record[c])
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// ReadSamplesFromFilePath is ReadSamples on the file at the given path, or os.Stdin for ""
func ReadSamplesFromFilePath(filepath string, names feature.Names) ([][]string, error) {
	f, closeFile, err := open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	defer closeFile()
	samples, err := ReadSamples(f, names)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return samples, err
}

/*
WriteSamples takes an io.Writer, the names of the features of some
samples, the name of a label column, the samples and a label for each
of them, and dumps them to the writer in CSV format: a header with the
names and the label column, then a row per sample with its label
appended. It returns an error if something went wrong when writing.
*/
func WriteSamples(writer io.Writer, names feature.Names, label string, samples [][]string, labels []string) error {
	if len(samples) != len(labels) {
		return fmt.Errorf("%d labels given for %d samples", len(labels), len(samples))
	}
	w := csv.NewWriter(writer)
	header := append(names.Clone(), label)
	err := w.Write(header)
	if err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, sample := range samples {
		record := append(append(make([]string, 0, len(sample)+1), sample...), labels[i])
		err = w.Write(record)
		if err != nil {
			return fmt.Errorf("writing CSV row for sample %d: %w", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

/*
WriteDataset takes an io.Writer, the metadata describing the columns of
a dataset and the dataset, and dumps it to the writer in CSV format with
a header naming the columns. It returns an error if the rows do not
match the metadata or something went wrong when writing.
*/
func WriteDataset(writer io.Writer, md *feature.Metadata, s dataset.Dataset) error {
	err := s.Validate(md.Features)
	if err != nil {
		return err
	}
	w := csv.NewWriter(writer)
	err = w.Write(md.Columns())
	if err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, r := range s {
		err = w.Write(r)
		if err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

func columnIndexes(header []string, columns []string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := positions[name]; ok {
			return nil, &dataset.SchemaError{Row: -1, Reason: fmt.Sprintf("parsing header: column %s appears more than once", name)}
		}
		positions[name] = i
	}
	result := make([]int, 0, len(columns))
	for _, name := range columns {
		i, ok := positions[name]
		if !ok {
			return nil, &dataset.SchemaError{Row: -1, Reason: fmt.Sprintf("parsing header: no column named %s", name)}
		}
		result = append(result, i)
	}
	return result, nil
}

// open returns the file at filepath, or os.Stdin for "", and a function closing only what it opened
func open(filepath string) (*os.File, func() error, error) {
	if filepath == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(filepath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
