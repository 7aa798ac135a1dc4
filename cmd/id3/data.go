package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/dataset/csv"
	"github.com/pbanos/id3/dataset/mongodataset"
	"github.com/pbanos/id3/dataset/sqlset"
	"github.com/pbanos/id3/dataset/sqlset/pgadapter"
	"github.com/pbanos/id3/dataset/sqlset/sqlite3adapter"
	"github.com/pbanos/id3/feature"
	mgo "gopkg.in/mgo.v2"
)

const defaultTable = "samples"

type dataLocationKind int

const (
	csvLocation dataLocationKind = iota
	sqlite3Location
	postgreSQLLocation
	mongoDBLocation
)

/*
dataLocation describes where a dataset is read from or written to:
a CSV file (STDIN or STDOUT if the path is empty), an SQLite3 (.db)
file, a PostgreSQL DB connection URL or a MongoDB connection URL.
Table names the table or collection for DB locations.
*/
type dataLocation struct {
	location string
	table    string
	maxConns int
}

func (dl *dataLocation) kind() dataLocationKind {
	switch {
	case strings.HasPrefix(dl.location, "postgresql://"), strings.HasPrefix(dl.location, "postgres://"):
		return postgreSQLLocation
	case strings.HasPrefix(dl.location, "mongodb://"):
		return mongoDBLocation
	case strings.HasSuffix(dl.location, ".db"):
		return sqlite3Location
	}
	return csvLocation
}

func (dl *dataLocation) tableName() string {
	if dl.table == "" {
		return defaultTable
	}
	return dl.table
}

func (dl *dataLocation) String() string {
	if dl.location == "" {
		return "STDIN"
	}
	if dl.kind() == csvLocation {
		return dl.location
	}
	return fmt.Sprintf("%s (%s)", dl.location, dl.tableName())
}

func (dl *dataLocation) adapter(rcc *rootCmdConfig) (sqlset.Adapter, error) {
	if dl.kind() == postgreSQLLocation {
		rcc.Logf("Creating PostgreSQL adapter for url %s...", dl.location)
		return pgadapter.New(dl.location)
	}
	rcc.Logf("Creating SQLite3 adapter for file %s...", dl.location)
	return sqlite3adapter.New(dl.location, dl.maxConns)
}

/*
readDataset reads a dataset from the location. The metadata is optional
for every kind of location but MongoDB.
*/
func (rcc *rootCmdConfig) readDataset(ctx context.Context, dl *dataLocation, md *feature.Metadata) (*feature.Metadata, dataset.Dataset, error) {
	rcc.Logf("Reading dataset from %s...", dl)
	switch dl.kind() {
	case sqlite3Location, postgreSQLLocation:
		a, err := dl.adapter(rcc)
		if err != nil {
			return nil, nil, err
		}
		defer a.Close()
		return sqlset.ReadDataset(ctx, a, dl.tableName(), md)
	case mongoDBLocation:
		session, err := mgo.Dial(dl.location)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to %s: %w", dl.location, err)
		}
		defer session.Close()
		s, err := mongodataset.ReadDataset(ctx, session, dl.tableName(), md)
		return md, s, err
	}
	return csv.ReadDatasetFromFilePath(dl.location, md)
}

/*
writeDataset writes a dataset to the location, which is STDOUT for an
empty CSV path.
*/
func (rcc *rootCmdConfig) writeDataset(ctx context.Context, dl *dataLocation, md *feature.Metadata, s dataset.Dataset) error {
	if dl.location == "" {
		rcc.Logf("Writing dataset with %d rows to STDOUT...", len(s))
	} else {
		rcc.Logf("Writing dataset with %d rows to %s...", len(s), dl)
	}
	switch dl.kind() {
	case sqlite3Location, postgreSQLLocation:
		a, err := dl.adapter(rcc)
		if err != nil {
			return err
		}
		defer a.Close()
		_, err = sqlset.WriteDataset(ctx, a, dl.tableName(), md, s)
		return err
	case mongoDBLocation:
		session, err := mgo.Dial(dl.location)
		if err != nil {
			return fmt.Errorf("connecting to %s: %w", dl.location, err)
		}
		defer session.Close()
		_, err = mongodataset.WriteDataset(ctx, session, dl.tableName(), md, s)
		return err
	}
	if dl.location == "" {
		return csv.WriteDataset(os.Stdout, md, s)
	}
	f, err := os.Create(dl.location)
	if err != nil {
		return err
	}
	err = csv.WriteDataset(f, md, s)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
