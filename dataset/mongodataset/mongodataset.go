/*
Package mongodataset reads datasets from and writes them to MongoDB
collections. Every document of a collection is a row, with a field per
feature and one for the label.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
ReadDataset takes a context, a MongoDB database session, the name of a
collection on the session's default database and a *feature.Metadata,
and returns a dataset with a row for every document of the collection,
holding the values of the fields named on the metadata in its order.
Documents are read in _id order.

Field values are kept in their textual form. A *dataset.SchemaError is
returned if a document lacks one of the fields or has it set to null.
*/
func ReadDataset(ctx context.Context, session *mgo.Session, collection string, md *feature.Metadata) (dataset.Dataset, error) {
	if md == nil {
		return nil, fmt.Errorf("reading collection %s: metadata is required for MongoDB collections", collection)
	}
	columns := md.Columns()
	for _, c := range columns {
		err := validateFieldName(c)
		if err != nil {
			return nil, err
		}
	}
	projection := bson.M{"_id": 0}
	for _, c := range columns {
		projection[c] = 1
	}
	iter := session.DB("").C(collection).Find(nil).Select(projection).Sort("_id").Iter()
	defer iter.Close()
	s := dataset.Dataset{}
	var doc bson.M
	for i := 0; iter.Next(&doc); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := documentToRow(i, doc, columns)
		if err != nil {
			return nil, err
		}
		s = append(s, row)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading collection %s: %w", collection, err)
	}
	return s, nil
}

/*
WriteDataset takes a context, a MongoDB database session, the name of a
collection on the session's default database, the metadata describing
the columns of a dataset and the dataset, and inserts a document for
every row on the collection. It returns the number of documents
inserted or an error.
*/
func WriteDataset(ctx context.Context, session *mgo.Session, collection string, md *feature.Metadata, s dataset.Dataset) (int, error) {
	err := s.Validate(md.Features)
	if err != nil {
		return 0, err
	}
	columns := md.Columns()
	for _, c := range columns {
		err = validateFieldName(c)
		if err != nil {
			return 0, err
		}
	}
	if err = ctx.Err(); err != nil {
		return 0, err
	}
	if len(s) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(s))
	for _, r := range s {
		docs = append(docs, rowToDocument(r, columns))
	}
	err = session.DB("").C(collection).Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("writing collection %s: %w", collection, err)
	}
	return len(s), nil
}

func documentToRow(i int, doc bson.M, columns []string) (dataset.Row, error) {
	row := make(dataset.Row, 0, len(columns))
	for _, c := range columns {
		v, ok := doc[c]
		if !ok || v == nil {
			return nil, &dataset.SchemaError{Row: i, Reason: fmt.Sprintf("document has no value for field %s", c)}
		}
		row = append(row, fmt.Sprintf("%v", v))
	}
	return row, nil
}

func rowToDocument(r dataset.Row, columns []string) bson.M {
	doc := make(bson.M, len(columns))
	for i, c := range columns {
		doc[c] = r[i]
	}
	return doc
}

func validateFieldName(name string) error {
	if name == "_id" {
		return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
	}
	if name == "" || strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid feature name %q: empty or contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}
