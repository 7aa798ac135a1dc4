/*
Package sqlset reads datasets from and writes them to tables of SQL
databases.

A dataset is kept on a single table with a TEXT column per feature and
one for the label. Any table can be read as long as the columns named on
the metadata exist on it; values of other types are read in their
textual form.

The database specifics are provided by an Adapter. Implementations for
SQLite3 and PostgreSQL databases are available in the sqlite3adapter
and pgadapter subpackages.
*/
package sqlset
