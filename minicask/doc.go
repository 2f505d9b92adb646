// Package minicask provides an embedded log-structured key-value store
// with string keys and string values, kept in a single append-only
// data file.
//
// Example:
//
//	db, err := minicask.Open(minicask.WithDataFile("app.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = db.Set("foo", "bar")
//	val, err := db.Get("foo")
//
//	err = db.Close()
package minicask
