package core

import "errors"

// ErrCorruptDataFile is returned by Open when the startup scan finds a
// record that violates the data file format: a zero-length key or
// value, a truncated header, or a key cut short by the end of the
// file. The store refuses to come up rather than skip or repair
// malformed records.
var ErrCorruptDataFile = errors.New("corrupt data file")

// ErrKeyDirMismatch is returned by Get when the record read back from
// disk does not carry the key or timestamp the key directory expected,
// meaning the directory and the file have diverged.
var ErrKeyDirMismatch = errors.New("record does not match key directory entry")
