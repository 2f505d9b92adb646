package core

// KeyDirEntry represents the in-memory index entry for a single key.
//
// Each entry points to the latest record appended for its key. Older
// records for the same key stay behind in the data file as dead bytes;
// only the directory entry moves forward on every write.
type KeyDirEntry struct {
	FileName     string // Name of the data file holding the record
	RecordLength int64  // Total size of the record on disk, header included
	Offset       int64  // Byte offset in the data file where the record starts
	Timestamp    uint32 // Write sequence number carried by the record
}

// KeyDir is the in-memory index mapping keys to their latest on-disk
// entries.
//
// It is rebuilt on startup by scanning the data file front to back and
// holds record locations only, never values.
type KeyDir map[string]KeyDirEntry
