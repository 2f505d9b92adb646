package core

import (
	"expvar"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/0xRadioAc7iv/minicask/internal/record"
	"github.com/0xRadioAc7iv/minicask/internal/utils"
)

// DiskStore is a log-structured key-value store backed by a single
// append-only data file. Every write appends a record to the file and
// an in-memory key directory maps each key to the offset of its most
// recent record, so a read costs one seek regardless of how many stale
// versions of the key precede it.
//
// The whole key directory lives in memory and is rebuilt by scanning
// the data file front to back on startup, so Open takes time
// proportional to the number of records ever written. There is no
// compaction: overwritten records stay in the file as dead bytes.
//
// A DiskStore is not safe for concurrent use. The key directory is an
// unsynchronised map and interleaved appends would corrupt the offset
// bookkeeping. One process, one goroutine.
//
// The zero value is not ready for use: populate the exported fields as
// needed and call Open before any other method.
type DiskStore struct {
	// FileName locates the data file. Leave empty to use
	// DefaultFileName.
	FileName string

	// Logger receives startup and lifecycle logs. Defaults to
	// slog.Default.
	Logger *slog.Logger

	// Optional write counters, incremented on every successful
	// append. Nil counters are skipped.
	BytesWritten   *expvar.Int
	RecordsWritten *expvar.Int

	keyDir   KeyDir
	sequence uint32
}

// Open prepares the store for use, rebuilding the key directory from
// the data file if one exists. A store that has never been written to
// has no file yet; none is created until the first Set.
//
// The write sequence counter starts at zero on every Open. Timestamps
// of records already on disk are not resumed, so records from an
// earlier lifetime can carry higher timestamps than newer ones. Only
// file order decides which record is current.
func (ds *DiskStore) Open() error {
	if ds.FileName == "" {
		ds.FileName = DefaultFileName
	}
	if ds.Logger == nil {
		ds.Logger = slog.Default()
	}
	ds.Logger = ds.Logger.With("component", "diskstore")

	ds.keyDir = make(KeyDir)
	ds.sequence = 0

	if !utils.PathExists(ds.FileName) {
		ds.Logger.Debug("no existing data file, starting empty", "file", ds.FileName)
		return nil
	}

	f, err := os.Open(ds.FileName)
	if err != nil {
		return fmt.Errorf("failed to open data file %s: %w", ds.FileName, err)
	}
	defer f.Close()

	if err := ds.loadKeyDir(f); err != nil {
		return err
	}

	ds.Logger.Info("key directory rebuilt", "file", ds.FileName, "keys", len(ds.keyDir))
	return nil
}

// loadKeyDir scans the data file record by record, pointing each key at
// the last record seen for it. Values are skipped over, not read: the
// directory holds locations only.
func (ds *DiskStore) loadKeyDir(f *os.File) error {
	var offset int64

	for {
		header := make([]byte, record.HeaderSize)
		if _, err := io.ReadFull(f, header); err != nil {
			if err == io.EOF {
				return nil // clean end of the log
			}
			if err == io.ErrUnexpectedEOF {
				return fmt.Errorf("%w: partial record header at offset %d", ErrCorruptDataFile, offset)
			}
			return fmt.Errorf("failed to read record header at offset %d: %w", offset, err)
		}

		timestamp, keySize, valueSize, err := record.DecodeHeader(header)
		if err != nil {
			return err
		}
		if keySize == 0 || valueSize == 0 {
			return fmt.Errorf("%w: zero key or value size at offset %d", ErrCorruptDataFile, offset)
		}

		keyBytes := make([]byte, keySize)
		n, err := io.ReadFull(f, keyBytes)
		if err == io.EOF {
			return fmt.Errorf("%w: record at offset %d has no key bytes", ErrCorruptDataFile, offset)
		}
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: record key truncated at offset %d (%d of %d bytes)", ErrCorruptDataFile, offset, n, keySize)
		}
		if err != nil {
			return fmt.Errorf("failed to read record key at offset %d: %w", offset, err)
		}
		if !utf8.Valid(keyBytes) {
			return fmt.Errorf("%w: record key at offset %d is not valid UTF-8", ErrCorruptDataFile, offset)
		}

		recordLength := int64(record.HeaderSize) + int64(keySize) + int64(valueSize)

		// Seeking past a truncated value can land beyond the end of
		// the file; the next header read then ends the scan cleanly
		// and the affected key fails at Get time instead.
		if _, err := f.Seek(offset+recordLength, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek past record value at offset %d: %w", offset, err)
		}

		ds.keyDir[string(keyBytes)] = KeyDirEntry{
			FileName:     ds.FileName,
			RecordLength: recordLength,
			Offset:       offset,
			Timestamp:    timestamp,
		}

		offset += recordLength
	}
}

// nextSequence advances the logical clock. Increment then return, so
// the first record of a store's lifetime carries timestamp 1.
func (ds *DiskStore) nextSequence() uint32 {
	ds.sequence++
	return ds.sequence
}

// Set appends a record for key and points the directory entry at it.
//
// The directory entry is updated before the bytes land on disk, so a
// crash between the two steps leaves the directory ahead of the file
// for this one key until the next restart rebuilds it. The write is
// not fsynced; durability is only forced by Close.
func (ds *DiskStore) Set(key, value string) error {
	timestamp := ds.nextSequence()
	data := record.Encode(timestamp, key, value)

	f, err := os.OpenFile(ds.FileName, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open data file %s: %w", ds.FileName, err)
	}
	defer f.Close()

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek to end of data file %s: %w", ds.FileName, err)
	}

	ds.keyDir[key] = KeyDirEntry{
		FileName:     ds.FileName,
		RecordLength: int64(len(data)),
		Offset:       offset,
		Timestamp:    timestamp,
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append record for key %q: %w", key, err)
	}

	if ds.BytesWritten != nil {
		ds.BytesWritten.Add(int64(len(data)))
	}
	if ds.RecordsWritten != nil {
		ds.RecordsWritten.Add(1)
	}

	return nil
}

// Get returns the value most recently written for key, or "" when the
// key has no directory entry. Use Has to tell an absent key apart from
// a stored value.
func (ds *DiskStore) Get(key string) (string, error) {
	entry, ok := ds.keyDir[key]
	if !ok {
		return "", nil
	}

	if entry.FileName != ds.FileName {
		return "", fmt.Errorf("%w: entry for key %q points at file %s, store owns %s",
			ErrKeyDirMismatch, key, entry.FileName, ds.FileName)
	}

	f, err := os.Open(entry.FileName)
	if err != nil {
		return "", fmt.Errorf("failed to open data file %s: %w", entry.FileName, err)
	}
	defer f.Close()

	if _, err := f.Seek(entry.Offset, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to seek to offset %d: %w", entry.Offset, err)
	}

	data := make([]byte, entry.RecordLength)
	n, err := io.ReadFull(f, data)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// A short read surfaces through Decode as a corruption error.
		data = data[:n]
	} else if err != nil {
		return "", fmt.Errorf("failed to read record at offset %d: %w", entry.Offset, err)
	}

	rec, err := record.Decode(data)
	if err != nil {
		return "", err
	}

	if rec.Key != key {
		return "", fmt.Errorf("%w: read key %q at offset %d, expected %q",
			ErrKeyDirMismatch, rec.Key, entry.Offset, key)
	}
	if rec.Timestamp != entry.Timestamp {
		return "", fmt.Errorf("%w: record for key %q carries timestamp %d, directory has %d",
			ErrKeyDirMismatch, key, rec.Timestamp, entry.Timestamp)
	}

	return rec.Value, nil
}

// Has reports whether key currently has a directory entry. It does not
// touch the disk.
func (ds *DiskStore) Has(key string) bool {
	_, ok := ds.keyDir[key]
	return ok
}

// Keys returns all live keys in no particular order.
func (ds *DiskStore) Keys() []string {
	keys := make([]string, 0, len(ds.keyDir))
	for key := range ds.keyDir {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of live keys.
func (ds *DiskStore) Len() int {
	return len(ds.keyDir)
}

// Close forces everything written so far onto the storage medium. The
// key directory stays intact and operations keep working afterwards;
// Close exists to give callers one explicit durability point.
//
// Closing a store whose data file was never created reports the
// underlying open error.
func (ds *DiskStore) Close() error {
	f, err := os.OpenFile(ds.FileName, os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open data file %s: %w", ds.FileName, err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync data file %s: %w", ds.FileName, err)
	}

	return f.Close()
}
